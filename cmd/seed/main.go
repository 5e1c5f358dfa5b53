package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vinayakfood/website/backend/config"
	"github.com/vinayakfood/website/backend/internal/database"
	"github.com/vinayakfood/website/backend/internal/logger"
	"github.com/vinayakfood/website/backend/internal/service"
	"github.com/vinayakfood/website/backend/internal/types"
)

type sampleDish struct {
	name, description, price, category, spice string
	vegetarian                                bool
}

var sampleDishes = []sampleDish{
	{"Pani Puri", "Crispy hollow puris filled with spiced potato and tangy mint water.", "8.00", "Chaat", "Medium", true},
	{"Bhel Puri", "Puffed rice tossed with sev, onions, tamarind and green chutney.", "7.50", "Chaat", "Mild", true},
	{"Samosa", "Golden pastry stuffed with spiced potatoes and peas.", "5.00", "Snacks", "Medium", true},
	{"Vada Pav", "Spiced potato fritter in a soft bun with garlic chutney.", "6.50", "Snacks", "Hot", true},
	{"Masala Chai", "Black tea simmered with milk, ginger and cardamom.", "3.50", "Drinks", "Mild", true},
	{"Mango Lassi", "Chilled yogurt drink blended with ripe mango.", "4.50", "Drinks", "Mild", true},
	{"Gulab Jamun", "Milk dumplings soaked in rose and cardamom syrup.", "5.50", "Desserts", "Mild", true},
}

type options struct {
	email      string
	password   string
	withDishes bool
}

// loadDotEnv reads .env in development so that it can supply flag defaults
func loadDotEnv() {
	if config.IsDevelopment() {
		_ = godotenv.Load()
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.StringVar(&opts.email, "email", os.Getenv("ADMIN_EMAIL"), "admin account email")
	fs.StringVar(&opts.password, "password", os.Getenv("ADMIN_PASSWORD"), "admin account password")
	fs.BoolVar(&opts.withDishes, "sample-dishes", false, "also insert the sample dishes")
	err := fs.Parse(args)
	return opts, err
}

func main() {
	loadDotEnv()
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.Database, zlog)
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	auth := service.NewAuthService(db, cfg.JWT, service.NewMemoryTokenBlacklist(), zlog)

	if _, err := auth.CreateAdmin(ctx, opts.email, opts.password); err != nil {
		var verr *service.ValidationError
		if !errors.As(err, &verr) || verr.Field != "email" {
			zlog.Fatal("failed to create admin", zap.Error(err))
		}
		zlog.Info("admin not created", zap.String("reason", verr.Message))
	} else {
		zlog.Info("admin created", zap.String("email", opts.email))
	}

	if !opts.withDishes {
		return
	}

	session, err := auth.SignIn(ctx, opts.email, opts.password)
	if err != nil {
		zlog.Fatal("failed to sign in as admin", zap.Error(err))
	}
	ctx = service.WithSession(ctx, session)
	dishes := service.NewDishService(db, auth, zlog)

	for _, d := range sampleDishes {
		vegetarian := d.vegetarian
		_, err := dishes.Create(ctx, &types.CreateDishRequest{
			Name:         d.name,
			Description:  d.description,
			Price:        types.Amount(d.price),
			Category:     d.category,
			SpiceLevel:   d.spice,
			IsVegetarian: &vegetarian,
		})
		if err != nil {
			zlog.Fatal("failed to create sample dish", zap.String("name", d.name), zap.Error(err))
		}
	}
	zlog.Info("sample dishes created", zap.Int("count", len(sampleDishes)))
}
