package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	JWT            JWTConfig
	Storage        StorageConfig
	Log            LogConfig
	Content        ContentConfig
	LoginRateLimit RateLimitConfig
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host               string
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// DatabaseConfig configures the relational store. Driver is "postgres" or "sqlite".
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

// DSN returns the postgres connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// URL returns the postgres connection string in URL form, as golang-migrate expects
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// RedisConfig configures the redis client. An empty Host and URL disables redis.
type RedisConfig struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a redis server has been configured
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Host != ""
}

// JWTConfig configures admin session tokens
type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// RateLimitConfig bounds sign-in attempts per client
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// LoadConfig builds a Config from an optional config file, environment
// variables and Docker secrets, in increasing order of precedence for
// non-sensitive values. Sensitive values fall back to Docker secrets when
// the environment does not provide them.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/vinayak")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env: GetEnvironment(),
		Server: ServerConfig{
			Host:               v.GetString("server_host"),
			Port:               v.GetString("server_port"),
			ReadTimeout:        v.GetDuration("server_read_timeout"),
			WriteTimeout:       v.GetDuration("server_write_timeout"),
			ShutdownTimeout:    v.GetDuration("server_shutdown_timeout"),
			RequestTimeout:     v.GetDuration("request_timeout"),
			CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("db_driver")),
			Host:            v.GetString("db_host"),
			Port:            v.GetString("db_port"),
			User:            secretOr(v, "db_user"),
			Password:        secretOr(v, "db_password"),
			Name:            v.GetString("db_name"),
			SSLMode:         v.GetString("db_ssl_mode"),
			SQLitePath:      v.GetString("db_sqlite_path"),
			MaxOpenConns:    v.GetInt("db_max_open_conns"),
			MaxIdleConns:    v.GetInt("db_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
			LogLevel:        v.GetString("db_log_level"),
		},
		Redis: RedisConfig{
			URL:      secretOr(v, "redis_url"),
			Host:     v.GetString("redis_host"),
			Port:     v.GetString("redis_port"),
			Password: secretOr(v, "redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		JWT: JWTConfig{
			Secret:     secretOr(v, "jwt_secret"),
			Issuer:     v.GetString("jwt_issuer"),
			Expiration: v.GetDuration("jwt_expiration"),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(v.GetString("storage_driver")),
			Bucket:         v.GetString("s3_bucket_name"),
			Region:         v.GetString("s3_region"),
			Endpoint:       v.GetString("s3_endpoint"),
			AccessKey:      secretOr(v, "s3_access_key"),
			SecretKey:      secretOr(v, "s3_secret_key"),
			UsePathStyle:   v.GetBool("s3_use_path_style"),
			PublicBaseURL:  v.GetString("s3_public_base_url"),
			MaxUploadBytes: v.GetInt64("max_upload_bytes"),
		},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
			Output: v.GetString("log_output"),
		},
		Content: ContentConfig{
			DefaultHeading:     v.GetString("menu_heading"),
			DefaultTagline:     v.GetString("menu_tagline"),
			DefaultDescription: v.GetString("menu_description"),
			DefaultImageURL:    v.GetString("menu_image_url"),
			CurrencySymbol:     v.GetString("currency_symbol"),
			EmptyMenuMessage:   v.GetString("menu_empty_message"),
		},
		LoginRateLimit: RateLimitConfig{
			Limit:  v.GetInt("login_rate_limit"),
			Window: v.GetDuration("login_rate_window"),
		},
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.SetDefault("server_read_timeout", 15*time.Second)
	v.SetDefault("server_write_timeout", 30*time.Second)
	v.SetDefault("server_shutdown_timeout", 10*time.Second)
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("cors_allowed_origins", "http://localhost:3000")

	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_name", "vinayak")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("db_sqlite_path", "vinayak.db")
	v.SetDefault("db_max_open_conns", 25)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("db_conn_max_lifetime", 5*time.Minute)
	v.SetDefault("db_log_level", "warn")

	v.SetDefault("redis_db", 0)

	v.SetDefault("jwt_issuer", "vinayak-food")
	v.SetDefault("jwt_expiration", 24*time.Hour)

	v.SetDefault("storage_driver", "s3")
	v.SetDefault("s3_bucket_name", "dish-images")
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("max_upload_bytes", DefaultMaxUploadBytes)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", defaultLogFormat())
	v.SetDefault("log_output", "stdout")

	v.SetDefault("menu_heading", DefaultMenuHeading)
	v.SetDefault("menu_tagline", DefaultMenuTagline)
	v.SetDefault("menu_description", DefaultMenuDescription)
	v.SetDefault("menu_image_url", DefaultMenuImageURL)
	v.SetDefault("currency_symbol", "$")
	v.SetDefault("menu_empty_message", DefaultEmptyMenuMessage)

	v.SetDefault("login_rate_limit", 10)
	v.SetDefault("login_rate_window", 15*time.Minute)
}

func defaultLogFormat() string {
	if IsProduction() {
		return "json"
	}
	return "console"
}

// secretOr returns the configured value for key, falling back to the Docker
// secret of the same name.
func secretOr(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return readSecret(key)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
