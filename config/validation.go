package config

import (
	"fmt"
	"net/url"
	"strings"
)

// minProductionSecretLength is the shortest JWT secret accepted in production
const minProductionSecretLength = 32

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration against the rules for its environment
// and reports every problem at once, one per line.
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError

	if cfg.Server.Port == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}
	for _, origin := range cfg.Server.CORSAllowedOrigins {
		if origin == "*" {
			continue
		}
		if u, err := url.Parse(origin); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{"CORS_ALLOWED_ORIGINS", fmt.Sprintf("%q is not an http(s) origin", origin)})
		}
	}
	if cfg.Server.RequestTimeout <= 0 {
		errs = append(errs, ValidationError{"REQUEST_TIMEOUT", "must be positive"})
	}

	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.Host == "" {
			errs = append(errs, ValidationError{"DB_HOST", "is required for postgres"})
		}
		if cfg.Database.Name == "" {
			errs = append(errs, ValidationError{"DB_NAME", "is required for postgres"})
		}
		if cfg.Database.User == "" {
			errs = append(errs, ValidationError{"DB_USER", "is required for postgres (env or db_user secret)"})
		}
	case "sqlite":
		if cfg.Env == Production {
			errs = append(errs, ValidationError{"DB_DRIVER", "sqlite is not allowed in production"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.Database.Driver)})
	}

	if cfg.JWT.Secret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "is required (env or jwt_secret secret)"})
	} else if cfg.Env == Production && len(cfg.JWT.Secret) < minProductionSecretLength {
		errs = append(errs, ValidationError{"JWT_SECRET", fmt.Sprintf("must be at least %d bytes in production", minProductionSecretLength)})
	}
	if cfg.JWT.Expiration <= 0 {
		errs = append(errs, ValidationError{"JWT_EXPIRATION", "must be positive"})
	}

	switch cfg.Storage.Driver {
	case "s3":
		if cfg.Storage.Bucket == "" {
			errs = append(errs, ValidationError{"S3_BUCKET_NAME", "is required for s3 storage"})
		}
		if cfg.Storage.PublicBaseURL != "" {
			if u, err := url.Parse(cfg.Storage.PublicBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
				errs = append(errs, ValidationError{"S3_PUBLIC_BASE_URL", "must be an absolute URL"})
			}
		}
	case "memory":
		if cfg.Env == Production {
			errs = append(errs, ValidationError{"STORAGE_DRIVER", "memory storage is not allowed in production"})
		}
	default:
		errs = append(errs, ValidationError{"STORAGE_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.Storage.Driver)})
	}
	if cfg.Storage.MaxUploadBytes <= 0 {
		errs = append(errs, ValidationError{"MAX_UPLOAD_BYTES", "must be positive"})
	}

	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		errs = append(errs, ValidationError{"LOG_FORMAT", "must be json or console"})
	}
	if cfg.Content.CurrencySymbol == "" {
		errs = append(errs, ValidationError{"CURRENCY_SYMBOL", "is required"})
	}
	if cfg.LoginRateLimit.Limit <= 0 || cfg.LoginRateLimit.Window <= 0 {
		errs = append(errs, ValidationError{"LOGIN_RATE_LIMIT", "limit and window must be positive"})
	}

	if len(errs) > 0 {
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = e.Error()
		}
		return fmt.Errorf("invalid configuration:\n%s", strings.Join(lines, "\n"))
	}

	return nil
}
