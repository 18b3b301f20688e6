// Package config loads fitmetrics settings from an optional YAML file and
// FITMETRICS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Database drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultConfigName is looked up in the working directory when no file is
// given explicitly.
const DefaultConfigName = "fitmetrics"

// Config is the top-level fitmetrics configuration.
type Config struct {
	Addr     string   `mapstructure:"addr"`
	WebDir   string   `mapstructure:"web_dir"`
	Database Database `mapstructure:"database"`
	Auth     Auth     `mapstructure:"auth"`
	OIDC     OIDC     `mapstructure:"oidc"`
	CORS     CORS     `mapstructure:"cors"`
	Import   Import   `mapstructure:"import"`
	Goals    Goals    `mapstructure:"goals"`
}

// Database selects the storage backend.
type Database struct {
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"`
}

// Auth configures API authentication.
type Auth struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	Disabled  bool          `mapstructure:"disabled"`
	// TrustForwardAuth accepts the Remote-User header set by a reverse
	// proxy. Only enable it when the proxy strips client-supplied copies.
	TrustForwardAuth bool `mapstructure:"trust_forward_auth"`
}

// OIDC configures single sign-on. SSO is on when Issuer is set.
type OIDC struct {
	Issuer       string `mapstructure:"issuer"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// Enabled reports whether SSO is configured.
func (o OIDC) Enabled() bool { return o.Issuer != "" }

// CORS lists the origins allowed to call the API.
type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Import tunes CSV uploads.
type Import struct {
	MaxRows int    `mapstructure:"max_rows"`
	Workers int    `mapstructure:"workers"`
	Unit    string `mapstructure:"unit"`
}

// Goals are applied when a user has no plan.
type Goals struct {
	DailySteps     int `mapstructure:"daily_steps"`
	WeeklyWorkouts int `mapstructure:"weekly_workouts"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("web_dir", "web")
	v.SetDefault("database.driver", DriverMemory)
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.disabled", false)
	v.SetDefault("auth.trust_forward_auth", false)
	v.SetDefault("oidc.issuer", "")
	v.SetDefault("oidc.client_id", "")
	v.SetDefault("oidc.client_secret", "")
	v.SetDefault("oidc.redirect_url", "")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("import.max_rows", 5000)
	v.SetDefault("import.workers", 4)
	v.SetDefault("import.unit", "kg")
	v.SetDefault("goals.daily_steps", 10000)
	v.SetDefault("goals.weekly_workouts", 4)
}

// Load reads configuration from cfgFile, or ./fitmetrics.yaml if cfgFile is
// empty, then applies environment overrides. A missing default file is not
// an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FITMETRICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.url", "FITMETRICS_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || (!errors.As(err, &notFound) && !os.IsNotExist(err)) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if !c.Auth.Disabled && c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required unless auth.disabled is set")
	}
	if c.OIDC.Enabled() && (c.OIDC.ClientID == "" || c.OIDC.RedirectURL == "") {
		return errors.New("oidc.client_id and oidc.redirect_url are required when oidc.issuer is set")
	}
	if c.Import.Unit != "kg" && c.Import.Unit != "lb" {
		return fmt.Errorf("import.unit must be kg or lb, got %q", c.Import.Unit)
	}
	return nil
}
