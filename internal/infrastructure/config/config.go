package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/fixdesk/fixdesk/internal/shared/config"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	RateLimit    sharedConfig.RateLimitConfig    `mapstructure:"rate_limit"`
	Upload       sharedConfig.UploadConfig       `mapstructure:"upload"`
	Notification sharedConfig.NotificationConfig `mapstructure:"notification"`
	Gate         sharedConfig.GateConfig         `mapstructure:"gate"`
}

const defaultJWTSecret = "change-me-in-production"

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from an optional yaml file and FIXDESK_* environment variables.
// configPath may be empty, in which case ./configs/config.yaml is used when it exists.
func Load(env, configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("FIXDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &cfg
	appConfigMu.Unlock()

	return &cfg, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case sharedConfig.DriverMySQL, sharedConfig.DriverPostgres, sharedConfig.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.Auth.JWT.Secret == "" {
		return errors.New("auth.jwt.secret is required")
	}
	if cfg.Server.Mode == constants.EnvProduction && cfg.Auth.JWT.Secret == defaultJWTSecret {
		return errors.New("auth.jwt.secret must be changed in production")
	}
	if cfg.Auth.JWT.SessionDays <= 0 {
		return errors.New("auth.jwt.session_days must be positive")
	}
	if cfg.Upload.MaxFiles <= 0 || cfg.Upload.MaxFileSize <= 0 {
		return errors.New("upload.max_files and upload.max_file_size must be positive")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", constants.EnvDevelopment)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 60)

	// Database defaults
	v.SetDefault("database.driver", sharedConfig.DriverMySQL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "fixdesk_dev")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.password.bcrypt_cost", 10)
	v.SetDefault("auth.jwt.secret", defaultJWTSecret)
	v.SetDefault("auth.jwt.session_days", 7)
	v.SetDefault("auth.cookie.name", "session")
	v.SetDefault("auth.cookie.domain", "")
	v.SetDefault("auth.cookie.path", "/")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.cookie.same_site", "Lax")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Rate limit defaults, only effective with redis enabled
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 20)
	v.SetDefault("rate_limit.window", 60)

	// Upload defaults
	v.SetDefault("upload.dir", "public/uploads")
	v.SetDefault("upload.public_prefix", "/uploads")
	v.SetDefault("upload.max_files", 5)
	v.SetDefault("upload.max_file_size", 5*1024*1024)

	// Notification defaults
	v.SetDefault("notification.list_limit", 10)
	v.SetDefault("notification.email.enabled", false)
	v.SetDefault("notification.email.smtp_host", "localhost")
	v.SetDefault("notification.email.smtp_port", 1025)
	v.SetDefault("notification.email.from_address", "noreply@fixdesk.local")
	v.SetDefault("notification.email.from_name", "FixDesk")

	v.SetDefault("gate.login_path", "/login")
}
