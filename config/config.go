package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/juju/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"tourism-recommender-server/log"
)

const (
	ModeReal = "real"
	ModeTest = "test"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultDatabaseName = "tourism_recommender_db"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Rating    RatingConfig    `mapstructure:"rating"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" validate:"required"`
	// Mode is "real" or "test": test mode skips firebase verification and
	// enables the reset endpoint
	Mode string `mapstructure:"mode" validate:"oneof=real test"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver" validate:"oneof=postgres sqlite"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type RecommendConfig struct {
	CacheTTL     time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`
	Deduplicate  bool          `mapstructure:"deduplicate"`
	ExcludeRated bool          `mapstructure:"exclude_rated"`
}

type RatingConfig struct {
	MaxRetries uint `mapstructure:"max_retries" validate:"gte=1,lte=20"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "80")
	v.SetDefault("server.mode", ModeReal)
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", defaultDatabaseName)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("recommend.cache_ttl", time.Minute)
	v.SetDefault("recommend.deduplicate", true)
	v.SetDefault("recommend.exclude_rated", true)
	v.SetDefault("rating.max_retries", 5)
}

// LoadConfig reads .env, the optional config file at path and the environment.
// Environment variables use the TOURISM_ prefix (TOURISM_DATABASE_HOST); the
// legacy DB_USERNAME, DB_PASSWORD and TEST_MODE variables are honored too.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Logger().Debug("no .env file loaded", zap.Error(err))
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("TOURISM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.user", "TOURISM_DATABASE_USER", "DB_USERNAME")
	_ = v.BindEnv("database.password", "TOURISM_DATABASE_PASSWORD", "DB_PASSWORD")
	_ = v.BindEnv("server.mode", "TOURISM_SERVER_MODE", "TEST_MODE")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "read config file %s", path)
		}
		log.Logger().Info("using config file", zap.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Trace(err)
	}
	if cfg.Server.Mode == ModeTest && cfg.Database.Name == defaultDatabaseName {
		cfg.Database.Name += "_test"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return errors.NewNotValid(err, "invalid config")
	}
	return nil
}

// DataSourceName returns the explicit dsn, or builds one for postgres.
func (db DatabaseConfig) DataSourceName() string {
	if db.DSN != "" || db.Driver != DriverPostgres {
		return db.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		db.Host, db.User, db.Password, db.Name, db.Port, db.SSLMode)
}

func (cfg *Config) IsTestMode() bool {
	return cfg.Server.Mode == ModeTest
}
