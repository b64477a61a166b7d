package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED"`
	} `yaml:"redis"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	// Matching holds the policy knobs of the match workflow: scoring
	// weights, health thresholds and discovery paging.
	Matching struct {
		RatingWeight    float64 `yaml:"rating_weight" env:"MATCHING_RATING_WEIGHT"`
		ProximityWeight float64 `yaml:"proximity_weight" env:"MATCHING_PROXIMITY_WEIGHT"`
		LevelWeight     float64 `yaml:"level_weight" env:"MATCHING_LEVEL_WEIGHT"`
		DefaultRadiusKm float64 `yaml:"default_radius_km" env:"MATCHING_DEFAULT_RADIUS_KM"`
		MaxResults      int     `yaml:"max_results" env:"MATCHING_MAX_RESULTS"`
		DormantAfter    string  `yaml:"dormant_after" env:"MATCHING_DORMANT_AFTER"`
		InactiveAfter   string  `yaml:"inactive_after" env:"MATCHING_INACTIVE_AFTER"`
	} `yaml:"matching"`

	Challenge struct {
		DailyPoints int `yaml:"daily_points" env:"CHALLENGE_DAILY_POINTS"`
	} `yaml:"challenge"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "skillbridge"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Redis.Addr = "localhost:6379"
	config.Redis.Enabled = false

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "skillbridge.app"

	// Scoring weights must sum to 1; see services.ScoringWeights.
	config.Matching.RatingWeight = 0.4
	config.Matching.ProximityWeight = 0.3
	config.Matching.LevelWeight = 0.3
	config.Matching.DefaultRadiusKm = 50
	config.Matching.MaxResults = 50
	config.Matching.DormantAfter = "168h"  // 7 days without activity
	config.Matching.InactiveAfter = "720h" // 30 days without activity

	config.Challenge.DailyPoints = 10

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	weightSum := config.Matching.RatingWeight + config.Matching.ProximityWeight + config.Matching.LevelWeight
	if weightSum < 0.999 || weightSum > 1.001 {
		return fmt.Errorf("matching weights must sum to 1, got %.3f", weightSum)
	}

	if _, err := time.ParseDuration(config.Matching.DormantAfter); err != nil {
		return fmt.Errorf("invalid dormant_after duration: %w", err)
	}
	if _, err := time.ParseDuration(config.Matching.InactiveAfter); err != nil {
		return fmt.Errorf("invalid inactive_after duration: %w", err)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// AccessTokenExp returns the parsed access token lifetime.
func (c *Config) AccessTokenExp() time.Duration {
	d, err := time.ParseDuration(c.JWT.AccessTokenExpiration)
	if err != nil {
		return time.Hour
	}
	return d
}

// DormantAfter returns the parsed dormant threshold.
func (c *Config) DormantAfter() time.Duration {
	d, err := time.ParseDuration(c.Matching.DormantAfter)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}

// InactiveAfter returns the parsed inactive threshold.
func (c *Config) InactiveAfter() time.Duration {
	d, err := time.ParseDuration(c.Matching.InactiveAfter)
	if err != nil {
		return 30 * 24 * time.Hour
	}
	return d
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.ToLower(GetEnv(key, ""))
	if valueStr == "" {
		return defaultValue
	}
	if valueStr == "true" || valueStr == "1" || valueStr == "yes" {
		return true
	}
	if valueStr == "false" || valueStr == "0" || valueStr == "no" {
		return false
	}
	return defaultValue
}
