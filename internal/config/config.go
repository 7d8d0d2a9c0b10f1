package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gdugdh24/purposematch/internal/compatibility"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Kafka        KafkaConfig
	Matching     MatchingConfig
	Logging      LoggingConfig
	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// MatchingConfig tunes candidate selection and match generation.
// CustomWeights replaces the preset when any MATCH_WEIGHT_* key is set.
type MatchingConfig struct {
	WeightPreset     string
	CustomWeights    *compatibility.Weights
	DefaultLimit     int
	MaxLimit         int
	MinScore         int
	MaxCandidates    int
	RequireVerified  bool
	PrefilterCountry bool
	Concurrency      int
	Timeout          time.Duration
	LockTTL          time.Duration
	MaxRetries       int
	RetryBaseDelay   time.Duration
}

type LoggingConfig struct {
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 50)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("KAFKA_TOPIC", "purposematch.matches")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("MATCH_WEIGHT_PRESET", compatibility.PresetNarrative)
	v.SetDefault("MATCH_DEFAULT_LIMIT", 10)
	v.SetDefault("MATCH_MAX_LIMIT", 50)
	v.SetDefault("MATCH_MIN_SCORE", 50)
	v.SetDefault("MATCH_MAX_CANDIDATES", 100)
	v.SetDefault("MATCH_REQUIRE_VERIFIED", true)
	v.SetDefault("MATCH_PREFILTER_COUNTRY", false)
	v.SetDefault("MATCH_CONCURRENCY", 8)
	v.SetDefault("MATCH_TIMEOUT", 10*time.Second)
	v.SetDefault("MATCH_LOCK_TTL", 30*time.Second)
	v.SetDefault("MATCH_MAX_RETRIES", 3)
	v.SetDefault("MATCH_RETRY_BASE_DELAY", 50*time.Millisecond)
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetInt("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			DBName:       v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSL_MODE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Matching: MatchingConfig{
			WeightPreset:     v.GetString("MATCH_WEIGHT_PRESET"),
			CustomWeights:    customWeights(v),
			DefaultLimit:     v.GetInt("MATCH_DEFAULT_LIMIT"),
			MaxLimit:         v.GetInt("MATCH_MAX_LIMIT"),
			MinScore:         v.GetInt("MATCH_MIN_SCORE"),
			MaxCandidates:    v.GetInt("MATCH_MAX_CANDIDATES"),
			RequireVerified:  v.GetBool("MATCH_REQUIRE_VERIFIED"),
			PrefilterCountry: v.GetBool("MATCH_PREFILTER_COUNTRY"),
			Concurrency:      v.GetInt("MATCH_CONCURRENCY"),
			Timeout:          v.GetDuration("MATCH_TIMEOUT"),
			LockTTL:          v.GetDuration("MATCH_LOCK_TTL"),
			MaxRetries:       v.GetInt("MATCH_MAX_RETRIES"),
			RetryBaseDelay:   v.GetDuration("MATCH_RETRY_BASE_DELAY"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

var weightKeys = []string{
	"MATCH_WEIGHT_DOMAIN",
	"MATCH_WEIGHT_ARCHETYPE",
	"MATCH_WEIGHT_MODALITY",
	"MATCH_WEIGHT_NARRATIVE",
	"MATCH_WEIGHT_DEMOGRAPHICS",
	"MATCH_WEIGHT_AGE",
}

// customWeights reads explicit weights. Unset keys count as zero once any
// of them is set.
func customWeights(v *viper.Viper) *compatibility.Weights {
	set := false
	for _, key := range weightKeys {
		if v.IsSet(key) {
			set = true
			break
		}
	}
	if !set {
		return nil
	}

	return &compatibility.Weights{
		Domain:       v.GetFloat64("MATCH_WEIGHT_DOMAIN"),
		Archetype:    v.GetFloat64("MATCH_WEIGHT_ARCHETYPE"),
		Modality:     v.GetFloat64("MATCH_WEIGHT_MODALITY"),
		Narrative:    v.GetFloat64("MATCH_WEIGHT_NARRATIVE"),
		Demographics: v.GetFloat64("MATCH_WEIGHT_DEMOGRAPHICS"),
		Age:          v.GetFloat64("MATCH_WEIGHT_AGE"),
	}
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	return c.Matching.Validate()
}

// Validate checks the matching knobs.
func (c *MatchingConfig) Validate() error {
	if _, err := c.Weights(); err != nil {
		return err
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("match min score must be within 0..100, got %d", c.MinScore)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("match default limit must be positive")
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("match max limit must be at least the default limit")
	}
	if c.MaxCandidates < 1 {
		return fmt.Errorf("match max candidates must be positive")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("match concurrency must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("match timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("match max retries must not be negative")
	}
	if c.RetryBaseDelay <= 0 {
		return fmt.Errorf("match retry base delay must be positive")
	}
	return nil
}

// Weights returns the explicit weights when configured, else the preset.
func (c *MatchingConfig) Weights() (compatibility.Weights, error) {
	if c.CustomWeights != nil {
		if err := c.CustomWeights.Validate(); err != nil {
			return compatibility.Weights{}, err
		}
		return *c.CustomWeights, nil
	}
	return compatibility.WeightsByPreset(c.WeightPreset)
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled reports whether a redis host is configured.
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Enabled reports whether kafka brokers are configured.
func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
