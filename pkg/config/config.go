package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Completion CompletionConfig `mapstructure:"completion"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Profile    ProfileConfig    `mapstructure:"profile"`
}

type CompletionConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	TopP        float64       `mapstructure:"top_p"`
	Timeout     time.Duration `mapstructure:"timeout"`
	// StructuredOutput enables schema-constrained crop recommendations.
	// Only turn it on for models whose endpoint accepts a json_schema
	// response format; the default Groq model does not.
	StructuredOutput bool `mapstructure:"structured_output"`
}

// TelegramConfig enables the bot when Token is set.
type TelegramConfig struct {
	Token string `mapstructure:"token"`
	Debug bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type StorageConfig struct {
	Backend  string         `mapstructure:"backend"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	// Mode is "development" for console output; anything else is JSON.
	Mode string `mapstructure:"mode"`
}

type ProfileConfig struct {
	StorageKey string `mapstructure:"storage_key"`
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}
	if u.Hostname() == "" {
		return DatabaseConfig{}, fmt.Errorf("missing host in %q", u.Redacted())
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		if _, err := fmt.Sscanf(u.Port(), "%d", &port); err != nil {
			return DatabaseConfig{}, fmt.Errorf("invalid port %q", u.Port())
		}
	}

	sslMode := u.Query().Get("sslmode")
	if sslMode == "" {
		sslMode = "disable"
	}

	return DatabaseConfig{
		URL:      dbURL,
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   strings.TrimPrefix(u.Path, "/"),
		SSLMode:  sslMode,
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("completion.api_key", "")
	v.SetDefault("completion.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("completion.model", "llama3-8b-8192")
	v.SetDefault("completion.max_tokens", 1000)
	v.SetDefault("completion.temperature", 0.7)
	v.SetDefault("completion.top_p", 0.9)
	v.SetDefault("completion.timeout", 60*time.Second)
	v.SetDefault("completion.structured_output", false)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.debug", false)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("storage.backend", BackendMemory)
	v.SetDefault("storage.database.url", "")
	v.SetDefault("storage.database.host", "localhost")
	v.SetDefault("storage.database.port", 5432)
	v.SetDefault("storage.database.user", "postgres")
	v.SetDefault("storage.database.password", "")
	v.SetDefault("storage.database.dbname", "mudhumeni")
	v.SetDefault("storage.database.sslmode", "disable")
	v.SetDefault("storage.redis.url", "")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)

	v.SetDefault("logging.mode", "production")
	v.SetDefault("profile.storage_key", "user")
}

// LoadConfig reads path when it exists, then applies MUDHUMENI_* variables
// (MUDHUMENI_COMPLETION_API_KEY for completion.api_key) and the
// conventional GROQ_API_KEY, TELEGRAM_TOKEN, DATABASE_URL and REDIS_URL.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MUDHUMENI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range map[string][]string{
		"completion.api_key":   {"MUDHUMENI_COMPLETION_API_KEY", "GROQ_API_KEY"},
		"telegram.token":       {"MUDHUMENI_TELEGRAM_TOKEN", "TELEGRAM_TOKEN"},
		"storage.database.url": {"MUDHUMENI_STORAGE_DATABASE_URL", "DATABASE_URL"},
		"storage.redis.url":    {"MUDHUMENI_STORAGE_REDIS_URL", "REDIS_URL"},
	} {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if dbURL := config.Storage.Database.URL; dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		config.Storage.Database = dbConfig
	}

	return &config, nil
}

// Validate reports configuration that cannot start the service. There is
// no built-in API key.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Completion.APIKey) == "" {
		errs = append(errs, errors.New("completion API key is required: set MUDHUMENI_COMPLETION_API_KEY or GROQ_API_KEY"))
	}
	if c.Completion.Model == "" {
		errs = append(errs, errors.New("completion.model is required"))
	}
	if c.Completion.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("completion.max_tokens must be positive, got %d", c.Completion.MaxTokens))
	}

	switch c.Storage.Backend {
	case BackendMemory, BackendPostgres, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}

	return errors.Join(errs...)
}
