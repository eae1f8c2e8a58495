package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"
	_ "time/tzdata" // posts.time_zone must resolve on minimal images

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/saunarec/internal/tfidf"
)

// Config holds the saunarec server configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Recommend RecommendConfig `yaml:"recommend"`
	Posts     PostsConfig     `yaml:"posts"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings for write endpoints.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	StaticDir       string   `yaml:"static_dir"` // serves index.html at / when set
	CORSOrigins     []string `yaml:"cors_origins"`
}

// CatalogConfig describes the catalog source file.
type CatalogConfig struct {
	Path      string        `yaml:"path"` // .csv or .xlsx
	Sheet     string        `yaml:"sheet"`
	Columns   ColumnsConfig `yaml:"columns"`
	Stopwords []string      `yaml:"stopwords"`
}

// ColumnsConfig overrides catalog header names. Empty means the default header.
type ColumnsConfig struct {
	Name        string `yaml:"name"`
	Location    string `yaml:"location"`
	Price       string `yaml:"price"`
	BeginnerTip string `yaml:"beginner_tip"`
	RefreshType string `yaml:"refresh_type"`
	SaunaTemp   string `yaml:"sauna_temp"`
	WaterTemp   string `yaml:"water_temp"`
}

// RecommendConfig holds ranking settings.
type RecommendConfig struct {
	TopK int `yaml:"top_k"`
}

// PostsConfig selects and configures the post store.
type PostsConfig struct {
	Driver           string        `yaml:"driver"` // file, redis (default: file)
	Path             string        `yaml:"path"`
	Redis            RedisConfig   `yaml:"redis"`
	TimeZone         string        `yaml:"time_zone"`
	RateLimit        int           `yaml:"rate_limit"` // posts per window per IP, 0 disables
	RateLimitWindow  time.Duration `yaml:"rate_limit_window"`
	ReadinessTimeout int           `yaml:"readiness_timeout_sec"`
}

// RedisConfig holds Redis/Valkey connection settings for the post store.
type RedisConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	Key      string   `yaml:"key"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory, if present, is loaded into the
// process environment first.
func Load(env string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if len(c.HTTP.CORSOrigins) == 0 {
		c.HTTP.CORSOrigins = []string{"*"}
	}
	if c.Catalog.Stopwords == nil {
		c.Catalog.Stopwords = append([]string(nil), tfidf.DefaultStopwords...)
	}
	if c.Recommend.TopK <= 0 {
		c.Recommend.TopK = 5
	}
	if c.Posts.Driver == "" {
		c.Posts.Driver = "file"
	}
	if c.Posts.Path == "" {
		c.Posts.Path = "posts.json"
	}
	if c.Posts.Redis.Key == "" {
		c.Posts.Redis.Key = "saunarec:posts"
	}
	if c.Posts.TimeZone == "" {
		c.Posts.TimeZone = "Asia/Tokyo"
	}
	if c.Posts.RateLimitWindow <= 0 {
		c.Posts.RateLimitWindow = time.Minute
	}
	if c.Posts.ReadinessTimeout <= 0 {
		c.Posts.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path is required")
	}
	switch strings.ToLower(filepath.Ext(c.Catalog.Path)) {
	case ".csv", ".xlsx":
	default:
		return fmt.Errorf("catalog.path must be a .csv or .xlsx file, got %q", c.Catalog.Path)
	}
	switch c.Posts.Driver {
	case "file":
	case "redis":
		if len(c.Posts.Redis.Addrs) == 0 {
			return fmt.Errorf("posts.redis.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("posts.driver must be \"file\" or \"redis\", got %q", c.Posts.Driver)
	}
	if _, err := time.LoadLocation(c.Posts.TimeZone); err != nil {
		return fmt.Errorf("posts.time_zone: %w", err)
	}
	if c.Posts.RateLimit < 0 {
		return fmt.Errorf("posts.rate_limit must not be negative, got %d", c.Posts.RateLimit)
	}
	return nil
}

// Location returns the post time zone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Posts.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// loadDotEnv loads path into the environment without overriding set variables.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// Relative to the source tree, for go run and tests.
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
