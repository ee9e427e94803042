// Package config carga la configuración del servicio en capas:
// defaults del struct, archivo YAML opcional y variables de entorno.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar permite apuntar a un YAML fuera de las rutas por defecto.
const PathEnvVar = "CONFIG_PATH"

var DefaultPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	Vision    VisionConfig    `koanf:"vision"`
	Log       LogConfig       `koanf:"log"`
	Recommend RecommendConfig `koanf:"recommend"`
}

type AppConfig struct {
	Name string `koanf:"name"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimit       int           `koanf:"rate_limit"` // 0 = sin límite
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// DatabaseConfig: DSN vacío => repos in-memory.
type DatabaseConfig struct {
	Driver       string `koanf:"driver"` // memory | pgx | sqlite
	DSN          string `koanf:"dsn"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
	SeedMockData bool   `koanf:"seed_mock_data"`
}

// AuthConfig: Secret vacío => modo dev con X-Debug-User-ID.
type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
	Issuer    string `koanf:"issuer"`
}

type VisionConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Key      string        `koanf:"key"`
	Timeout  time.Duration `koanf:"timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type RecommendConfig struct {
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
}

func defaults() Config {
	return Config{
		App: AppConfig{Name: "tingrrr"},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimit:       0,
			RateLimitWindow: time.Minute,
		},
		Database: DatabaseConfig{
			Driver:       "pgx",
			AutoMigrate:  true,
			SeedMockData: true,
		},
		Auth: AuthConfig{Issuer: "tingrrr"},
		Vision: VisionConfig{
			Timeout: 15 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Recommend: RecommendConfig{
			DefaultLimit: 10,
			MaxLimit:     50,
		},
	}
}

// envKeys mapea variables de entorno a paths de koanf. Las que no
// están acá se ignoran.
var envKeys = map[string]string{
	"app_name":                "app.name",
	"port":                    "server.port",
	"read_timeout":            "server.read_timeout",
	"write_timeout":           "server.write_timeout",
	"shutdown_timeout":        "server.shutdown_timeout",
	"cors_origins":            "server.cors_origins",
	"rate_limit_requests":     "server.rate_limit",
	"rate_limit_window":       "server.rate_limit_window",
	"db_driver":               "database.driver",
	"db_dsn":                  "database.dsn",
	"db_auto_migrate":         "database.auto_migrate",
	"seed_mock_data":          "database.seed_mock_data",
	"jwt_secret":              "auth.jwt_secret",
	"jwt_issuer":              "auth.issuer",
	"azure_vision_endpoint":   "vision.endpoint",
	"azure_vision_key":        "vision.key",
	"vision_timeout":          "vision.timeout",
	"log_level":               "log.level",
	"log_format":              "log.format",
	"recommend_default_limit": "recommend.default_limit",
	"recommend_max_limit":     "recommend.max_limit",
}

var sliceKeys = []string{"server.cors_origins"}

func envTransform(key string) string {
	return envKeys[strings.ToLower(key)]
}

// Load aplica defaults < archivo < entorno y valida el resultado.
// path vacío busca CONFIG_PATH y luego DefaultPaths.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	if err := splitSlices(k); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	switch c.Database.Driver {
	case "memory", "pgx", "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("database.driver must be memory, pgx or sqlite, got %q", c.Database.Driver))
	}
	if c.Recommend.DefaultLimit < 1 {
		errs = append(errs, errors.New("recommend.default_limit must be >= 1"))
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		errs = append(errs, errors.New("recommend.max_limit must be >= recommend.default_limit"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("server.rate_limit must be >= 0"))
	}
	if c.Server.RateLimit > 0 && c.Server.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("server.rate_limit_window must be > 0"))
	}
	if c.Vision.Timeout <= 0 {
		errs = append(errs, errors.New("vision.timeout must be > 0"))
	}
	return errors.Join(errs...)
}

// Addr devuelve ":<port>" para http.Server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// InMemory indica que se usan repos en memoria (driver memory o sin DSN).
func (c Config) InMemory() bool {
	return c.Database.Driver == "memory" || strings.TrimSpace(c.Database.DSN) == ""
}

func findFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitSlices convierte "a, b" del entorno en []string.
func splitSlices(k *koanf.Koanf) error {
	for _, key := range sliceKeys {
		s, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(key, parts); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}
