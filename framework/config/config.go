package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/km-arc/go-beans/framework/http/validation"
)

// Config is the boot configuration of a beans application.
type Config struct {
	App   AppConfig
	Beans BeansConfig
	Log   LogConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
	// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration
}

type BeansConfig struct {
	// ManifestDir holds the YAML manifests listing bean configurations.
	ManifestDir string
	// Inspect serves the bean inspector routes.
	Inspect bool
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // console | json
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	appEnv := env("APP_ENV", "local")
	defaultFormat := "console"
	if appEnv == "production" {
		defaultFormat = "json"
	}

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoBeans"),
			Env:   appEnv,
			Debug: envBool("APP_DEBUG", true),
			Port:  env("APP_PORT", "8000"),

			ShutdownTimeout: time.Duration(envInt("APP_SHUTDOWN_TIMEOUT", 5)) * time.Second,
		},
		Beans: BeansConfig{
			ManifestDir: env("BEANS_MANIFEST_DIR", "bean-configurations"),
			Inspect:     envBool("BEANS_INSPECT", false),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", defaultFormat),
		},
	}
}

// rules validates the values Load produced.
var rules = validation.Rules{
	"APP_NAME":           "required",
	"APP_ENV":            "required|in:local,production,testing",
	"APP_PORT":           "required|integer|between:1,65535",
	"BEANS_MANIFEST_DIR": "required",
	"LOG_LEVEL":          "required|in:debug,info,warn,error",
	"LOG_FORMAT":         "required|in:console,json",
}

// Validate checks the configuration and reports every invalid field.
func (c *Config) Validate() error {
	v := validation.Make(map[string]string{
		"APP_NAME":           c.App.Name,
		"APP_ENV":            c.App.Env,
		"APP_PORT":           c.App.Port,
		"BEANS_MANIFEST_DIR": c.Beans.ManifestDir,
		"LOG_LEVEL":          c.Log.Level,
		"LOG_FORMAT":         c.Log.Format,
	}, rules)
	if v.Passes() {
		return nil
	}
	return errors.Errorf("invalid configuration: %s", strings.Join(v.Errors().Messages(), " "))
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
