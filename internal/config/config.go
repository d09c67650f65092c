package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod | test
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Storage struct {
		DSN string `yaml:"dsn"`
		// Tiempo máximo para abrir la conexión (ej: "5s").
		ConnectTimeout string `yaml:"connect_timeout"`
	} `yaml:"storage"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Flags struct {
		// Reset + init del schema al arrancar (solo dev/demo).
		ResetOnStart bool `yaml:"reset_on_start"`
	} `yaml:"flags"`
}

// ErrMissingDSN: ni el YAML ni CONTACTS_DSN definen storage.dsn.
var ErrMissingDSN = errors.New("config: storage.dsn is required")

// Load lee el YAML en path (si path es "" solo usa env), aplica overrides de
// entorno y defaults. Un .env en el cwd se carga si existe.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}
	applyEnv(&c)
	applyDefaults(&c)

	if _, err := time.ParseDuration(c.Storage.ConnectTimeout); err != nil {
		return nil, err
	}
	return &c, nil
}

// FromEnv es Load sin archivo.
func FromEnv() (*Config, error) { return Load("") }

func applyEnv(c *Config) {
	if v := strings.TrimSpace(os.Getenv("APP_ENV")); v != "" {
		c.App.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("CONTACTS_DSN")); v != "" {
		c.Storage.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("CONTACTS_HTTP_ADDR")); v != "" {
		c.Server.Addr = v
	}
}

func applyDefaults(c *Config) {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.ConnectTimeout == "" {
		c.Storage.ConnectTimeout = "5s"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}

// ConnectTimeout ya validado por Load.
func (c *Config) ConnectTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Storage.ConnectTimeout)
	return d
}

// Validate verifica lo mínimo para abrir el store.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.DSN) == "" {
		return ErrMissingDSN
	}
	return nil
}
