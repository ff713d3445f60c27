package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "./config/config.prod.yml"

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
		Mode           string   `yaml:"mode"`
	} `yaml:"server"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`

	Openai struct {
		GptApiKey string `yaml:"gptApiKey"`
		Model     string `yaml:"model"`
	} `yaml:"openai"`

	Unsplash struct {
		AccessKey string `yaml:"accessKey"`
	} `yaml:"unsplash"`

	Generation struct {
		Provider            string `yaml:"provider"`
		TimeoutSeconds      int    `yaml:"timeoutSeconds"`
		ImageTimeoutSeconds int    `yaml:"imageTimeoutSeconds"`
		MaxPerWindow        int    `yaml:"maxPerWindow"`
		WindowSeconds       int    `yaml:"windowSeconds"`
	} `yaml:"generation"`

	JWT struct {
		Secret        string `yaml:"secret"`
		ExpiryMinutes int    `yaml:"expiryMinutes"`
	} `yaml:"jwt"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Uploads struct {
		Driver       string `yaml:"driver"`
		Dir          string `yaml:"dir"`
		PublicPrefix string `yaml:"publicPrefix"`
		Bucket       string `yaml:"bucket"`
		Region       string `yaml:"region"`
	} `yaml:"uploads"`

	Log struct {
		Mode string `yaml:"mode"`
	} `yaml:"log"`
}

// LoadConfig reads the configuration file, applies environment overrides
// and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// Load is LoadConfig for tools that can run on environment variables alone:
// an empty path or a missing file yields a config built from the
// environment and defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		cfg, err := LoadConfig(path)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}
	var cfg Config
	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.Database.URI, "MONGODB_URI")
	setString(&c.Gemini.ApiKey, "GEMINI_API_KEY")
	setString(&c.Openai.GptApiKey, "OPENAI_API_KEY")
	setString(&c.Unsplash.AccessKey, "UNSPLASH_ACCESS_KEY")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 1313
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-1.5-flash"
	}
	if c.Openai.Model == "" {
		c.Openai.Model = "gpt-4o-mini"
	}
	if c.Generation.Provider == "" {
		c.Generation.Provider = "gemini"
	}
	if c.Generation.TimeoutSeconds <= 0 {
		c.Generation.TimeoutSeconds = 60
	}
	if c.Generation.ImageTimeoutSeconds <= 0 {
		c.Generation.ImageTimeoutSeconds = 10
	}
	if c.Generation.MaxPerWindow <= 0 {
		c.Generation.MaxPerWindow = 5
	}
	if c.Generation.WindowSeconds <= 0 {
		c.Generation.WindowSeconds = 60
	}
	if c.JWT.ExpiryMinutes <= 0 {
		c.JWT.ExpiryMinutes = 24 * 60
	}
	if c.Uploads.Driver == "" {
		c.Uploads.Driver = "local"
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "./uploads"
	}
	if c.Uploads.PublicPrefix == "" {
		c.Uploads.PublicPrefix = "/uploads"
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.URI == "" {
		errs = append(errs, errors.New("database.uri is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	switch c.Generation.Provider {
	case "gemini", "openai":
	default:
		errs = append(errs, fmt.Errorf("unknown generation provider %q", c.Generation.Provider))
	}
	switch c.Uploads.Driver {
	case "local":
	case "s3":
		if c.Uploads.Bucket == "" {
			errs = append(errs, errors.New("uploads.bucket is required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown uploads driver %q", c.Uploads.Driver))
	}
	return errors.Join(errs...)
}

func (c *Config) GenerationTimeout() time.Duration {
	return time.Duration(c.Generation.TimeoutSeconds) * time.Second
}

func (c *Config) ImageTimeout() time.Duration {
	return time.Duration(c.Generation.ImageTimeoutSeconds) * time.Second
}

func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.Generation.WindowSeconds) * time.Second
}

func (c *Config) TokenExpiry() time.Duration {
	return time.Duration(c.JWT.ExpiryMinutes) * time.Minute
}
