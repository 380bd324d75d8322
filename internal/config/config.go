package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default location of the config file.
const ConfigPath = "config.yaml"

// MinioConfig selects the optional S3-compatible backend for final documents.
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"useSSL"`
}

// Config represents configuration loaded from YAML, shared by the server
// and the CLI. Environment variables override file values.
type Config struct {
	Port            string      `yaml:"port"`
	DBPath          string      `yaml:"dbPath"`
	UploadDir       string      `yaml:"uploadDir"`
	LogLevel        string      `yaml:"logLevel"`
	ServerURL       string      `yaml:"serverURL"`
	GeminiAPIKey    string      `yaml:"geminiAPIKey"`
	GenerationModel string      `yaml:"generationModel"`
	FinalDocBackend string      `yaml:"finalDocBackend"` // "disk" (default) or "minio"
	Minio           MinioConfig `yaml:"minio"`
}

// Load reads config from path (defaults to config.yaml). A missing file is
// not an error; defaults and environment variables still apply. The Gemini
// API key is deliberately not validated here: the server never calls the
// model, and the CLI surfaces a missing key when it builds its AI client.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "brds.db"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:" + cfg.Port
	}
	if cfg.FinalDocBackend == "" {
		cfg.FinalDocBackend = "disk"
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("BRD_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("BRD_UPLOAD_DIR"); v != "" {
		cfg.UploadDir = v
	}
	if v := os.Getenv("BRD_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_GENERATION_MODEL"); v != "" {
		cfg.GenerationModel = v
	}
}

func validateConfig(cfg Config) error {
	if cfg.Port == "" {
		return errors.New("config: port is required")
	}
	if cfg.DBPath == "" {
		return errors.New("config: dbPath is required")
	}
	if cfg.UploadDir == "" {
		return errors.New("config: uploadDir is required")
	}
	switch cfg.FinalDocBackend {
	case "disk":
	case "minio":
		if cfg.Minio.Endpoint == "" || cfg.Minio.Bucket == "" {
			return errors.New("config: minio backend requires endpoint and bucket")
		}
	default:
		return fmt.Errorf("config: unknown finalDocBackend %q", cfg.FinalDocBackend)
	}
	return nil
}
