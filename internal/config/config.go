package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	AI struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"ai"`
	User struct {
		ID   string `yaml:"id"`
		Tier string `yaml:"tier"`
	} `yaml:"user"`
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	var cfg Config

	// 2. Load YAML config; a missing file falls back to env and defaults
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if apiKey := os.Getenv("REGUFLOW_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if dbPath := os.Getenv("REGUFLOW_DB"); dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if userID := os.Getenv("REGUFLOW_USER"); userID != "" {
		cfg.User.ID = userID
	}
	if userTier := os.Getenv("REGUFLOW_TIER"); userTier != "" {
		cfg.User.Tier = userTier
	}

	// 4. Defaults
	if cfg.Store.Path == "" {
		cfg.Store.Path = "reguflow.db"
	}
	if cfg.User.ID == "" {
		cfg.User.ID = "local"
	}

	return &cfg, nil
}
