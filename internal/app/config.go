package app

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"
)

type HeaderConfig struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

type GSheetConfig struct {
	CredentialsPath string `toml:"credentials_path"`
	SheetID         string `toml:"sheet_id"`
	SheetName       string `toml:"sheet_name"`
	Schedule        string `toml:"schedule"`
	TimestampRange  string `toml:"timestamp_range"`
}

type Config struct {
	Server struct {
		Port       string `toml:"port"`
		EnableAuth bool   `toml:"enable_auth"`
	} `toml:"server"`

	Auth struct {
		RedisURL           string `toml:"redis_url"`
		RateLimitPerMinute int    `toml:"rate_limit_per_minute"`
	} `toml:"auth"`

	API struct {
		AdminHeaders []HeaderConfig `toml:"admin_headers"`
	} `toml:"api"`

	Database struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
	} `toml:"database"`

	Portal struct {
		// Module is the competition track the phase/evaluation portal serves.
		Module string `toml:"module"`
	} `toml:"portal"`

	GSheet []GSheetConfig `toml:"gsheet"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if config.Server.Port == "" {
		return nil, fmt.Errorf("Server port is not specified in config, use a value like :9999")
	}
	if config.Portal.Module == "" {
		config.Portal.Module = "business_innovation"
	}

	logger.Debug.Printf("Loaded portal config: module=%s", config.Portal.Module)

	return &config, nil
}
