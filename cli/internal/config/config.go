package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/prisma-cascade/internal/debug"
)

// AppFs is the filesystem configuration and schema files are read from.
var AppFs = afero.NewOsFs()

const (
	configName = ".prisma-cascade"
	envPrefix  = "PRISMA_CASCADE"
)

// Config holds the application configuration
type Config struct {
	SchemaPath      string
	Strict          bool
	Format          string
	DatabaseURL     string
	Provider        string
	RequiredVersion string
}

// LoadConfig loads configuration from the working directory, the user's home
// and the environment.
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Load(wd, home)
}

// Load reads configuration with dir as the project directory. Later sources
// win: defaults, config files, .env, .env.local, PRISMA_CASCADE_* variables.
func Load(dir, home string) (*Config, error) {
	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(home)
	v.AddConfigPath(filepath.Join(home, ".config", "prisma-cascade"))

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("schema_path", "")
	v.SetDefault("strict", false)
	v.SetDefault("format", "text")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		debug.Debug("Loaded config file", "path", v.ConfigFileUsed())
	}

	// .env does not override the environment, .env.local does.
	if err := loadEnvFile(filepath.Join(dir, ".env"), false); err != nil {
		return nil, err
	}
	if err := loadEnvFile(filepath.Join(dir, ".env.local"), true); err != nil {
		return nil, err
	}

	cfg := &Config{
		SchemaPath:      v.GetString("schema_path"),
		Strict:          v.GetBool("strict"),
		Format:          v.GetString("format"),
		DatabaseURL:     v.GetString("database_url"),
		Provider:        v.GetString("provider"),
		RequiredVersion: v.GetString("required_version"),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return cfg, nil
}

func loadEnvFile(path string, override bool) error {
	data, err := afero.ReadFile(AppFs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	env, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for key, value := range env {
		if _, set := os.LookupEnv(key); set && !override {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	debug.Debug("Loaded env file", "path", path, "vars", len(env))
	return nil
}

// FindSchema returns the first schema file found in the usual locations
// under dir, or "" when there is none.
func FindSchema(dir string) string {
	for _, candidate := range []string{"schema.prisma", filepath.Join("prisma", "schema.prisma")} {
		path := filepath.Join(dir, candidate)
		if ok, _ := afero.Exists(AppFs, path); ok {
			return path
		}
	}
	return ""
}
