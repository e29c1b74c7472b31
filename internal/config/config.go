package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	dirName         = ".dailytasks"
	fileName        = "config.yaml"
	projectFileName = ".dailytasks.yaml"
	envPrefix       = "DAILYTASKS"
)

// Config holds every tunable of the program.
type Config struct {
	DBPath   string `mapstructure:"db_path"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
	Theme    string `mapstructure:"theme"`
}

func DefaultConfig() Config {
	return Config{
		DBPath:   "todo.db",
		LogLevel: "warn",
		Theme:    "classic",
	}
}

// GlobalPath is ~/.dailytasks/config.yaml.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// ProjectPath is ./.dailytasks.yaml.
func ProjectPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, projectFileName), nil
}

// Load merges defaults, the global file, the project file and DAILYTASKS_*
// environment variables, later sources winning.
func Load() (Config, error) {
	var paths []string
	if p, err := GlobalPath(); err == nil {
		paths = append(paths, p)
	}
	if p, err := ProjectPath(); err == nil {
		paths = append(paths, p)
	}
	return LoadFiles(paths...)
}

// LoadFiles is Load with explicit config files. Missing files are skipped.
func LoadFiles(paths ...string) (Config, error) {
	def := DefaultConfig()
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("theme", def.Theme)

	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		v.SetConfigFile(p)
		if err := v.MergeInConfig(); err != nil {
			return def, fmt.Errorf("read config %s: %w", p, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Short alias for the one setting people change most.
	if err := v.BindEnv("db_path", envPrefix+"_DB_PATH", envPrefix+"_DB"); err != nil {
		return def, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
