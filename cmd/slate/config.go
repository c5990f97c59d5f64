package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the slate configuration file (~/.config/slate/config.yaml).
type Config struct {
	// Planning defaults
	Caps     string `yaml:"caps"`
	CapsFile string `yaml:"caps_file"`
	SramSize *int64 `yaml:"sram_size"`

	// Server
	ServerAddress string `yaml:"server_address"`
	LogLevel      string `yaml:"log_level"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "slate", "config.yaml")
}

// applyPlanConfig applies config file defaults to plan command variables
// when the corresponding CLI flag was not explicitly set.
func applyPlanConfig(c *cli.Command, cfg Config, capsName, capsFile *string, sramSize *int64) {
	if cfg.Caps != "" && !c.IsSet("caps") {
		*capsName = cfg.Caps
	}
	if cfg.CapsFile != "" && !c.IsSet("caps-file") {
		*capsFile = cfg.CapsFile
	}
	if cfg.SramSize != nil && !c.IsSet("sram-size") {
		*sramSize = *cfg.SramSize
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr, logLevel *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		*logLevel = cfg.LogLevel
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or fails to parse.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
