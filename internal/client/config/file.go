package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/medkeeper/internal/flagx"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for decoding the config file.
// Pointer fields tell "absent" apart from zero values, so a file that sets
// only server_url leaves the other defaults alone.
type FileConfig struct {
	ServerURL         *string `json:"server_url" yaml:"server_url"`
	DatabasePath      *string `json:"database_path" yaml:"database_path"`
	LogLevel          *string `json:"log_level" yaml:"log_level"`
	ExpiryWarningDays *int    `json:"expiry_warning_days" yaml:"expiry_warning_days"`
}

// parseFile overlays cfg with values from the file named by -c/-config.
// Without the flag it does nothing. Read or decode failures panic, matching
// parseFlags; the caller decides whether to recover.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.ServerURL != nil {
		cfg.ServerURL = *fc.ServerURL
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.ExpiryWarningDays != nil {
		cfg.ExpiryWarningDays = *fc.ExpiryWarningDays
	}
}
