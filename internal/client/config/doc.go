// Package config loads runtime configuration for the MedKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the record store API
//	-d string   path of the local SQLite database
//	-l string   log level (debug, info, warn, error)
//	-w int      expiry warning window in days
//
// # File schema
//
// Only keys present in the file override earlier values:
//
//	{
//	  "server_url": "http://localhost:8080/api",
//	  "database_path": "medkeeper.db",
//	  "log_level": "warn",
//	  "expiry_warning_days": 7
//	}
//
// The YAML form uses the same keys.
package config
