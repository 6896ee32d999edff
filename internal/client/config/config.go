package config

// Config holds runtime settings for the MedKeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the record store API, including the /api prefix.
//   - DatabasePath: SQLite file that keeps the saved login between runs.
//   - LogLevel: debug, info, warn or error.
//   - ExpiryWarningDays: records expiring within this many days are flagged.
type Config struct {
	ServerURL         string
	DatabasePath      string
	LogLevel          string
	ExpiryWarningDays int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080/api"
	c.DatabasePath = "medkeeper.db"
	c.LogLevel = "warn"
	c.ExpiryWarningDays = 7
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
