package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/medkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the record store API
//	-d string   local SQLite database path
//	-l string   log level
//	-w int      expiry warning window (days)
//
// os.Args is filtered with flagx.FilterArgs first so that -c/-config, which
// belongs to parseFile, does not make parsing fail.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the record store API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local SQLite database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.IntVar(&cfg.ExpiryWarningDays, "w", cfg.ExpiryWarningDays, "expiry warning window (in days)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
