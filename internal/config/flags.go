package config

import (
	"flag"
	"fmt"
	"io"
)

// parseFlags overlays the global flags found at the front of args.
//
//	-api string        backend root URL
//	-data-dir string   local state directory
//	-log-file string   log destination ("-" for stderr)
//	-log-level string  debug|info|warn|error
//	-timeout duration  per-request timeout
//
// Parsing stops at the first non-flag argument, which is where the
// subcommand begins.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("langgpt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "backend root URL")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "local state directory")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log destination, - for stderr")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return fs.Args(), nil
}
