package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/ballotkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Note: os.Args is filtered with flagx.FilterArgs so flags owned by other
// components (-c/-config) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-g", "-i", "-t", "-d", "-u", "-l"},
		"-o")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend REST API base URL")
	fs.StringVar(&cfg.HealthAddr, "g", cfg.HealthAddr, "backend gRPC health address")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.BoolVar(&cfg.Offline, "o", cfg.Offline, "offline mode (local storage only)")
	fs.StringVar(&cfg.ActorID, "u", cfg.ActorID, "actor recorded in the audit log")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
