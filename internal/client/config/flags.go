package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/studyplanner/internal/flagx"
)

// parseFlags reads -a (server URL), -t (request timeout, seconds) and
// -d (local metadata DSN).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.MetadataDSN, "d", cfg.MetadataDSN, "local metadata database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
