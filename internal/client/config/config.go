package config

import "time"

// Config holds the CLI settings.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	MetadataDSN    string
	MaxUploadBytes int64
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 60 * time.Second
	c.MetadataDSN = "planner_cli.db"
	c.MaxUploadBytes = 5 << 20
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
