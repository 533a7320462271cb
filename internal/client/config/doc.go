// Package config loads the CLI client configuration from defaults, an
// optional JSON file (-c/-config) and short command-line flags.
package config
