package config

import (
	"os"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/studyplanner/internal/flagx"
	"github.com/dmitrijs2005/studyplanner/internal/timex"
)

// JsonConfig is the on-disk shape of the CLI configuration file.
// Absent fields keep their current values.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	MetadataDSN    *string         `json:"metadata_dsn"`
	MaxUploadBytes *int64          `json:"max_upload_bytes"`
}

func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MetadataDSN != nil {
		cfg.MetadataDSN = *jc.MetadataDSN
	}
	if jc.MaxUploadBytes != nil {
		cfg.MaxUploadBytes = *jc.MaxUploadBytes
	}
}
