package config

import (
	"os"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/studyplanner/internal/flagx"
	"github.com/dmitrijs2005/studyplanner/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Interval
// fields use timex.Duration so both "15m" and integer nanoseconds parse.
// Fields left out of the file keep their current values.
type JsonConfig struct {
	HTTPAddr                     *string         `json:"http_addr"`
	GRPCHealthAddr               *string         `json:"grpc_health_addr"`
	DatabaseDriver               *string         `json:"database_driver"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	SecretKey                    *string         `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	AIAPIKey                     *string         `json:"ai_api_key"`
	AIModel                      *string         `json:"ai_model"`
	AIBaseURL                    *string         `json:"ai_base_url"`
	AITimeout                    *timex.Duration `json:"ai_timeout"`
	AIRequestsPerSecond          *float64        `json:"ai_requests_per_second"`
	AITopicCacheTTL              *timex.Duration `json:"ai_topic_cache_ttl"`
	SearchAPIKey                 *string         `json:"search_api_key"`
	SearchEngineID               *string         `json:"search_engine_id"`
	SearchBaseURL                *string         `json:"search_base_url"`
	DatasetsDir                  *string         `json:"datasets_dir"`
	CORSAllowedOrigins           []string        `json:"cors_allowed_origins"`
	RateLimitPerMinute           *int            `json:"rate_limit_per_minute"`
	AuthRateLimit                *int            `json:"auth_rate_limit"`
	MaxUploadBytes               *int64          `json:"max_upload_bytes"`
	LogFormat                    *string         `json:"log_format"`
	S3RootUser                   *string         `json:"s3_root_user"`
	S3RootPassword               *string         `json:"s3_root_password"`
	S3Bucket                     *string         `json:"s3_bucket"`
	S3Region                     *string         `json:"s3_region"`
	S3BaseEndpoint               *string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flag. Without the flag nothing is loaded. An unreadable
// or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	setString(&config.AIAPIKey, c.AIAPIKey)
	setString(&config.AIModel, c.AIModel)
	setString(&config.AIBaseURL, c.AIBaseURL)
	if c.AITimeout != nil {
		config.AITimeout = c.AITimeout.Duration
	}
	if c.AIRequestsPerSecond != nil {
		config.AIRequestsPerSecond = *c.AIRequestsPerSecond
	}
	if c.AITopicCacheTTL != nil {
		config.AITopicCacheTTL = c.AITopicCacheTTL.Duration
	}
	setString(&config.SearchAPIKey, c.SearchAPIKey)
	setString(&config.SearchEngineID, c.SearchEngineID)
	setString(&config.SearchBaseURL, c.SearchBaseURL)
	setString(&config.DatasetsDir, c.DatasetsDir)
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.RateLimitPerMinute != nil {
		config.RateLimitPerMinute = *c.RateLimitPerMinute
	}
	if c.AuthRateLimit != nil {
		config.AuthRateLimit = *c.AuthRateLimit
	}
	if c.MaxUploadBytes != nil {
		config.MaxUploadBytes = *c.MaxUploadBytes
	}
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
