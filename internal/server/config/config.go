// Package config handles configuration for the study planner server,
// including defaults, JSON overlay, environment variables, and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the study planner server.
//
// Fields:
//   - HTTPAddr: bind address of the REST API.
//   - GRPCHealthAddr: bind address of the gRPC health endpoint, empty disables it.
//   - DatabaseDriver / DatabaseDSN: "sqlite" (modernc) or "pgx" (PostgreSQL).
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - AI*: generative language API settings; an empty key disables AI features.
//   - Search*: custom search API settings; an empty key disables web fallback.
//   - DatasetsDir: optional directory overriding the embedded JSON datasets.
//   - S3*: object storage for uploaded study documents; empty bucket disables it.
type Config struct {
	HTTPAddr                     string        `koanf:"http_addr"`
	GRPCHealthAddr               string        `koanf:"grpc_health_addr"`
	DatabaseDriver               string        `koanf:"database_driver"`
	DatabaseDSN                  string        `koanf:"database_dsn"`
	SecretKey                    string        `koanf:"secret_key"`
	AccessTokenValidityDuration  time.Duration `koanf:"access_token_validity_duration"`
	RefreshTokenValidityDuration time.Duration `koanf:"refresh_token_validity_duration"`

	AIAPIKey            string        `koanf:"ai_api_key"`
	AIModel             string        `koanf:"ai_model"`
	AIBaseURL           string        `koanf:"ai_base_url"`
	AITimeout           time.Duration `koanf:"ai_timeout"`
	AIRequestsPerSecond float64       `koanf:"ai_requests_per_second"`
	AITopicCacheTTL     time.Duration `koanf:"ai_topic_cache_ttl"`

	SearchAPIKey   string `koanf:"search_api_key"`
	SearchEngineID string `koanf:"search_engine_id"`
	SearchBaseURL  string `koanf:"search_base_url"`

	DatasetsDir        string   `koanf:"datasets_dir"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
	RateLimitPerMinute int      `koanf:"rate_limit_per_minute"`
	AuthRateLimit      int      `koanf:"auth_rate_limit"`
	MaxUploadBytes     int64    `koanf:"max_upload_bytes"`
	LogFormat          string   `koanf:"log_format"`

	S3RootUser     string `koanf:"s3_root_user"`
	S3RootPassword string `koanf:"s3_root_password"`
	S3Bucket       string `koanf:"s3_bucket"`
	S3Region       string `koanf:"s3_region"`
	S3BaseEndpoint string `koanf:"s3_base_endpoint"`
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8000"
	c.GRPCHealthAddr = ":50051"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:study_planner.db"
	c.SecretKey = "your-secret-key-here"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.RefreshTokenValidityDuration = 7 * 24 * time.Hour

	c.AIModel = "gemini-1.5-flash-latest"
	c.AIBaseURL = "https://generativelanguage.googleapis.com"
	c.AITimeout = 30 * time.Second
	c.AIRequestsPerSecond = 1
	c.AITopicCacheTTL = time.Hour

	c.SearchBaseURL = "https://www.googleapis.com"

	c.CORSAllowedOrigins = []string{"http://localhost:8001", "http://127.0.0.1:8001"}
	c.RateLimitPerMinute = 120
	c.AuthRateLimit = 10
	c.MaxUploadBytes = 5 << 20
	c.LogFormat = "json"

	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		panic(err)
	}
	parseFlags(cfg)
	return cfg
}
