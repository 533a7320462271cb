package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the server's environment variables.
const EnvPrefix = "STUDYPLANNER_"

// legacyEnv maps the variable names used by earlier deployments to config keys.
var legacyEnv = map[string]string{
	"JWT_SECRET_KEY":   "secret_key",
	"GEMINI_API_KEY":   "ai_api_key",
	"SEARCH_API_KEY":   "search_api_key",
	"SEARCH_ENGINE_ID": "search_engine_id",
}

// envTransformFunc turns STUDYPLANNER_HTTP_ADDR into http_addr. Variables
// outside the prefix and the legacy set are dropped.
func envTransformFunc(key string) string {
	if mapped, ok := legacyEnv[key]; ok {
		return mapped
	}
	if !strings.HasPrefix(key, EnvPrefix) {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
}

// listKeys hold comma-separated values in the environment.
var listKeys = []string{"cors_allowed_origins"}

// parseEnv overlays values found in the process environment. Keys that are
// not set keep their current values.
func parseEnv(config *Config) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitLists(k); err != nil {
		return err
	}

	err := k.UnmarshalWithConf("", config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           config,
			WeaklyTypedInput: true,
			ZeroFields:       true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to decode environment variables: %w", err)
	}
	return nil
}

// splitLists replaces comma-separated list values with trimmed slices.
func splitLists(k *koanf.Koanf) error {
	for _, key := range listKeys {
		raw, ok := k.Get(key).(string)
		if !ok || raw == "" {
			continue
		}
		var items []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		if err := k.Set(key, items); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}
