package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "RECOBOT_"

	// ConfigPathEnvVar names a config file when no path is given explicitly.
	ConfigPathEnvVar = EnvPrefix + "CONFIG"
)

// Environment variables consumed elsewhere, never config keys.
var reservedEnvKeys = map[string]bool{
	"config": true,
	"db":     true,
}

// Load builds a Config from three layers, later layers winning:
//   - the defaults of DefaultConfig
//   - the YAML file at path, or at $RECOBOT_CONFIG when path is empty
//   - RECOBOT_* environment variables, with "__" separating nested keys
//     (RECOBOT_WEIGHTS__FIELDS__TITLE=1.5 sets weights.fields.title)
//
// Source overrides are rekeyed to canonical names and the result is
// validated before it is returned.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Weights.NormalizeOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envTransformFunc maps RECOBOT_QUALITY__POPULARITY_SCALE to
// quality.popularity_scale. Returning "" drops the variable.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if reservedEnvKeys[key] {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}
