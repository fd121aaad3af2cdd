package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DEBATE_CONFIG is set
//  3. env (prefix DEBATE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("DEBATE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: DEBATE_MONGO_URI, DEBATE_FEED_WORKERS, ...
	// Map env keys like DEBATE_FEED_WORKERS -> feed_workers (flat keys).
	// Underscores are preserved to match the koanf tags on the struct.
	// Only feed_urls is split on commas; connection URIs may legitimately
	// contain commas (Mongo replica sets) and must stay whole.
	envProvider := env.ProviderWithValue("DEBATE_", ".", func(s, v string) (string, interface{}) {
		key := strings.TrimPrefix(strings.ToLower(s), "debate_")
		if key == "feed_urls" {
			return key, splitList(v)
		}
		return key, v
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Basic validation
	if cfg.MongoURI == "" {
		return nil, errors.New("mongo_uri must not be empty")
	}
	if cfg.TranscriberURL == "" {
		return nil, errors.New("transcriber_url must not be empty")
	}
	return &cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
