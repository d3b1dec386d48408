package llm

import "context"

// KeyStore looks up a locally persisted API credential. The store's
// session gateway satisfies it.
type KeyStore interface {
	APIKey(ctx context.Context) (string, error)
}

// ResolveConfig builds provider configuration with the credential
// resolved in priority order: explicit EXPORTA_* environment
// configuration, discovered standard env keys, then a key persisted in
// the local store. When no source yields a key the returned config is
// still usable — the caller may obtain a key interactively, apply it
// with SetAPIKey and persist it — and the error is ErrNotConfigured.
func ResolveConfig(ctx context.Context, keys KeyStore) (Config, error) {
	cfg := ConfigFromEnv()
	if cfg.APIKey() != "" || cfg.Provider == "mock" {
		return cfg, nil
	}

	if discovered, ok := DiscoverConfig(); ok {
		return discovered, nil
	}

	if keys != nil {
		key, err := keys.APIKey(ctx)
		if err != nil {
			return cfg, err
		}
		if key != "" {
			cfg.SetAPIKey(key)
			return cfg, nil
		}
	}

	return cfg, cfg.Validate()
}
