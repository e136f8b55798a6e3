package config

import (
	"time"

	"salarydash/internal/engine"
)

// Config carries the server settings. Defaults mirror the public dataset
// and its one-hour refresh window; main overrides them from flags.
type Config struct {
	Addr         string
	DatasetURL   string
	CacheTTL     time.Duration
	WarmInterval time.Duration
	FetchTimeout time.Duration
	CountryTitle string
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Addr:         ":8080",
		DatasetURL:   engine.DefaultDatasetURL,
		CacheTTL:     engine.DefaultCacheTTL,
		WarmInterval: engine.DefaultCacheTTL,
		FetchTimeout: 30 * time.Second,
		CountryTitle: engine.DefaultCountryTitle,
	}
}
