package config

// Config holds application settings (in-memory representation).
// Persistence is handled by internal/db package.
type Config struct {
	GameWSURL   string `json:"game_ws_url"`
	WatchAction string `json:"watch_action"` // action hrid whose profit is tracked

	// Market data cache/fetch tuning. Durations are plain integers so they
	// round-trip through the key/value config store without ambiguity.
	CacheTTLSeconds  int `json:"cache_ttl_seconds"`
	SweepIntervalSec int `json:"sweep_interval_seconds"`
	FetchBatchSize   int `json:"fetch_batch_size"`
	BatchPauseMS     int `json:"batch_pause_ms"`
	FetchTimeoutMS   int `json:"fetch_timeout_ms"`

	// Update cycle tuning.
	DebounceMS         int `json:"debounce_ms"`
	RefreshIntervalSec int `json:"refresh_interval_seconds"`

	// Provider readiness probing.
	ReadyAttempts    int `json:"ready_attempts"`
	ReadyIntervalSec int `json:"ready_interval_seconds"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		GameWSURL:          "wss://api.milkywayidle.com/ws",
		WatchAction:        "",
		CacheTTLSeconds:    300,
		SweepIntervalSec:   60,
		FetchBatchSize:     6,
		BatchPauseMS:       100,
		FetchTimeoutMS:     5000,
		DebounceMS:         200,
		RefreshIntervalSec: 30,
		ReadyAttempts:      20,
		ReadyIntervalSec:   1,
	}
}
