package db

import (
	"strconv"

	"mwi-alchemist/internal/config"
)

// LoadConfig reads config from SQLite. If empty, returns defaults.
func (d *DB) LoadConfig() *config.Config {
	cfg := config.Default()

	rows, err := d.sql.Query("SELECT key, value FROM config")
	if err != nil {
		return cfg
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		m[k] = v
	}

	if len(m) == 0 {
		return cfg
	}

	if v, ok := m["game_ws_url"]; ok {
		cfg.GameWSURL = v
	}
	if v, ok := m["watch_action"]; ok {
		cfg.WatchAction = v
	}
	if v, ok := m["cache_ttl_seconds"]; ok {
		cfg.CacheTTLSeconds, _ = strconv.Atoi(v)
	}
	if v, ok := m["sweep_interval_seconds"]; ok {
		cfg.SweepIntervalSec, _ = strconv.Atoi(v)
	}
	if v, ok := m["fetch_batch_size"]; ok {
		cfg.FetchBatchSize, _ = strconv.Atoi(v)
	}
	if v, ok := m["batch_pause_ms"]; ok {
		cfg.BatchPauseMS, _ = strconv.Atoi(v)
	}
	if v, ok := m["fetch_timeout_ms"]; ok {
		cfg.FetchTimeoutMS, _ = strconv.Atoi(v)
	}
	if v, ok := m["debounce_ms"]; ok {
		cfg.DebounceMS, _ = strconv.Atoi(v)
	}
	if v, ok := m["refresh_interval_seconds"]; ok {
		cfg.RefreshIntervalSec, _ = strconv.Atoi(v)
	}
	if v, ok := m["ready_attempts"]; ok {
		cfg.ReadyAttempts, _ = strconv.Atoi(v)
	}
	if v, ok := m["ready_interval_seconds"]; ok {
		cfg.ReadyIntervalSec, _ = strconv.Atoi(v)
	}

	return cfg
}

// SaveConfig writes the full config to SQLite as key/value pairs.
func (d *DB) SaveConfig(cfg *config.Config) error {
	pairs := map[string]string{
		"game_ws_url":              cfg.GameWSURL,
		"watch_action":             cfg.WatchAction,
		"cache_ttl_seconds":        strconv.Itoa(cfg.CacheTTLSeconds),
		"sweep_interval_seconds":   strconv.Itoa(cfg.SweepIntervalSec),
		"fetch_batch_size":         strconv.Itoa(cfg.FetchBatchSize),
		"batch_pause_ms":           strconv.Itoa(cfg.BatchPauseMS),
		"fetch_timeout_ms":         strconv.Itoa(cfg.FetchTimeoutMS),
		"debounce_ms":              strconv.Itoa(cfg.DebounceMS),
		"refresh_interval_seconds": strconv.Itoa(cfg.RefreshIntervalSec),
		"ready_attempts":           strconv.Itoa(cfg.ReadyAttempts),
		"ready_interval_seconds":   strconv.Itoa(cfg.ReadyIntervalSec),
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	for k, v := range pairs {
		if _, err := tx.Exec("INSERT OR REPLACE INTO config (key, value) VALUES (?, ?)", k, v); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
