package model

import "time"

// GameState is per-lottery bookkeeping for the update scheduler.
type GameState struct {
	LastCheckedAt time.Time `json:"last_checked_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	KnownDraws    int       `json:"known_draws"`
}

// AppState tracks persistent application state across runs.
type AppState struct {
	Strategy  string               `json:"strategy"`
	Games     map[string]GameState `json:"games"`
	UpdatedAt time.Time            `json:"updated_at"`
}
