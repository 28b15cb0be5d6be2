package collector

import (
	"context"
	"encoding/json"
)

// Fetcher defines the interface for fetching lottery draw data from a remote
// source. Draw records are returned undecoded because each lottery publishes
// a different payload shape; the game layer owns per-game decoding.
type Fetcher interface {
	FetchYears(ctx context.Context, slug string) ([]int, error)
	FetchDrawsForYear(ctx context.Context, slug string, year int) ([]json.RawMessage, error)
	Name() string
}
