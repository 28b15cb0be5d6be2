package collector

import (
	"context"
	"encoding/json"
	"sync"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	mu        sync.Mutex
	YearDraws map[int][]json.RawMessage
	FailYears map[int]error // per-year injected failures
	calls     int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchYears(_ context.Context, _ string) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	years := make([]int, 0, len(m.YearDraws))
	for y := range m.YearDraws {
		years = append(years, y)
	}
	return years, nil
}

func (m *MockFetcher) FetchDrawsForYear(_ context.Context, _ string, year int) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err, ok := m.FailYears[year]; ok {
		return nil, err
	}
	return m.YearDraws[year], nil
}

// Calls reports how many fetches have been made.
func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
