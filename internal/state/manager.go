package state

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"LottoSentinel/internal/model"
)

// Manager guards the application state file. All mutations go through it and
// are persisted immediately; concurrent access from the scheduler and the
// interactive menu is safe.
type Manager struct {
	mu    sync.Mutex
	path  string
	state model.AppState
}

// NewManager loads state from path, starting from a zero state with the
// given strategy when the file does not exist yet.
func NewManager(path, defaultStrategy string) (*Manager, error) {
	if defaultStrategy == "" {
		defaultStrategy = "frequency"
	}
	m := &Manager{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("[INFO] state file %s not found, starting fresh", path)
		m.state = model.AppState{
			Strategy: defaultStrategy,
			Games:    make(map[string]model.GameState),
		}
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if err := json.Unmarshal(data, &m.state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	if m.state.Games == nil {
		m.state.Games = make(map[string]model.GameState)
	}
	if m.state.Strategy == "" {
		m.state.Strategy = defaultStrategy
	}
	return m, nil
}

// Strategy returns the currently selected generation strategy.
func (m *Manager) Strategy() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Strategy
}

// SetStrategy switches the active generation strategy and persists it.
func (m *Manager) SetStrategy(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Strategy = name
	return m.save()
}

// GameState returns the tracked state for one game.
func (m *Manager) GameState(game string) model.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Games[game]
}

// MarkChecked records a completed remote check for a game, and when updated
// is true also bumps the last-update time and known-draw count.
func (m *Manager) MarkChecked(game string, updated bool, knownDraws int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	gs := m.state.Games[game]
	now := time.Now()
	gs.LastCheckedAt = now
	if updated {
		gs.LastUpdatedAt = now
		gs.KnownDraws = knownDraws
	}
	m.state.Games[game] = gs
	return m.save()
}

// save writes the state file. Caller must hold the lock.
func (m *Manager) save() error {
	m.state.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(&m.state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
