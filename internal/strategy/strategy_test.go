package strategy

import (
	"math/rand/v2"
	"testing"
	"time"

	"LottoSentinel/internal/model"
	"LottoSentinel/internal/stats"
)

var gameConfigs = map[string]model.GameConfig{
	"lotto max":   {MainCount: 7, MainMin: 1, MainMax: 50, BonusCount: 1, BonusMin: 1, BonusMax: 50},
	"lotto 6/49":  {MainCount: 6, MainMin: 1, MainMax: 49, BonusCount: 1, BonusMin: 1, BonusMax: 49},
	"daily grand": {MainCount: 5, MainMin: 1, MainMax: 49, BonusCount: 1, BonusMin: 1, BonusMax: 7},
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 13))
}

func snapshotFor(cfg model.GameConfig) *model.StatsSnapshot {
	// A small but real history so every ranking is populated.
	rng := testRNG()
	draws := make([]model.Draw, 0, 40)
	for i := 0; i < 40; i++ {
		nums := samplePool(rng, fullPool(cfg), cfg.MainCount)
		draws = append(draws, model.Draw{
			Date:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i),
			Numbers: nums,
			Bonus:   cfg.BonusMin + rng.IntN(cfg.BonusMax-cfg.BonusMin+1),
		})
	}
	return stats.Compute(draws, cfg)
}

func assertValidTicket(t *testing.T, ticket model.TicketSet, cfg model.GameConfig, label string) {
	t.Helper()
	if len(ticket.Numbers) != cfg.MainCount {
		t.Fatalf("%s: got %d main numbers, want %d", label, len(ticket.Numbers), cfg.MainCount)
	}
	for i, n := range ticket.Numbers {
		if n < cfg.MainMin || n > cfg.MainMax {
			t.Fatalf("%s: main number %d out of range", label, n)
		}
		if i > 0 && n <= ticket.Numbers[i-1] {
			t.Fatalf("%s: numbers not sorted and distinct: %v", label, ticket.Numbers)
		}
	}
	if ticket.Bonus < cfg.BonusMin || ticket.Bonus > cfg.BonusMax {
		t.Fatalf("%s: bonus %d out of range", label, ticket.Bonus)
	}
}

func TestStrategies_AlwaysValid(t *testing.T) {
	m := NewManager(testRNG())
	for gameName, cfg := range gameConfigs {
		snap := snapshotFor(cfg)
		for _, strategyName := range m.Names() {
			s := m.Get(strategyName)
			for i := 0; i < 200; i++ {
				ticket := s.Generate(snap, cfg)
				assertValidTicket(t, ticket, cfg, gameName+"/"+strategyName)
			}
		}
	}
}

func TestStrategies_NilSnapshot(t *testing.T) {
	m := NewManager(testRNG())
	cfg := gameConfigs["lotto max"]
	for _, name := range m.Names() {
		ticket := m.Get(name).Generate(nil, cfg)
		assertValidTicket(t, ticket, cfg, name+"/nil snapshot")
	}
}

func TestStrategies_EmptySnapshot(t *testing.T) {
	// No pairs, no hot numbers, no bonus data: strategies must degrade to
	// random seeds rather than fail.
	m := NewManager(testRNG())
	cfg := gameConfigs["daily grand"]
	snap := &model.StatsSnapshot{MainFreq: map[int]int{}, BonusFreq: map[int]int{}}
	for _, name := range m.Names() {
		for i := 0; i < 50; i++ {
			ticket := m.Get(name).Generate(snap, cfg)
			assertValidTicket(t, ticket, cfg, name+"/empty snapshot")
		}
	}
}

func TestManager_GetUnknownFallsBackToRandom(t *testing.T) {
	m := NewManager(testRNG())
	s := m.Get("astrology")
	if s == nil || s.Name() != "random" {
		t.Fatalf("expected random fallback, got %v", s)
	}
}

func TestManager_Names(t *testing.T) {
	m := NewManager(testRNG())
	names := m.Names()
	if len(names) != 3 {
		t.Fatalf("expected 3 strategies, got %v", names)
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{"frequency", "random", "balanced"} {
		if !seen[want] {
			t.Errorf("missing strategy %q", want)
		}
	}
}

func TestGenerateSets_Unique(t *testing.T) {
	m := NewManager(testRNG())
	cfg := gameConfigs["lotto 6/49"]
	snap := snapshotFor(cfg)

	sets := GenerateSets(m.Get("frequency"), snap, cfg, 10)
	if len(sets) != 10 {
		t.Fatalf("expected 10 sets, got %d", len(sets))
	}
	seen := map[string]bool{}
	for _, ticket := range sets {
		assertValidTicket(t, ticket, cfg, "multi")
		key := setKey(ticket.Numbers)
		if seen[key] {
			t.Errorf("duplicate set %s", key)
		}
		seen[key] = true
	}
}

func TestGenerateSets_CapTerminates(t *testing.T) {
	// Only one possible combination exists; asking for five must return one
	// set instead of looping forever.
	cfg := model.GameConfig{MainCount: 3, MainMin: 1, MainMax: 3, BonusCount: 1, BonusMin: 1, BonusMax: 2}
	s := &Random{rng: testRNG()}

	sets := GenerateSets(s, nil, cfg, 5)
	if len(sets) != 1 {
		t.Fatalf("expected exactly 1 set, got %d", len(sets))
	}
	assertValidTicket(t, sets[0], cfg, "degenerate")
}

func TestWeightedBonus_RespectsRangeAndWeights(t *testing.T) {
	rng := testRNG()
	cfg := gameConfigs["daily grand"]

	// All weight on one number.
	freq := map[int]int{5: 100}
	for i := 0; i < 20; i++ {
		if got := weightedBonus(rng, freq, cfg); got != 5 {
			t.Fatalf("expected bonus 5 with all weight on it, got %d", got)
		}
	}

	// No data falls back to a uniform in-range draw.
	for i := 0; i < 50; i++ {
		got := weightedBonus(rng, nil, cfg)
		if got < cfg.BonusMin || got > cfg.BonusMax {
			t.Fatalf("uniform fallback out of range: %d", got)
		}
	}
}
