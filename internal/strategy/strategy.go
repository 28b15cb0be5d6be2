package strategy

import (
	"math/rand/v2"
	"sort"

	"LottoSentinel/internal/model"
)

// Strategy generates one ticket suggestion from statistics and game config.
// Implementations must always return exactly MainCount distinct main numbers
// within the configured range and a bonus within the bonus range, falling
// back to pure random generation rather than emitting an invalid set.
type Strategy interface {
	Name() string
	Generate(snap *model.StatsSnapshot, cfg model.GameConfig) model.TicketSet
}

// Manager holds the available strategies behind name lookup.
type Manager struct {
	strategies map[string]Strategy
	names      []string
}

// NewManager creates a Manager. Pass a seeded rng for deterministic tests;
// nil uses a time-seeded source.
func NewManager(rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	m := &Manager{strategies: make(map[string]Strategy)}
	for _, s := range []Strategy{
		&Frequency{rng: rng},
		&Random{rng: rng},
		&Balanced{rng: rng},
	} {
		m.strategies[s.Name()] = s
		m.names = append(m.names, s.Name())
	}
	return m
}

// Get returns the named strategy, defaulting to random for unknown names.
func (m *Manager) Get(name string) Strategy {
	if s, ok := m.strategies[name]; ok {
		return s
	}
	return m.strategies["random"]
}

// Names lists the available strategy names.
func (m *Manager) Names() []string {
	return append([]string(nil), m.names...)
}

// randomTicket draws MainCount distinct numbers uniformly and a uniform
// bonus. It is the shared fallback for every data-driven path.
func randomTicket(rng *rand.Rand, cfg model.GameConfig) model.TicketSet {
	pool := fullPool(cfg)
	nums := samplePool(rng, pool, cfg.MainCount)
	sort.Ints(nums)
	return model.TicketSet{
		Numbers: nums,
		Bonus:   cfg.BonusMin + rng.IntN(cfg.BonusMax-cfg.BonusMin+1),
	}
}

// finish sorts and validates a candidate set, replacing it wholesale with a
// random ticket if any constraint is violated.
func finish(rng *rand.Rand, nums []int, bonus int, cfg model.GameConfig) model.TicketSet {
	sort.Ints(nums)
	if !valid(nums, bonus, cfg) {
		return randomTicket(rng, cfg)
	}
	return model.TicketSet{Numbers: nums, Bonus: bonus}
}

func valid(sortedNums []int, bonus int, cfg model.GameConfig) bool {
	if len(sortedNums) != cfg.MainCount {
		return false
	}
	for i, n := range sortedNums {
		if n < cfg.MainMin || n > cfg.MainMax {
			return false
		}
		if i > 0 && n == sortedNums[i-1] {
			return false
		}
	}
	return bonus >= cfg.BonusMin && bonus <= cfg.BonusMax
}

func fullPool(cfg model.GameConfig) []int {
	pool := make([]int, 0, cfg.MainPoolSize())
	for n := cfg.MainMin; n <= cfg.MainMax; n++ {
		pool = append(pool, n)
	}
	return pool
}

// unusedPool returns the main-range numbers not present in chosen.
func unusedPool(cfg model.GameConfig, chosen []int) []int {
	used := toSet(chosen)
	pool := make([]int, 0, cfg.MainPoolSize()-len(used))
	for n := cfg.MainMin; n <= cfg.MainMax; n++ {
		if !used[n] {
			pool = append(pool, n)
		}
	}
	return pool
}

// samplePool picks k distinct elements via partial Fisher-Yates. The input
// slice is copied, not mutated.
func samplePool(rng *rand.Rand, pool []int, k int) []int {
	if k > len(pool) {
		k = len(pool)
	}
	p := append([]int(nil), pool...)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(p)-i)
		p[i], p[j] = p[j], p[i]
	}
	return p[:k]
}

// weightedBonus samples a bonus with probability proportional to observed
// frequency; with no data it falls back to a uniform draw.
func weightedBonus(rng *rand.Rand, freq map[int]int, cfg model.GameConfig) int {
	total := 0
	keys := make([]int, 0, len(freq))
	for n, c := range freq {
		if c > 0 {
			keys = append(keys, n)
			total += c
		}
	}
	if total == 0 {
		return cfg.BonusMin + rng.IntN(cfg.BonusMax-cfg.BonusMin+1)
	}
	sort.Ints(keys)
	r := rng.IntN(total)
	for _, n := range keys {
		r -= freq[n]
		if r < 0 {
			return n
		}
	}
	return keys[len(keys)-1]
}

func toSet(nums []int) map[int]bool {
	set := make(map[int]bool, len(nums))
	for _, n := range nums {
		set[n] = true
	}
	return set
}

func removeValue(pool []int, v int) []int {
	for i, n := range pool {
		if n == v {
			return append(pool[:i], pool[i+1:]...)
		}
	}
	return pool
}
