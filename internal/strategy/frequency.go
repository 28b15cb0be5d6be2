package strategy

import (
	"math/rand/v2"

	"LottoSentinel/internal/model"
)

// Frequency builds a set around historically common numbers: a common pair
// seed, a few hot numbers, one overdue number, a random fill, and a
// best-effort odd/even rebalance. Bonus is sampled by observed frequency.
type Frequency struct {
	rng *rand.Rand
}

func (s *Frequency) Name() string { return "frequency" }

func (s *Frequency) Generate(snap *model.StatsSnapshot, cfg model.GameConfig) model.TicketSet {
	if snap == nil {
		return randomTicket(s.rng, cfg)
	}

	chosen := s.seedPair(snap, cfg)

	// Up to 3 hot numbers.
	hotCand := excluding(numbersOf(snap.Hot), chosen)
	if addCount := min3(3, len(hotCand), cfg.MainCount-len(chosen)); addCount > 0 {
		chosen = append(chosen, samplePool(s.rng, hotCand, addCount)...)
	}

	// One overdue number if there is still room.
	if len(chosen) < cfg.MainCount {
		if overdueCand := excluding(numbersOf(snap.Overdue), chosen); len(overdueCand) > 0 {
			chosen = append(chosen, overdueCand[s.rng.IntN(len(overdueCand))])
		}
	}

	// Random fill for the remaining slots.
	if remaining := cfg.MainCount - len(chosen); remaining > 0 {
		chosen = append(chosen, samplePool(s.rng, unusedPool(cfg, chosen), remaining)...)
	}
	if len(chosen) > cfg.MainCount {
		chosen = chosen[:cfg.MainCount]
	}

	s.balanceOddEven(chosen, cfg)

	return finish(s.rng, chosen, weightedBonus(s.rng, snap.BonusFreq, cfg), cfg)
}

// seedPair starts from a random common pair, or two distinct random numbers
// when no pair data exists.
func (s *Frequency) seedPair(snap *model.StatsSnapshot, cfg model.GameConfig) []int {
	if len(snap.Pairs) > 0 {
		p := snap.Pairs[s.rng.IntN(len(snap.Pairs))].Pair
		if p.A != p.B {
			return []int{p.A, p.B}
		}
	}
	a := cfg.MainMin + s.rng.IntN(cfg.MainPoolSize())
	b := cfg.MainMin + s.rng.IntN(cfg.MainPoolSize())
	for b == a {
		b = cfg.MainMin + s.rng.IntN(cfg.MainPoolSize())
	}
	return []int{a, b}
}

// balanceOddEven nudges the set toward 3-4 odd numbers with at most two swap
// attempts. It is opportunistic: an attempt that picks an unsuitable slot or
// finds no candidate of the needed parity simply does nothing.
func (s *Frequency) balanceOddEven(chosen []int, cfg model.GameConfig) {
	odds := 0
	for _, n := range chosen {
		if n%2 == 1 {
			odds++
		}
	}
	avail := unusedPool(cfg, chosen)

	for attempt := 0; attempt < 2; attempt++ {
		switch {
		case odds < 3 && len(avail) > 0:
			if cand := withParity(avail, 1); len(cand) > 0 {
				newNum := cand[s.rng.IntN(len(cand))]
				idx := s.rng.IntN(len(chosen))
				if chosen[idx]%2 == 0 {
					avail = removeValue(avail, newNum)
					chosen[idx] = newNum
					odds++
				}
			}
		case odds > 4 && len(avail) > 0:
			if cand := withParity(avail, 0); len(cand) > 0 {
				newNum := cand[s.rng.IntN(len(cand))]
				idx := s.rng.IntN(len(chosen))
				if chosen[idx]%2 == 1 {
					avail = removeValue(avail, newNum)
					chosen[idx] = newNum
					odds--
				}
			}
		}
	}
}

func withParity(pool []int, parity int) []int {
	out := make([]int, 0, len(pool))
	for _, n := range pool {
		if n%2 == parity {
			out = append(out, n)
		}
	}
	return out
}

func numbersOf(counts []model.NumberCount) []int {
	out := make([]int, 0, len(counts))
	for _, nc := range counts {
		out = append(out, nc.Number)
	}
	return out
}

func excluding(nums, chosen []int) []int {
	used := toSet(chosen)
	out := make([]int, 0, len(nums))
	for _, n := range nums {
		if !used[n] {
			out = append(out, n)
		}
	}
	return out
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
