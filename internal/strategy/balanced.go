package strategy

import (
	"math/rand/v2"

	"LottoSentinel/internal/model"
)

// Balanced mixes approaches: sometimes a common-pair seed, a modest hot
// allocation, and a mostly random fill. If the unused pool ever runs short it
// abandons the partial set and falls back to pure random.
type Balanced struct {
	rng *rand.Rand
}

func (s *Balanced) Name() string { return "balanced" }

func (s *Balanced) Generate(snap *model.StatsSnapshot, cfg model.GameConfig) model.TicketSet {
	if snap == nil {
		return randomTicket(s.rng, cfg)
	}

	var chosen []int

	// 30% chance to seed with a common pair.
	if len(snap.Pairs) > 0 && s.rng.Float64() < 0.3 {
		p := snap.Pairs[s.rng.IntN(len(snap.Pairs))].Pair
		if p.A != p.B {
			chosen = append(chosen, p.A, p.B)
		}
	}

	// Roughly 30% of the remaining slots from hot numbers.
	remaining := cfg.MainCount - len(chosen)
	hotSlots := int(float64(remaining) * 0.3)
	if hotSlots < 1 {
		hotSlots = 1
	}
	if hotCand := excluding(numbersOf(snap.Hot), chosen); len(hotCand) > 0 {
		if hotSlots > len(hotCand) {
			hotSlots = len(hotCand)
		}
		if hotSlots > remaining {
			hotSlots = remaining
		}
		chosen = append(chosen, samplePool(s.rng, hotCand, hotSlots)...)
	}

	// Random fill; a short pool means the stats are unusable for this game.
	remaining = cfg.MainCount - len(chosen)
	if remaining > 0 {
		pool := unusedPool(cfg, chosen)
		if len(pool) < remaining {
			return randomTicket(s.rng, cfg)
		}
		chosen = append(chosen, samplePool(s.rng, pool, remaining)...)
	}

	// Bonus: half the time weighted by frequency, half uniform.
	bonus := cfg.BonusMin + s.rng.IntN(cfg.BonusMax-cfg.BonusMin+1)
	if len(snap.BonusFreq) > 0 && s.rng.Float64() < 0.5 {
		bonus = weightedBonus(s.rng, snap.BonusFreq, cfg)
	}

	return finish(s.rng, chosen, bonus, cfg)
}
