package strategy

import (
	"math/rand/v2"

	"LottoSentinel/internal/model"
)

// Random draws uniformly without replacement; it ignores statistics entirely.
type Random struct {
	rng *rand.Rand
}

func (s *Random) Name() string { return "random" }

func (s *Random) Generate(_ *model.StatsSnapshot, cfg model.GameConfig) model.TicketSet {
	return randomTicket(s.rng, cfg)
}
