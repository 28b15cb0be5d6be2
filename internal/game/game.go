package game

import (
	"fmt"
	"time"

	"LottoSentinel/internal/model"
)

// Game identifies one of the supported lotteries. The set is closed: adding a
// game means adding a case to every switch in this file.
type Game int

const (
	LottoMax Game = iota
	Lotto649
	DailyGrand
)

// All returns every supported game in menu order.
func All() []Game {
	return []Game{LottoMax, Lotto649, DailyGrand}
}

// Name returns the display name.
func (g Game) Name() string {
	switch g {
	case LottoMax:
		return "Lotto Max"
	case Lotto649:
		return "Lotto 6/49"
	case DailyGrand:
		return "Daily Grand"
	}
	return fmt.Sprintf("Game(%d)", int(g))
}

// Slug returns the remote API path segment.
func (g Game) Slug() string {
	switch g {
	case LottoMax:
		return "lottomax"
	case Lotto649:
		return "6-49"
	case DailyGrand:
		return "daily-grand"
	}
	return ""
}

// Dir returns the per-game data directory name.
func (g Game) Dir() string {
	switch g {
	case LottoMax:
		return "lotto_max"
	case Lotto649:
		return "lotto_649"
	case DailyGrand:
		return "daily_grand"
	}
	return ""
}

// Config returns the game's immutable parameters.
func (g Game) Config() model.GameConfig {
	switch g {
	case LottoMax:
		return model.GameConfig{MainCount: 7, MainMin: 1, MainMax: 50, BonusCount: 1, BonusMin: 1, BonusMax: 50}
	case Lotto649:
		return model.GameConfig{MainCount: 6, MainMin: 1, MainMax: 49, BonusCount: 1, BonusMin: 1, BonusMax: 49}
	case DailyGrand:
		return model.GameConfig{MainCount: 5, MainMin: 1, MainMax: 49, BonusCount: 1, BonusMin: 1, BonusMax: 7}
	}
	return model.GameConfig{}
}

// YearRange returns the inclusive range of years the remote source covers:
// the game's first draw year through the current year.
func (g Game) YearRange(now time.Time) (first, last int) {
	switch g {
	case LottoMax:
		first = 2009
	case Lotto649:
		first = 1982
	case DailyGrand:
		first = 2016
	}
	return first, now.Year()
}
