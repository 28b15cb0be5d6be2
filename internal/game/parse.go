package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"LottoSentinel/internal/model"
)

const apiDateLayout = "2006-01-02"

// lottoMaxDraw and dailyGrandDraw are flat payloads; Lotto 6/49 nests the
// classic draw beside guaranteed/gold-ball draws, which are ignored.
type lottoMaxDraw struct {
	Date    string `json:"date"`
	Numbers []int  `json:"numbers"`
	Bonus   int    `json:"bonus"`
	Prize   int64  `json:"prize"`
}

type lotto649Draw struct {
	Date    string `json:"date"`
	Classic struct {
		Numbers []int `json:"numbers"`
		Bonus   int   `json:"bonus"`
		Prize   int64 `json:"prize"`
	} `json:"classic"`
}

type dailyGrandDraw struct {
	Date        string `json:"date"`
	Numbers     []int  `json:"numbers"`
	GrandNumber int    `json:"grandNumber"`
}

// ParseAPIDraw decodes and validates one raw draw record from the remote
// source. A record that fails validation is reported as model.ErrBadDraw and
// must be dropped by the caller, not propagated.
func (g Game) ParseAPIDraw(raw json.RawMessage) (model.Draw, error) {
	switch g {
	case LottoMax:
		var d lottoMaxDraw
		if err := json.Unmarshal(raw, &d); err != nil {
			return model.Draw{}, fmt.Errorf("%w: %v", model.ErrBadDraw, err)
		}
		return g.validate(d.Date, d.Numbers, d.Bonus, formatPrize(d.Prize))
	case Lotto649:
		var d lotto649Draw
		if err := json.Unmarshal(raw, &d); err != nil {
			return model.Draw{}, fmt.Errorf("%w: %v", model.ErrBadDraw, err)
		}
		return g.validate(d.Date, d.Classic.Numbers, d.Classic.Bonus, formatPrize(d.Classic.Prize))
	case DailyGrand:
		var d dailyGrandDraw
		if err := json.Unmarshal(raw, &d); err != nil {
			return model.Draw{}, fmt.Errorf("%w: %v", model.ErrBadDraw, err)
		}
		// Daily Grand pays a life annuity, not a jackpot.
		return g.validate(d.Date, d.Numbers, d.GrandNumber, "Life Prize")
	}
	return model.Draw{}, fmt.Errorf("%w: unknown game", model.ErrBadDraw)
}

func (g Game) validate(date string, numbers []int, bonus int, prize string) (model.Draw, error) {
	cfg := g.Config()

	t, err := time.Parse(apiDateLayout, date)
	if err != nil {
		return model.Draw{}, fmt.Errorf("%w: bad date %q", model.ErrBadDraw, date)
	}
	if len(numbers) != cfg.MainCount {
		return model.Draw{}, fmt.Errorf("%w: got %d main numbers, want %d", model.ErrBadDraw, len(numbers), cfg.MainCount)
	}
	seen := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		if n < cfg.MainMin || n > cfg.MainMax {
			return model.Draw{}, fmt.Errorf("%w: main number %d out of range", model.ErrBadDraw, n)
		}
		if seen[n] {
			return model.Draw{}, fmt.Errorf("%w: duplicate main number %d", model.ErrBadDraw, n)
		}
		seen[n] = true
	}
	if bonus < cfg.BonusMin || bonus > cfg.BonusMax {
		return model.Draw{}, fmt.Errorf("%w: bonus %d out of range", model.ErrBadDraw, bonus)
	}

	return model.Draw{
		Date:    t,
		Numbers: append([]int(nil), numbers...),
		Bonus:   bonus,
		Prize:   prize,
	}, nil
}

func formatPrize(prize int64) string {
	if prize <= 0 {
		return "Not Available"
	}
	return "$" + humanize.Comma(prize)
}
