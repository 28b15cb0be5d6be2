package game

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"LottoSentinel/internal/model"
)

func TestParseAPIDraw_LottoMax(t *testing.T) {
	raw := json.RawMessage(`{"date":"2024-01-12","numbers":[4,12,19,23,31,40,47],"bonus":12,"prize":70000000}`)
	d, err := LottoMax.ParseAPIDraw(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Date.Year() != 2024 || d.Date.Month() != 1 || d.Date.Day() != 12 {
		t.Errorf("unexpected date: %v", d.Date)
	}
	if len(d.Numbers) != 7 || d.Numbers[0] != 4 {
		t.Errorf("unexpected numbers: %v", d.Numbers)
	}
	if d.Bonus != 12 {
		t.Errorf("unexpected bonus: %d", d.Bonus)
	}
	if d.Prize != "$70,000,000" {
		t.Errorf("unexpected prize: %q", d.Prize)
	}
}

func TestParseAPIDraw_LottoMaxNoPrize(t *testing.T) {
	raw := json.RawMessage(`{"date":"2024-01-12","numbers":[4,12,19,23,31,40,47],"bonus":12}`)
	d, err := LottoMax.ParseAPIDraw(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Prize != "Not Available" {
		t.Errorf("expected placeholder prize, got %q", d.Prize)
	}
}

func TestParseAPIDraw_Lotto649Nested(t *testing.T) {
	raw := json.RawMessage(`{
		"date": "2024-02-03",
		"classic": {"numbers": [3, 9, 17, 28, 36, 44], "bonus": 21, "prize": 5000000},
		"guaranteed": ["12345678-01"]
	}`)
	d, err := Lotto649.ParseAPIDraw(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(d.Numbers) != 6 || d.Numbers[5] != 44 {
		t.Errorf("unexpected numbers: %v", d.Numbers)
	}
	if d.Bonus != 21 {
		t.Errorf("unexpected bonus: %d", d.Bonus)
	}
	if d.Prize != "$5,000,000" {
		t.Errorf("unexpected prize: %q", d.Prize)
	}
}

func TestParseAPIDraw_DailyGrand(t *testing.T) {
	raw := json.RawMessage(`{"date":"2024-03-04","numbers":[5,14,23,37,45],"grandNumber":3}`)
	d, err := DailyGrand.ParseAPIDraw(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Bonus != 3 {
		t.Errorf("expected grand number as bonus, got %d", d.Bonus)
	}
	if d.Prize != "Life Prize" {
		t.Errorf("unexpected prize: %q", d.Prize)
	}
}

func TestParseAPIDraw_BadRecords(t *testing.T) {
	cases := map[string]struct {
		game Game
		raw  string
	}{
		"malformed json":     {LottoMax, `{`},
		"bad date":           {LottoMax, `{"date":"12/01/2024","numbers":[4,12,19,23,31,40,47],"bonus":12}`},
		"too few numbers":    {LottoMax, `{"date":"2024-01-12","numbers":[4,12,19],"bonus":12}`},
		"duplicate number":   {LottoMax, `{"date":"2024-01-12","numbers":[4,4,19,23,31,40,47],"bonus":12}`},
		"number out of range": {LottoMax, `{"date":"2024-01-12","numbers":[4,12,19,23,31,40,51],"bonus":12}`},
		"bonus out of range": {DailyGrand, `{"date":"2024-01-12","numbers":[5,14,23,37,45],"grandNumber":8}`},
		"zero bonus":         {LottoMax, `{"date":"2024-01-12","numbers":[4,12,19,23,31,40,47]}`},
	}
	for name, tc := range cases {
		_, err := tc.game.ParseAPIDraw(json.RawMessage(tc.raw))
		if !errors.Is(err, model.ErrBadDraw) {
			t.Errorf("%s: expected ErrBadDraw, got %v", name, err)
		}
	}
}

func TestYearRange(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		game  Game
		first int
	}{
		{LottoMax, 2009},
		{Lotto649, 1982},
		{DailyGrand, 2016},
	}
	for _, tc := range cases {
		first, last := tc.game.YearRange(now)
		if first != tc.first || last != 2024 {
			t.Errorf("%s: got %d-%d, want %d-2024", tc.game.Name(), first, last, tc.first)
		}
	}
}
