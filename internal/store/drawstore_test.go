package store

import (
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"LottoSentinel/internal/model"
)

var lottoMaxCfg = model.GameConfig{MainCount: 7, MainMin: 1, MainMax: 50, BonusCount: 1, BonusMin: 1, BonusMax: 50}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDrawStore_ReplaceLoadRoundTrip(t *testing.T) {
	ds, err := NewDrawStore(t.TempDir(), lottoMaxCfg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	draws := []model.Draw{
		{Date: date(2024, 1, 12), Numbers: []int{4, 12, 19, 23, 31, 40, 47}, Bonus: 12, Prize: "$70,000,000"},
		{Date: date(2024, 1, 9), Numbers: []int{1, 2, 3, 4, 5, 6, 7}, Bonus: 50, Prize: "Not Available"},
	}
	if err := ds.Replace(draws); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := ds.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, draws) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, draws)
	}
}

func TestDrawStore_LoadMissingFile(t *testing.T) {
	ds, err := NewDrawStore(t.TempDir(), lottoMaxCfg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	got, err := ds.Load()
	if err != nil {
		t.Fatalf("expected empty history for missing file, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no draws, got %d", len(got))
	}
}

func TestDrawStore_LoadBadHeader(t *testing.T) {
	ds, err := NewDrawStore(t.TempDir(), lottoMaxCfg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := os.WriteFile(ds.Path(), []byte("not a header\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ds.Load(); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}

func TestDrawStore_LoadBadLine(t *testing.T) {
	cases := map[string]string{
		"bad date":      "13/45/2024,4-12-19-23-31-40-47-12,\"$5\"\n",
		"bad number":    "1/12/2024,4-x-19-23-31-40-47-12,\"$5\"\n",
		"too few nums":  "1/12/2024,4-12-19,\"$5\"\n",
		"too many nums": "1/12/2024,1-2-3-4-5-6-7-8-9,\"$5\"\n",
		"two fields":    "1/12/2024,4-12-19-23-31-40-47\n",
	}
	for name, line := range cases {
		ds, err := NewDrawStore(t.TempDir(), lottoMaxCfg)
		if err != nil {
			t.Fatalf("new store: %v", err)
		}
		content := "Date,Draw Results,Jackpot\n" + line
		if err := os.WriteFile(ds.Path(), []byte(content), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := ds.Load(); !errors.Is(err, ErrCorrupt) {
			t.Errorf("%s: expected ErrCorrupt, got %v", name, err)
		}
	}
}

func TestDrawStore_LoadWithoutBonus(t *testing.T) {
	ds, err := NewDrawStore(t.TempDir(), lottoMaxCfg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	content := "Date,Draw Results,Jackpot\n1/12/2024,4-12-19-23-31-40-47,\"$5,000,000\"\n"
	if err := os.WriteFile(ds.Path(), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ds.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Bonus != 0 {
		t.Errorf("expected one draw with no bonus, got %+v", got)
	}
	if got[0].Prize != "$5,000,000" {
		t.Errorf("expected prize with comma preserved, got %q", got[0].Prize)
	}
}

func TestFormatRecord(t *testing.T) {
	d := model.Draw{
		Date:    date(2024, 1, 5),
		Numbers: []int{4, 12, 19, 23, 31, 40, 47},
		Bonus:   12,
		Prize:   "$5,000,000",
	}
	want := `1/5/2024,4-12-19-23-31-40-47-12,"$5,000,000"`
	if got := FormatRecord(d); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrependMerge_NewWinsOnCollision(t *testing.T) {
	existing := []model.Draw{
		{Date: date(2024, 1, 9), Numbers: []int{1, 2, 3, 4, 5, 6, 7}, Prize: "old"},
		{Date: date(2024, 1, 5), Numbers: []int{8, 9, 10, 11, 12, 13, 14}, Prize: "keep"},
	}
	fresh := []model.Draw{
		{Date: date(2024, 1, 12), Numbers: []int{15, 16, 17, 18, 19, 20, 21}, Prize: "newest"},
		{Date: date(2024, 1, 9), Numbers: []int{1, 2, 3, 4, 5, 6, 7}, Prize: "new"},
	}

	merged := PrependMerge(fresh, existing)
	if len(merged) != 3 {
		t.Fatalf("expected 3 draws, got %d", len(merged))
	}
	if merged[0].Prize != "newest" || merged[1].Prize != "new" || merged[2].Prize != "keep" {
		t.Errorf("unexpected merge order/precedence: %+v", merged)
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].Date.After(merged[i-1].Date) {
			t.Errorf("merged history not newest first at index %d", i)
		}
	}
}

func TestPrependMerge_Idempotent(t *testing.T) {
	draws := []model.Draw{
		{Date: date(2024, 1, 12), Numbers: []int{4, 12, 19, 23, 31, 40, 47}},
		{Date: date(2024, 1, 9), Numbers: []int{1, 2, 3, 4, 5, 6, 7}},
	}
	merged := PrependMerge(draws, draws)
	if !reflect.DeepEqual(merged, draws) {
		t.Errorf("merging history with itself changed it:\n got %+v\nwant %+v", merged, draws)
	}
}

func TestYearCounts(t *testing.T) {
	draws := []model.Draw{
		{Date: date(2024, 1, 12)},
		{Date: date(2024, 1, 9)},
		{Date: date(2023, 12, 29)},
	}
	got := YearCounts(draws)
	want := map[int]int{2024: 2, 2023: 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLatestDraw(t *testing.T) {
	if LatestDraw(nil) != nil {
		t.Error("expected nil for empty history")
	}
	draws := []model.Draw{
		{Date: date(2024, 1, 12)},
		{Date: date(2024, 1, 9)},
	}
	latest := LatestDraw(draws)
	if latest == nil || !latest.Date.Equal(date(2024, 1, 12)) {
		t.Errorf("expected newest draw, got %+v", latest)
	}
}
