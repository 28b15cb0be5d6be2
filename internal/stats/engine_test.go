package stats

import (
	"reflect"
	"testing"
	"time"

	"LottoSentinel/internal/model"
)

var dailyGrandCfg = model.GameConfig{MainCount: 5, MainMin: 1, MainMax: 49, BonusCount: 1, BonusMin: 1, BonusMax: 7}

func sampleDraws() []model.Draw {
	// Newest first.
	return []model.Draw{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Numbers: []int{1, 2, 3, 10, 20}, Bonus: 3},
		{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Numbers: []int{1, 2, 4, 11, 21}, Bonus: 3},
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Numbers: []int{1, 5, 6, 12, 22}, Bonus: 2},
	}
}

func TestCompute_FrequencySumInvariant(t *testing.T) {
	draws := sampleDraws()
	snap := Compute(draws, dailyGrandCfg)

	sum := 0
	for _, c := range snap.MainFreq {
		sum += c
	}
	if want := len(draws) * dailyGrandCfg.MainCount; sum != want {
		t.Errorf("main frequency sum = %d, want %d", sum, want)
	}
	if snap.MainFreq[1] != 3 || snap.MainFreq[2] != 2 || snap.MainFreq[20] != 1 {
		t.Errorf("unexpected main frequencies: %v", snap.MainFreq)
	}
	if snap.BonusFreq[3] != 2 || snap.BonusFreq[2] != 1 {
		t.Errorf("unexpected bonus frequencies: %v", snap.BonusFreq)
	}
}

func TestCompute_HotColdOrdering(t *testing.T) {
	snap := Compute(sampleDraws(), dailyGrandCfg)

	if len(snap.Hot) == 0 || snap.Hot[0].Number != 1 || snap.Hot[0].Count != 3 {
		t.Fatalf("expected 1 (count 3) as hottest, got %+v", snap.Hot)
	}
	if snap.Hot[1].Number != 2 || snap.Hot[1].Count != 2 {
		t.Errorf("expected 2 (count 2) second hottest, got %+v", snap.Hot[1])
	}

	// Cold is ascending: least frequent first, and never starts with the
	// most frequent number.
	if len(snap.Cold) == 0 {
		t.Fatal("expected cold numbers")
	}
	if snap.Cold[0].Count != 1 {
		t.Errorf("expected coldest count 1, got %+v", snap.Cold[0])
	}
	for i := 1; i < len(snap.Cold); i++ {
		if snap.Cold[i].Count < snap.Cold[i-1].Count {
			t.Errorf("cold ranking not ascending at index %d: %+v", i, snap.Cold)
		}
	}
}

func TestCompute_OverdueProxy(t *testing.T) {
	snap := Compute(sampleDraws(), dailyGrandCfg)

	// Proxy is maxFreq - freq + 10, highest first: count-1 numbers score 12,
	// number 2 scores 11, number 1 scores 10.
	if len(snap.Overdue) == 0 {
		t.Fatal("expected overdue numbers")
	}
	if snap.Overdue[0].Count != 12 {
		t.Errorf("expected top overdue proxy 12, got %+v", snap.Overdue[0])
	}
	last := snap.Overdue[len(snap.Overdue)-1]
	if last.Number != 1 || last.Count != 10 {
		t.Errorf("expected most frequent number last with proxy 10, got %+v", last)
	}
	for i := 1; i < len(snap.Overdue); i++ {
		if snap.Overdue[i].Count > snap.Overdue[i-1].Count {
			t.Errorf("overdue ranking not descending at index %d", i)
		}
	}
}

func TestCompute_PairsAndTriplets(t *testing.T) {
	snap := Compute(sampleDraws(), dailyGrandCfg)

	if len(snap.Pairs) == 0 || snap.Pairs[0].Pair != (model.Pair{A: 1, B: 2}) || snap.Pairs[0].Count != 2 {
		t.Errorf("expected (1,2) count 2 as top pair, got %+v", snap.Pairs)
	}

	wantCons := map[model.Pair]int{
		{A: 1, B: 2}: 2,
		{A: 2, B: 3}: 1,
		{A: 5, B: 6}: 1,
	}
	gotCons := make(map[model.Pair]int)
	for _, pc := range snap.ConsecutivePairs {
		gotCons[pc.Pair] = pc.Count
	}
	if !reflect.DeepEqual(gotCons, wantCons) {
		t.Errorf("consecutive pairs = %v, want %v", gotCons, wantCons)
	}

	if len(snap.ConsecutiveTriplets) != 1 ||
		snap.ConsecutiveTriplets[0].Triplet != (model.Triplet{A: 1, B: 2, C: 3}) {
		t.Errorf("expected only consecutive triplet (1,2,3), got %+v", snap.ConsecutiveTriplets)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	a := Compute(sampleDraws(), dailyGrandCfg)
	b := Compute(sampleDraws(), dailyGrandCfg)
	if !reflect.DeepEqual(a, b) {
		t.Error("two computations over the same history differ")
	}
}

func TestCompute_Empty(t *testing.T) {
	snap := Compute(nil, dailyGrandCfg)
	if snap == nil {
		t.Fatal("expected snapshot for empty history")
	}
	if snap.Latest != nil {
		t.Error("expected nil latest draw")
	}
	if len(snap.Hot) != 0 || len(snap.Pairs) != 0 || len(snap.Overdue) != 0 {
		t.Errorf("expected empty rankings, got %+v", snap)
	}
}

func TestCompute_LatestDraw(t *testing.T) {
	draws := sampleDraws()
	snap := Compute(draws, dailyGrandCfg)
	if snap.Latest == nil || !snap.Latest.Date.Equal(draws[0].Date) {
		t.Errorf("expected latest = first draw, got %+v", snap.Latest)
	}
}

func TestCompute_UnsortedDrawNumbers(t *testing.T) {
	// Draw numbers arrive in draw order, not sorted; pair detection must
	// still see (1,2) as consecutive.
	draws := []model.Draw{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Numbers: []int{20, 2, 10, 1, 3}, Bonus: 1},
	}
	snap := Compute(draws, dailyGrandCfg)

	found := false
	for _, pc := range snap.ConsecutivePairs {
		if pc.Pair == (model.Pair{A: 1, B: 2}) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected consecutive pair (1,2) from unsorted input, got %+v", snap.ConsecutivePairs)
	}
}
