package stats

import (
	"sort"

	"LottoSentinel/internal/model"
)

// Top-N caps for the ranked sections of a snapshot.
const (
	hotCount          = 15
	coldCount         = 15
	overdueCount      = 15
	pairCount         = 20
	consPairCount     = 10
	tripletCount      = 15
	consTripletCount  = 10
	overdueProxyFloor = 10
)

// Compute derives a full StatsSnapshot from a newest-first draw history.
// It is a pure function: no I/O, no randomness, always recomputed from
// scratch, so two runs over the same history produce identical output.
func Compute(draws []model.Draw, cfg model.GameConfig) *model.StatsSnapshot {
	mainFreq := newNumberCounter()
	bonusFreq := newNumberCounter()
	pairs := newPairCounter()
	consPairs := newPairCounter()
	triplets := newTripletCounter()
	consTriplets := newTripletCounter()

	for _, d := range draws {
		mains := append([]int(nil), d.Numbers...)
		sort.Ints(mains)

		for _, n := range mains {
			mainFreq.add(n)
		}
		if d.Bonus > 0 {
			bonusFreq.add(d.Bonus)
		}

		for i := 0; i < len(mains); i++ {
			for j := i + 1; j < len(mains); j++ {
				p := model.Pair{A: mains[i], B: mains[j]}
				pairs.add(p)
				if mains[j]-mains[i] == 1 {
					consPairs.add(p)
				}
				for k := j + 1; k < len(mains); k++ {
					t := model.Triplet{A: mains[i], B: mains[j], C: mains[k]}
					triplets.add(t)
					if mains[j]-mains[i] == 1 && mains[k]-mains[j] == 1 {
						consTriplets.add(t)
					}
				}
			}
		}
	}

	ranked := mainFreq.ranked()

	snap := &model.StatsSnapshot{
		MainFreq:            mainFreq.counts,
		BonusFreq:           bonusFreq.counts,
		Hot:                 head(ranked, hotCount),
		Cold:                reversedTail(ranked, coldCount),
		Overdue:             overdueRanking(ranked),
		Pairs:               pairs.top(pairCount),
		ConsecutivePairs:    consPairs.top(consPairCount),
		Triplets:            triplets.top(tripletCount),
		ConsecutiveTriplets: consTriplets.top(consTripletCount),
	}
	if len(draws) > 0 {
		latest := draws[0]
		snap.Latest = &latest
	}
	return snap
}

// overdueRanking computes the inverse-frequency proxy over the 15 least
// frequent numbers: maxFreq - freq + 10, highest proxy first. This is a
// deliberate stand-in for recency, kept to match the displayed semantics.
func overdueRanking(ranked []model.NumberCount) []model.NumberCount {
	if len(ranked) == 0 {
		return nil
	}
	maxFreq := ranked[0].Count
	start := len(ranked) - overdueCount
	if start < 0 {
		start = 0
	}
	overdue := make([]model.NumberCount, 0, len(ranked)-start)
	for _, nc := range ranked[start:] {
		overdue = append(overdue, model.NumberCount{
			Number: nc.Number,
			Count:  maxFreq - nc.Count + overdueProxyFloor,
		})
	}
	sort.SliceStable(overdue, func(i, j int) bool { return overdue[i].Count > overdue[j].Count })
	return overdue
}

func head(ranked []model.NumberCount, n int) []model.NumberCount {
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return append([]model.NumberCount(nil), ranked...)
}

// reversedTail returns the n least frequent entries, ascending by count.
func reversedTail(ranked []model.NumberCount, n int) []model.NumberCount {
	start := len(ranked) - n
	if start < 0 {
		start = 0
	}
	tail := ranked[start:]
	out := make([]model.NumberCount, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}

// numberCounter tallies occurrences while remembering first-seen order, so
// ranking ties break by encounter order (stable sort).
type numberCounter struct {
	counts map[int]int
	order  []int
}

func newNumberCounter() *numberCounter {
	return &numberCounter{counts: make(map[int]int)}
}

func (c *numberCounter) add(n int) {
	if _, ok := c.counts[n]; !ok {
		c.order = append(c.order, n)
	}
	c.counts[n]++
}

func (c *numberCounter) ranked() []model.NumberCount {
	out := make([]model.NumberCount, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, model.NumberCount{Number: n, Count: c.counts[n]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

type pairCounter struct {
	counts map[model.Pair]int
	order  []model.Pair
}

func newPairCounter() *pairCounter {
	return &pairCounter{counts: make(map[model.Pair]int)}
}

func (c *pairCounter) add(p model.Pair) {
	if _, ok := c.counts[p]; !ok {
		c.order = append(c.order, p)
	}
	c.counts[p]++
}

func (c *pairCounter) top(n int) []model.PairCount {
	out := make([]model.PairCount, 0, len(c.order))
	for _, p := range c.order {
		out = append(out, model.PairCount{Pair: p, Count: c.counts[p]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

type tripletCounter struct {
	counts map[model.Triplet]int
	order  []model.Triplet
}

func newTripletCounter() *tripletCounter {
	return &tripletCounter{counts: make(map[model.Triplet]int)}
}

func (c *tripletCounter) add(t model.Triplet) {
	if _, ok := c.counts[t]; !ok {
		c.order = append(c.order, t)
	}
	c.counts[t]++
}

func (c *tripletCounter) top(n int) []model.TripletCount {
	out := make([]model.TripletCount, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, model.TripletCount{Triplet: t, Count: c.counts[t]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
