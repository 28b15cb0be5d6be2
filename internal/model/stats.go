package model

// NumberCount pairs a number with an occurrence count. Slices of NumberCount
// are ordered; the position carries ranking information.
type NumberCount struct {
	Number int
	Count  int
}

// Pair is an unordered pair of main numbers, stored with A < B.
type Pair struct {
	A, B int
}

// PairCount is a pair with its co-occurrence count.
type PairCount struct {
	Pair  Pair
	Count int
}

// Triplet is an unordered triple of main numbers, stored with A < B < C.
type Triplet struct {
	A, B, C int
}

// TripletCount is a triplet with its co-occurrence count.
type TripletCount struct {
	Triplet Triplet
	Count   int
}

// StatsSnapshot is the derived statistics bundle for one lottery. It is a
// cache: always fully recomputable from the draw history alone.
type StatsSnapshot struct {
	MainFreq  map[int]int
	BonusFreq map[int]int

	Hot     []NumberCount // top 15 by frequency, descending
	Cold    []NumberCount // bottom 15 by frequency, ascending
	Overdue []NumberCount // inverse-frequency proxy, not true recency

	Pairs               []PairCount    // top 20
	ConsecutivePairs    []PairCount    // top 10
	Triplets            []TripletCount // top 15
	ConsecutiveTriplets []TripletCount // top 10

	Latest *Draw
}

// YearIssue describes a per-year count mismatch between the remote source and
// the local store. Missing < 0 means the local store has extra entries.
type YearIssue struct {
	APICount   int
	LocalCount int
	Missing    int
}
