package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"LottoSentinel/internal/model"
)

const statsFile = "statistics.txt"

// Section headers, in file order. The statistics file is a regenerable
// cache: when it is absent or unreadable, callers rebuild it from the draw
// history.
const (
	secMainFreq     = "Main Number Frequencies:"
	secBonusFreq    = "Bonus Number Frequencies:"
	secHot          = "Hot Numbers:"
	secCold         = "Cold Numbers:"
	secOverdue      = "Most Overdue Numbers:"
	secPairs        = "Most Common Pairs:"
	secConsPairs    = "Most Common Consecutive Pairs:"
	secTriplets     = "Most Common Triplets:"
	secConsTriplets = "Most Common Consecutive Triplets:"
)

// StatsStore persists a StatsSnapshot as a sectioned text file.
type StatsStore struct {
	path string
}

// NewStatsStore creates the store rooted at dir, creating dir if needed.
func NewStatsStore(dir string) (*StatsStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &StatsStore{path: filepath.Join(dir, statsFile)}, nil
}

// Path returns the backing file path.
func (s *StatsStore) Path() string { return s.path }

// Write renders the snapshot to disk. The latest draw is not part of the
// statistics file; it lives in the draw history.
func (s *StatsStore) Write(snap *model.StatsSnapshot) error {
	var b strings.Builder

	b.WriteString(secMainFreq + "\n")
	for _, n := range sortedKeys(snap.MainFreq) {
		fmt.Fprintf(&b, "%d: %d\n", n, snap.MainFreq[n])
	}

	b.WriteString("\n" + secBonusFreq + "\n")
	for _, n := range sortedKeys(snap.BonusFreq) {
		fmt.Fprintf(&b, "%d: %d\n", n, snap.BonusFreq[n])
	}

	b.WriteString("\n" + secHot + "\n")
	for _, nc := range snap.Hot {
		fmt.Fprintf(&b, "%d: %d\n", nc.Number, nc.Count)
	}

	b.WriteString("\n" + secCold + "\n")
	for _, nc := range snap.Cold {
		fmt.Fprintf(&b, "%d: %d\n", nc.Number, nc.Count)
	}

	b.WriteString("\n" + secOverdue + "\n")
	for _, nc := range snap.Overdue {
		fmt.Fprintf(&b, "%d: %d\n", nc.Number, nc.Count)
	}

	b.WriteString("\n" + secPairs + "\n")
	writePairs(&b, snap.Pairs)
	b.WriteString("\n" + secConsPairs + "\n")
	writePairs(&b, snap.ConsecutivePairs)
	b.WriteString("\n" + secTriplets + "\n")
	writeTriplets(&b, snap.Triplets)
	b.WriteString("\n" + secConsTriplets + "\n")
	writeTriplets(&b, snap.ConsecutiveTriplets)

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write statistics: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("swap statistics: %w", err)
	}
	return nil
}

// Read loads the snapshot back from disk. The Latest field is left nil; the
// caller fills it from the draw history.
func (s *StatsStore) Read() (*model.StatsSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read statistics: %w", err)
	}

	snap := &model.StatsSnapshot{
		MainFreq:  make(map[int]int),
		BonusFreq: make(map[int]int),
	}

	section := ""
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case secMainFreq, secBonusFreq, secHot, secCold, secOverdue,
			secPairs, secConsPairs, secTriplets, secConsTriplets:
			section = line
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("statistics entry %q: %w", line, err)
		}
		nums, err := parseHyphenated(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("statistics entry %q: %w", line, err)
		}

		switch section {
		case secMainFreq:
			snap.MainFreq[nums[0]] = count
		case secBonusFreq:
			snap.BonusFreq[nums[0]] = count
		case secHot:
			snap.Hot = append(snap.Hot, model.NumberCount{Number: nums[0], Count: count})
		case secCold:
			snap.Cold = append(snap.Cold, model.NumberCount{Number: nums[0], Count: count})
		case secOverdue:
			snap.Overdue = append(snap.Overdue, model.NumberCount{Number: nums[0], Count: count})
		case secPairs:
			snap.Pairs = appendPair(snap.Pairs, nums, count)
		case secConsPairs:
			snap.ConsecutivePairs = appendPair(snap.ConsecutivePairs, nums, count)
		case secTriplets:
			snap.Triplets = appendTriplet(snap.Triplets, nums, count)
		case secConsTriplets:
			snap.ConsecutiveTriplets = appendTriplet(snap.ConsecutiveTriplets, nums, count)
		}
	}
	return snap, nil
}

func writePairs(b *strings.Builder, pairs []model.PairCount) {
	for _, pc := range pairs {
		fmt.Fprintf(b, "%d-%d: %d\n", pc.Pair.A, pc.Pair.B, pc.Count)
	}
}

func writeTriplets(b *strings.Builder, triplets []model.TripletCount) {
	for _, tc := range triplets {
		fmt.Fprintf(b, "%d-%d-%d: %d\n", tc.Triplet.A, tc.Triplet.B, tc.Triplet.C, tc.Count)
	}
}

func appendPair(dst []model.PairCount, nums []int, count int) []model.PairCount {
	if len(nums) != 2 {
		return dst
	}
	return append(dst, model.PairCount{Pair: model.Pair{A: nums[0], B: nums[1]}, Count: count})
}

func appendTriplet(dst []model.TripletCount, nums []int, count int) []model.TripletCount {
	if len(nums) != 3 {
		return dst
	}
	return append(dst, model.TripletCount{Triplet: model.Triplet{A: nums[0], B: nums[1], C: nums[2]}, Count: count})
}

func parseHyphenated(key string) ([]int, error) {
	parts := strings.Split(key, "-")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
	return nums, nil
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
