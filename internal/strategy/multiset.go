package strategy

import (
	"strconv"
	"strings"

	"LottoSentinel/internal/model"
)

// GenerateSets produces up to n ticket sets with distinct main-number
// combinations. Generation is capped at 10×n attempts, so a degenerate
// strategy yields fewer sets instead of looping forever.
func GenerateSets(s Strategy, snap *model.StatsSnapshot, cfg model.GameConfig, n int) []model.TicketSet {
	used := make(map[string]bool, n)
	sets := make([]model.TicketSet, 0, n)
	maxAttempts := n * 10

	for attempts := 0; len(sets) < n && attempts < maxAttempts; attempts++ {
		t := s.Generate(snap, cfg)
		key := setKey(t.Numbers)
		if used[key] {
			continue
		}
		used[key] = true
		sets = append(sets, t)
	}
	return sets
}

// setKey identifies a main-number combination; numbers are already sorted.
func setKey(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}
