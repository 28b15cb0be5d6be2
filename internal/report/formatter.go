package report

import (
	"fmt"
	"sort"
	"strings"

	"LottoSentinel/internal/model"
)

// FormatLatestDraw renders the most recent draw for display.
func FormatLatestDraw(gameName string, snap *model.StatsSnapshot) string {
	if snap == nil || snap.Latest == nil {
		return "No draw data available"
	}
	d := snap.Latest

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Latest %s Draw: %s\n", gameName, d.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Numbers: %s", joinNumbers(d.Numbers)))
	if d.Bonus > 0 {
		b.WriteString(fmt.Sprintf(", Bonus: %d", d.Bonus))
	}
	if d.Prize != "" {
		b.WriteString(fmt.Sprintf("\nJackpot: %s", d.Prize))
	}
	return b.String()
}

// FormatSummary renders the sectioned statistics summary for one game.
// Rankings are shown in their snapshot order, split over two lines per
// section.
func FormatSummary(gameName string, snap *model.StatsSnapshot) string {
	if snap == nil {
		return "No statistics available"
	}

	divider := strings.Repeat("=", 60)

	var b strings.Builder
	b.WriteString(divider + "\n")
	b.WriteString(fmt.Sprintf("%s STATISTICS\n", strings.ToUpper(gameName)))
	b.WriteString(divider + "\n\n")

	writeNumberSection(&b, "HOT NUMBERS (Most Frequent):", snap.Hot, 10)
	writeNumberSection(&b, "COLD NUMBERS (Least Frequent):", snap.Cold, 10)
	writeNumberSection(&b, "MOST OVERDUE NUMBERS:", snap.Overdue, 10)
	writePairSection(&b, "MOST COMMON PAIRS:", snap.Pairs, 10, 5)
	writePairSection(&b, "MOST COMMON CONSECUTIVE PAIRS:", snap.ConsecutivePairs, 8, 4)
	writeTripletSection(&b, "MOST COMMON TRIPLETS:", snap.Triplets, 8, 4)
	writeTripletSection(&b, "MOST COMMON CONSECUTIVE TRIPLETS:", snap.ConsecutiveTriplets, 6, 3)

	b.WriteString(divider + "\n")
	b.WriteString("Numbers sorted by frequency (hot to cold)\n")
	b.WriteString(divider)
	return b.String()
}

// FormatTicketSets renders generated ticket sets, one per line.
func FormatTicketSets(sets []model.TicketSet) string {
	var b strings.Builder
	for i, t := range sets {
		b.WriteString(fmt.Sprintf("Set %d: %s", i+1, joinNumbers(t.Numbers)))
		if t.Bonus > 0 {
			b.WriteString(fmt.Sprintf(", Bonus: %d", t.Bonus))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatYearIssues renders a per-year mismatch report, sorted by year.
func FormatYearIssues(issues map[int]model.YearIssue) string {
	years := sortedYears(issues)

	var b strings.Builder
	for _, year := range years {
		info := issues[year]
		status := "missing"
		count := info.Missing
		if count < 0 {
			status = "extra"
			count = -count
		}
		b.WriteString(fmt.Sprintf("  %d: %d %s draw(s) (API: %d, Local: %d)\n",
			year, count, status, info.APICount, info.LocalCount))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatYearRanges compacts a set of years into readable ranges, e.g.
// "2010-2015, 2018, 2020-2023".
func FormatYearRanges(issues map[int]model.YearIssue) string {
	years := sortedYears(issues)
	if len(years) == 0 {
		return ""
	}

	var ranges []string
	start, end := years[0], years[0]
	flush := func() {
		if start == end {
			ranges = append(ranges, fmt.Sprintf("%d", start))
		} else {
			ranges = append(ranges, fmt.Sprintf("%d-%d", start, end))
		}
	}
	for _, y := range years[1:] {
		if y == end+1 {
			end = y
			continue
		}
		flush()
		start, end = y, y
	}
	flush()
	return strings.Join(ranges, ", ")
}

func sortedYears(issues map[int]model.YearIssue) []int {
	years := make([]int, 0, len(issues))
	for y := range issues {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func writeNumberSection(b *strings.Builder, title string, counts []model.NumberCount, perLine int) {
	if len(counts) == 0 {
		return
	}
	nums := make([]int, len(counts))
	for i, nc := range counts {
		nums[i] = nc.Number
	}
	b.WriteString(title + "\n")
	writeSplit(b, joinSlice(nums, perLine))
}

func writePairSection(b *strings.Builder, title string, pairs []model.PairCount, limit, perLine int) {
	if len(pairs) == 0 {
		return
	}
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	items := make([]string, len(pairs))
	for i, pc := range pairs {
		items[i] = fmt.Sprintf("(%d-%d)", pc.Pair.A, pc.Pair.B)
	}
	b.WriteString(title + "\n")
	writeSplit(b, splitStrings(items, perLine))
}

func writeTripletSection(b *strings.Builder, title string, triplets []model.TripletCount, limit, perLine int) {
	if len(triplets) == 0 {
		return
	}
	if len(triplets) > limit {
		triplets = triplets[:limit]
	}
	items := make([]string, len(triplets))
	for i, tc := range triplets {
		items[i] = fmt.Sprintf("(%d-%d-%d)", tc.Triplet.A, tc.Triplet.B, tc.Triplet.C)
	}
	b.WriteString(title + "\n")
	writeSplit(b, splitStrings(items, perLine))
}

func writeSplit(b *strings.Builder, lines []string) {
	for _, line := range lines {
		if line != "" {
			b.WriteString("   " + line + "\n")
		}
	}
	b.WriteString("\n")
}

func joinSlice(nums []int, perLine int) []string {
	items := make([]string, len(nums))
	for i, n := range nums {
		items[i] = fmt.Sprintf("%d", n)
	}
	return splitStrings(items, perLine)
}

func splitStrings(items []string, perLine int) []string {
	var lines []string
	for len(items) > 0 {
		n := perLine
		if n > len(items) {
			n = len(items)
		}
		lines = append(lines, strings.Join(items[:n], ", "))
		items = items[n:]
	}
	return lines
}

func joinNumbers(nums []int) string {
	items := make([]string, len(nums))
	for i, n := range nums {
		items[i] = fmt.Sprintf("%d", n)
	}
	return "[" + strings.Join(items, ", ") + "]"
}
