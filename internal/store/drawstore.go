package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"LottoSentinel/internal/model"
)

// ErrCorrupt marks a draw store that is missing or structurally malformed.
// Callers must treat the whole store as unusable and recover by refetching.
var ErrCorrupt = errors.New("draw store unreadable")

const (
	historyHeader = "Date,Draw Results,Jackpot"
	dateLayout    = "1/2/2006"
	historyFile   = "past_numbers.txt"
)

// DrawStore owns the on-disk draw history for one lottery. The backing file
// is comma-delimited, newest draw first, with main numbers and bonus
// hyphen-joined in the second field and the prize quoted in the third.
type DrawStore struct {
	cfg  model.GameConfig
	path string
}

// NewDrawStore creates the store rooted at dir, creating dir if needed.
func NewDrawStore(dir string, cfg model.GameConfig) (*DrawStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &DrawStore{cfg: cfg, path: filepath.Join(dir, historyFile)}, nil
}

// Path returns the backing file path.
func (s *DrawStore) Path() string { return s.path }

// Load reads the full draw history, newest first. A missing file is empty
// history, not an error. Any structural problem (bad header, wrong field
// count, unparseable numbers) reports ErrCorrupt; the caller must treat this
// as "no usable local data".
func (s *DrawStore) Load() ([]model.Draw, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != historyHeader {
		return nil, fmt.Errorf("%w: bad header", ErrCorrupt)
	}

	draws := make([]model.Draw, 0, len(lines)-1)
	for i, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		d, err := s.parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCorrupt, i+2, err)
		}
		draws = append(draws, d)
	}
	return draws, nil
}

func (s *DrawStore) parseLine(line string) (model.Draw, error) {
	parts := strings.SplitN(line, ",", 3)
	if len(parts) != 3 {
		return model.Draw{}, fmt.Errorf("expected 3 fields, got %d", len(parts))
	}

	date, err := parseDate(parts[0])
	if err != nil {
		return model.Draw{}, err
	}

	fields := strings.Split(parts[1], "-")
	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return model.Draw{}, fmt.Errorf("bad number %q", f)
		}
		nums = append(nums, n)
	}
	if len(nums) < s.cfg.MainCount || len(nums) > s.cfg.MainCount+1 {
		return model.Draw{}, fmt.Errorf("expected %d or %d numbers, got %d",
			s.cfg.MainCount, s.cfg.MainCount+1, len(nums))
	}

	d := model.Draw{
		Date:    date,
		Numbers: nums[:s.cfg.MainCount],
		Prize:   strings.Trim(parts[2], `"`),
	}
	if len(nums) > s.cfg.MainCount {
		d.Bonus = nums[s.cfg.MainCount]
	}
	return d, nil
}

// Replace atomically overwrites the backing store with the given history,
// newest first. A concurrent reader sees either the old file or the new one,
// never a partial write.
func (s *DrawStore) Replace(draws []model.Draw) error {
	var b strings.Builder
	b.WriteString(historyHeader)
	b.WriteByte('\n')
	for _, d := range draws {
		b.WriteString(FormatRecord(d))
		b.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write draw history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("swap draw history: %w", err)
	}
	return nil
}

// FormatRecord renders one draw in the on-disk record format.
func FormatRecord(d model.Draw) string {
	nums := make([]string, 0, len(d.Numbers)+1)
	for _, n := range d.Numbers {
		nums = append(nums, strconv.Itoa(n))
	}
	if d.Bonus > 0 {
		nums = append(nums, strconv.Itoa(d.Bonus))
	}
	return fmt.Sprintf("%s,%s,\"%s\"", d.Date.Format(dateLayout), strings.Join(nums, "-"), d.Prize)
}

// PrependMerge combines new draws with an existing history: new draws take
// precedence on date collisions, and the result is deduplicated by date and
// sorted newest first.
func PrependMerge(newDraws, existing []model.Draw) []model.Draw {
	merged := make([]model.Draw, 0, len(newDraws)+len(existing))
	seen := make(map[string]bool, len(newDraws)+len(existing))
	for _, d := range append(append([]model.Draw{}, newDraws...), existing...) {
		key := d.Date.Format(dateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, d)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})
	return merged
}

// YearCounts tallies draws per calendar year in one pass.
func YearCounts(draws []model.Draw) map[int]int {
	counts := make(map[int]int)
	for _, d := range draws {
		counts[d.Year()]++
	}
	return counts
}

// LatestDraw returns the newest draw of a newest-first history, or nil.
func LatestDraw(draws []model.Draw) *model.Draw {
	if len(draws) == 0 {
		return nil
	}
	d := draws[0]
	return &d
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q", s)
	}
	return t, nil
}
