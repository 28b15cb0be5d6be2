package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"LottoSentinel/internal/collector"
	"LottoSentinel/internal/game"
	"LottoSentinel/internal/model"
	"LottoSentinel/internal/store"
)

// ErrNoLocalData distinguishes "no local history exists, initial fetch
// needed" from "zero new draws found".
var ErrNoLocalData = errors.New("no local draw history")

// Reconciler detects and repairs drift between the local draw history and
// the remote source for one lottery. Remote fetches for different years run
// on a bounded worker pool; the local store is only ever written once, after
// every fetch of an operation has completed.
type Reconciler struct {
	game    game.Game
	fetcher collector.Fetcher
	store   *store.DrawStore
	workers int
	now     func() time.Time
}

// New creates a Reconciler with the given fetch concurrency.
func New(g game.Game, f collector.Fetcher, st *store.DrawStore, workers int) *Reconciler {
	if workers < 1 {
		workers = 1
	}
	return &Reconciler{game: g, fetcher: f, store: st, workers: workers, now: time.Now}
}

// CheckForNewDraws counts remote draws newer than the local newest draw,
// looking at the current and prior year since the remote year boundary may
// lag. Fetch failures degrade to zero new draws. Returns ErrNoLocalData when
// the local history is empty.
func (r *Reconciler) CheckForNewDraws(ctx context.Context, local []model.Draw) (int, error) {
	if len(local) == 0 {
		return 0, ErrNoLocalData
	}
	newest := local[0].Date

	count := 0
	for _, year := range r.recentYears() {
		draws, err := r.fetchYear(ctx, year)
		if err != nil {
			log.Printf("[WARN] %s: check year %d: %v", r.game.Name(), year, err)
			continue
		}
		for _, d := range draws {
			if d.Date.After(newest) {
				count++
			}
		}
	}
	return count, nil
}

// UpdateFromAPI merges draws newer than the local newest into the store.
// Returns the merged history and the number of draws added.
func (r *Reconciler) UpdateFromAPI(ctx context.Context, local []model.Draw) ([]model.Draw, int, error) {
	if len(local) == 0 {
		return nil, 0, ErrNoLocalData
	}
	newest := local[0].Date

	var fresh []model.Draw
	for _, year := range r.recentYears() {
		draws, err := r.fetchYear(ctx, year)
		if err != nil {
			log.Printf("[WARN] %s: update year %d: %v", r.game.Name(), year, err)
			continue
		}
		for _, d := range draws {
			if d.Date.After(newest) {
				fresh = append(fresh, d)
			}
		}
	}
	if len(fresh) == 0 {
		return local, 0, nil
	}

	merged := store.PrependMerge(fresh, local)
	if err := r.store.Replace(merged); err != nil {
		return nil, 0, err
	}
	return merged, len(merged) - len(local), nil
}

// CheckForMissingYears compares local per-year draw counts against the
// remote source across the game's valid year range (or only the most recent
// 3 years when quick). A year is flagged only when the counts differ; a
// negative Missing means the local store has extra entries. Individual year
// failures are skipped; only every year failing is an error.
func (r *Reconciler) CheckForMissingYears(ctx context.Context, local []model.Draw, quick bool) (map[int]model.YearIssue, error) {
	first, last := r.game.YearRange(r.now())
	if quick && last-2 > first {
		first = last - 2
	}
	years := make([]int, 0, last-first+1)
	for y := first; y <= last; y++ {
		years = append(years, y)
	}

	localCounts := store.YearCounts(local)
	issues := make(map[int]model.YearIssue)
	failed := 0
	for _, res := range r.fetchYears(ctx, years) {
		if res.err != nil {
			log.Printf("[WARN] %s: count year %d: %v", r.game.Name(), res.year, res.err)
			failed++
			continue
		}
		apiCount := len(res.draws)
		localCount := localCounts[res.year]
		if apiCount != localCount {
			issues[res.year] = model.YearIssue{
				APICount:   apiCount,
				LocalCount: localCount,
				Missing:    apiCount - localCount,
			}
		}
	}
	if failed == len(years) {
		return nil, fmt.Errorf("%s: all %d year checks failed", r.game.Name(), len(years))
	}
	return issues, nil
}

// FetchMissingYears repairs every flagged year by replacing its local draws
// with a fresh remote set. Non-flagged years are preserved untouched, and a
// year whose refetch fails keeps its local draws. The merged history is
// deduplicated by date, re-sorted newest first, and written exactly once, so
// re-running on repaired data is a no-op.
func (r *Reconciler) FetchMissingYears(ctx context.Context, local []model.Draw, issues map[int]model.YearIssue) ([]model.Draw, int, error) {
	if len(issues) == 0 {
		return local, 0, nil
	}

	years := make([]int, 0, len(issues))
	for y := range issues {
		years = append(years, y)
	}

	var fresh []model.Draw
	repaired := make(map[int]bool, len(years))
	for _, res := range r.fetchYears(ctx, years) {
		if res.err != nil {
			log.Printf("[WARN] %s: refetch year %d failed, keeping local draws: %v",
				r.game.Name(), res.year, res.err)
			continue
		}
		repaired[res.year] = true
		fresh = append(fresh, res.draws...)
	}

	kept := make([]model.Draw, 0, len(local))
	for _, d := range local {
		if !repaired[d.Year()] {
			kept = append(kept, d)
		}
	}

	merged := store.PrependMerge(fresh, kept)
	if err := r.store.Replace(merged); err != nil {
		return nil, 0, err
	}
	return merged, len(fresh), nil
}

// FetchFromAPI performs the initial full fetch: every published year (the
// game's full valid range when the year listing is unavailable), in parallel,
// tolerating individual year failures. Only every year coming back empty is
// an error. The store is written once at the end.
func (r *Reconciler) FetchFromAPI(ctx context.Context) ([]model.Draw, error) {
	first, last := r.game.YearRange(r.now())
	years, err := r.fetcher.FetchYears(ctx, r.game.Slug())
	if err != nil || len(years) == 0 {
		if err != nil {
			log.Printf("[WARN] %s: list years: %v", r.game.Name(), err)
		}
		years = make([]int, 0, last-first+1)
		for y := first; y <= last; y++ {
			years = append(years, y)
		}
	}

	var all []model.Draw
	for _, res := range r.fetchYears(ctx, years) {
		if res.err != nil {
			log.Printf("[ERROR] %s: fetch year %d: %v", r.game.Name(), res.year, res.err)
			continue
		}
		all = append(all, res.draws...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%s: no draws fetched for any year (%d-%d)", r.game.Name(), first, last)
	}

	merged := store.PrependMerge(all, nil)
	if err := r.store.Replace(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// recentYears returns the current and prior year, newest first.
func (r *Reconciler) recentYears() []int {
	year := r.now().Year()
	return []int{year, year - 1}
}

type yearResult struct {
	year  int
	draws []model.Draw
	err   error
}

// fetchYears fans the given years out over the worker pool and collects all
// results. Aggregation is order-independent; one year's failure never
// cancels its siblings.
func (r *Reconciler) fetchYears(ctx context.Context, years []int) []yearResult {
	sem := make(chan struct{}, r.workers)
	out := make(chan yearResult, len(years))

	for _, year := range years {
		go func() {
			sem <- struct{}{}
			defer func() { <-sem }()
			draws, err := r.fetchYear(ctx, year)
			out <- yearResult{year: year, draws: draws, err: err}
		}()
	}

	results := make([]yearResult, 0, len(years))
	for range years {
		results = append(results, <-out)
	}
	return results
}

// fetchYear fetches and decodes one year of draws. Records failing
// validation are dropped with a warning, never propagated.
func (r *Reconciler) fetchYear(ctx context.Context, year int) ([]model.Draw, error) {
	raws, err := r.fetcher.FetchDrawsForYear(ctx, r.game.Slug(), year)
	if err != nil {
		return nil, err
	}
	draws := make([]model.Draw, 0, len(raws))
	for _, raw := range raws {
		d, err := r.game.ParseAPIDraw(raw)
		if err != nil {
			log.Printf("[WARN] %s: dropping draw record for %d: %v", r.game.Name(), year, err)
			continue
		}
		draws = append(draws, d)
	}
	return draws, nil
}
