package scheduler

import (
	"context"
	"fmt"
	"log"

	"LottoSentinel/internal/game"
	"LottoSentinel/internal/reconciler"
	"LottoSentinel/internal/recorder"
	"LottoSentinel/internal/state"
	"LottoSentinel/internal/stats"
	"LottoSentinel/internal/store"

	"github.com/robfig/cron/v3"
)

// Unit bundles everything the scheduler needs to maintain one lottery.
type Unit struct {
	Game       game.Game
	Store      *store.DrawStore
	Stats      *store.StatsStore
	Reconciler *reconciler.Reconciler
}

// Scheduler runs the nightly draw-history update across all games.
type Scheduler struct {
	Cron     *cron.Cron
	Units    []Unit
	State    *state.Manager
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, units []Unit, sm *state.Manager, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Units:    units,
		State:    sm,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// RegisterAll registers the scheduled update task.
func (s *Scheduler) RegisterAll(updateCron string) error {
	if _, err := s.Cron.AddFunc(updateCron, func() { s.updateTask("SCHEDULED") }); err != nil {
		return fmt.Errorf("register update task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunUpdateNow executes the update task immediately (manual trigger).
func (s *Scheduler) RunUpdateNow() {
	s.updateTask("MANUAL")
}

// updateTask checks every game for new draws, merges them, and recomputes
// statistics. One game failing never stops the others.
func (s *Scheduler) updateTask(trigger string) {
	log.Println("[INFO] running draw update task")
	for _, u := range s.Units {
		if err := s.updateGame(u, trigger); err != nil {
			log.Printf("[ERROR] update %s: %v", u.Game.Name(), err)
		}
	}
}

func (s *Scheduler) updateGame(u Unit, trigger string) error {
	local, err := u.Store.Load()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(local) == 0 {
		log.Printf("[WARN] %s: no local history, skipping scheduled update (run initial fetch first)", u.Game.Name())
		return nil
	}

	merged, added, err := u.Reconciler.UpdateFromAPI(s.Ctx, local)
	if err != nil {
		return fmt.Errorf("update from api: %w", err)
	}
	if added == 0 {
		log.Printf("[INFO] %s: up to date (%d draws)", u.Game.Name(), len(local))
		if err := s.State.MarkChecked(u.Game.Slug(), false, len(local)); err != nil {
			log.Printf("[WARN] %s: save state: %v", u.Game.Name(), err)
		}
		return nil
	}

	snap := stats.Compute(merged, u.Game.Config())
	if err := u.Stats.Write(snap); err != nil {
		return fmt.Errorf("write statistics: %w", err)
	}
	log.Printf("[INFO] %s: added %d draw(s), statistics recomputed", u.Game.Name(), added)

	if err := s.Recorder.RecordUpdate(&recorder.UpdateEvent{
		Game:       u.Game.Slug(),
		Trigger:    trigger,
		DrawsAdded: added,
	}); err != nil {
		log.Printf("[ERROR] record update: %v", err)
	}
	if err := s.State.MarkChecked(u.Game.Slug(), true, len(merged)); err != nil {
		log.Printf("[WARN] %s: save state: %v", u.Game.Name(), err)
	}
	return nil
}
