package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"LottoSentinel/internal/config"
	"LottoSentinel/internal/model"
	"LottoSentinel/internal/recorder"
	"LottoSentinel/internal/report"
	"LottoSentinel/internal/scheduler"
	"LottoSentinel/internal/state"
	"LottoSentinel/internal/stats"
	"LottoSentinel/internal/strategy"
)

// errQuit propagates the ":qa" quit command out of nested menus.
var errQuit = errors.New("quit requested")

type app struct {
	ctx        context.Context
	cfg        *config.Config
	units      []scheduler.Unit
	strategies *strategy.Manager
	state      *state.Manager
	recorder   recorder.Recorder
	in         *bufio.Scanner
}

func newApp(ctx context.Context, cfg *config.Config, units []scheduler.Unit, sm *strategy.Manager, st *state.Manager, rec recorder.Recorder) *app {
	return &app{
		ctx:        ctx,
		cfg:        cfg,
		units:      units,
		strategies: sm,
		state:      st,
		recorder:   rec,
		in:         bufio.NewScanner(os.Stdin),
	}
}

// Run drives the main menu until the user exits or stdin closes.
func (a *app) Run() {
	for {
		divider(50)
		fmt.Println("Welcome to LottoSentinel!")
		divider(50)
		for i, u := range a.units {
			fmt.Printf("%d. %s\n", i+1, u.Game.Name())
		}
		fmt.Printf("%d. System Config\n", len(a.units)+1)
		fmt.Printf("%d. Exit\n", len(a.units)+2)
		divider(50)

		choice, err := a.choice(len(a.units)+2, false)
		if err != nil {
			return
		}
		switch {
		case choice <= len(a.units):
			err = a.lotteryMenu(a.units[choice-1])
		case choice == len(a.units)+1:
			err = a.systemMenu()
		default:
			fmt.Println("Goodbye!")
			return
		}
		if err != nil {
			return
		}
	}
}

func (a *app) lotteryMenu(u scheduler.Unit) error {
	for {
		divider(50)
		fmt.Printf("%s Menu\n", u.Game.Name())
		divider(50)
		fmt.Println("1. Generate Numbers")
		fmt.Println("2. View Latest Draw")
		fmt.Println("3. View Statistics")
		fmt.Println("4. Update Statistics")
		fmt.Println("5. Configure Strategy")
		fmt.Println("0. Back to Main Menu")
		divider(50)

		choice, err := a.choice(5, true)
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = a.generationMenu(u)
		case 2:
			a.showLatestDraw(u)
		case 3:
			a.showStatistics(u)
		case 4:
			a.updateStatistics(u)
		case 5:
			err = a.changeStrategy()
		case 0:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *app) generationMenu(u scheduler.Unit) error {
	for {
		divider(40)
		fmt.Println("Number Generation")
		divider(40)
		fmt.Printf("Current Strategy: %s\n", a.state.Strategy())
		fmt.Println("1. Generate Single Set")
		fmt.Println("2. Generate Multiple Sets")
		fmt.Println("3. Change Strategy")
		fmt.Println("0. Back")
		divider(40)

		choice, err := a.choice(3, true)
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			a.generateSingle(u)
		case 2:
			if err := a.generateMultiple(u); err != nil {
				return err
			}
		case 3:
			if err := a.changeStrategy(); err != nil {
				return err
			}
		case 0:
			return nil
		}
	}
}

func (a *app) systemMenu() error {
	for {
		divider(50)
		fmt.Println("System Configuration")
		divider(50)
		fmt.Println("1. Update Lottery Data from API")
		fmt.Println("2. Check for Missing Data")
		fmt.Println("0. Back to Main Menu")
		divider(50)

		choice, err := a.choice(2, true)
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			if err := a.updateFromAPI(); err != nil {
				return err
			}
		case 2:
			if err := a.checkMissingData(); err != nil {
				return err
			}
		case 0:
			return nil
		}
	}
}

func (a *app) generateSingle(u scheduler.Unit) {
	name := a.state.Strategy()
	fmt.Printf("\nGenerating numbers using %s strategy...\n", name)

	snap := a.snapshot(u)
	s := a.strategies.Get(name)
	t := s.Generate(snap, u.Game.Config())

	fmt.Println("\nYour Lucky Numbers:")
	fmt.Println(report.FormatTicketSets([]model.TicketSet{t}))
	a.recordSuggestion(u, s.Name(), t)
}

func (a *app) generateMultiple(u scheduler.Unit) error {
	max := a.cfg.Generator.MaxSets
	count, err := a.promptInt(fmt.Sprintf("\nHow many sets would you like (1-%d)? ", max), 1, max)
	if err != nil {
		return err
	}

	name := a.state.Strategy()
	fmt.Printf("\nGenerating %d sets using %s strategy...\n", count, name)

	snap := a.snapshot(u)
	s := a.strategies.Get(name)
	sets := strategy.GenerateSets(s, snap, u.Game.Config(), count)

	fmt.Printf("\nYour %d Lucky Number Sets:\n", len(sets))
	divider(40)
	fmt.Println(report.FormatTicketSets(sets))
	divider(40)
	for _, t := range sets {
		a.recordSuggestion(u, s.Name(), t)
	}
	return nil
}

func (a *app) changeStrategy() error {
	divider(40)
	fmt.Println("Strategy Selection")
	divider(40)
	names := a.strategies.Names()
	for i, n := range names {
		fmt.Printf("%d. %s\n", i+1, title(n))
	}
	fmt.Println("0. Back")
	divider(40)

	choice, err := a.choice(len(names), true)
	if err != nil {
		return err
	}
	if choice == 0 {
		return nil
	}
	name := names[choice-1]
	if err := a.state.SetStrategy(name); err != nil {
		fmt.Printf("Error saving strategy: %v\n", err)
		return nil
	}
	fmt.Printf("Strategy changed to %s\n", name)
	return nil
}

func (a *app) showLatestDraw(u scheduler.Unit) {
	snap := a.snapshot(u)
	fmt.Println("\n" + report.FormatLatestDraw(u.Game.Name(), snap))
}

func (a *app) showStatistics(u scheduler.Unit) {
	snap := a.snapshot(u)
	if snap == nil {
		fmt.Println("\nNo statistics available")
		return
	}
	fmt.Println("\n" + report.FormatSummary(u.Game.Name(), snap))
}

// updateStatistics recomputes the statistics file from the local history.
func (a *app) updateStatistics(u scheduler.Unit) {
	snap := a.snapshot(u)
	if snap == nil {
		fmt.Println("\nNo local draw data; fetch from API first")
		return
	}
	if err := u.Stats.Write(snap); err != nil {
		fmt.Printf("Error writing statistics: %v\n", err)
		return
	}
	fmt.Printf("\nStatistics updated: %s\n", u.Stats.Path())
}

// updateFromAPI checks every game for new draws and prompts per game.
func (a *app) updateFromAPI() error {
	fmt.Println("\nChecking for new lottery data from API...")

	for _, u := range a.units {
		local, err := u.Store.Load()
		if err != nil {
			fmt.Printf("%s: error loading local data: %v\n", u.Game.Name(), err)
			continue
		}

		if len(local) == 0 {
			fmt.Printf("\n%s: no local data found (initial fetch needed)\n", u.Game.Name())
			ok, err := a.confirm(fmt.Sprintf("Fetch all historical data for %s? (Y/N): ", u.Game.Name()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("Skipping %s\n", u.Game.Name())
				continue
			}
			a.initialFetch(u)
			continue
		}

		newCount, err := u.Reconciler.CheckForNewDraws(a.ctx, local)
		if err != nil {
			fmt.Printf("%s: error checking for updates: %v\n", u.Game.Name(), err)
			continue
		}
		if newCount == 0 {
			fmt.Printf("%s: up to date\n", u.Game.Name())
			continue
		}

		fmt.Printf("\n%s: %d new draw(s) available\n", u.Game.Name(), newCount)
		ok, err := a.confirm(fmt.Sprintf("Update %s? (Y/N): ", u.Game.Name()))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("Skipping %s\n", u.Game.Name())
			continue
		}
		a.applyUpdate(u, local)
	}

	fmt.Println("\nAPI update process completed")
	return nil
}

func (a *app) initialFetch(u scheduler.Unit) {
	fmt.Printf("Fetching all historical data for %s...\n", u.Game.Name())
	merged, err := u.Reconciler.FetchFromAPI(a.ctx)
	if err != nil {
		fmt.Printf("Error fetching %s: %v\n", u.Game.Name(), err)
		return
	}
	a.recomputeStats(u, merged)
	fmt.Printf("%s: fetched %d draw(s)\n", u.Game.Name(), len(merged))
	a.recordUpdate(u, "INITIAL", len(merged), "")
	a.markChecked(u, true, len(merged))
}

func (a *app) applyUpdate(u scheduler.Unit, local []model.Draw) {
	merged, added, err := u.Reconciler.UpdateFromAPI(a.ctx, local)
	if err != nil {
		fmt.Printf("Error updating %s: %v\n", u.Game.Name(), err)
		return
	}
	a.recomputeStats(u, merged)
	fmt.Printf("%s: updated with %d new draw(s)\n", u.Game.Name(), added)
	a.recordUpdate(u, "MANUAL", added, "")
	a.markChecked(u, added > 0, len(merged))
}

// checkMissingData audits per-year counts against the API and offers repair.
func (a *app) checkMissingData() error {
	quick, err := a.confirm("\nQuick check (last 3 years only)? (Y/N): ")
	if err != nil {
		return err
	}

	fmt.Println("\nChecking data integrity (comparing with API)...")
	if !quick {
		fmt.Println("This may take a minute as we check each year...")
	}

	for _, u := range a.units {
		local, err := u.Store.Load()
		if err != nil {
			fmt.Printf("%s: error loading local data: %v\n", u.Game.Name(), err)
			continue
		}

		fmt.Printf("\nChecking %s...\n", u.Game.Name())
		issues, err := u.Reconciler.CheckForMissingYears(a.ctx, local, quick)
		if err != nil {
			fmt.Printf("%s: error checking: %v\n", u.Game.Name(), err)
			continue
		}
		if len(issues) == 0 {
			fmt.Printf("%s: complete data (all draws match API)\n", u.Game.Name())
			continue
		}

		fmt.Printf("%s: found issues in %d year(s)\n", u.Game.Name(), len(issues))
		fmt.Println(report.FormatYearIssues(issues))

		ranges := report.FormatYearRanges(issues)
		ok, err := a.confirm(fmt.Sprintf("Refetch data for %s (%s)? (Y/N): ", u.Game.Name(), ranges))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("Skipping %s\n", u.Game.Name())
			continue
		}

		fmt.Printf("Refetching data for %s...\n", u.Game.Name())
		merged, fetched, err := u.Reconciler.FetchMissingYears(a.ctx, local, issues)
		if err != nil {
			fmt.Printf("Error fetching data for %s: %v\n", u.Game.Name(), err)
			continue
		}
		a.recomputeStats(u, merged)
		fmt.Printf("%s: data refreshed, fetched %d draw(s)\n", u.Game.Name(), fetched)
		a.recordUpdate(u, "REPAIR", fetched, ranges)
		a.markChecked(u, true, len(merged))
	}

	fmt.Println("\nData integrity check completed")
	return nil
}

// snapshot loads the local history and computes fresh statistics; nil when
// there is no usable local data.
func (a *app) snapshot(u scheduler.Unit) *model.StatsSnapshot {
	draws, err := u.Store.Load()
	if err != nil {
		fmt.Printf("Error loading draw data: %v\n", err)
		return nil
	}
	if len(draws) == 0 {
		return nil
	}
	return stats.Compute(draws, u.Game.Config())
}

func (a *app) recomputeStats(u scheduler.Unit, draws []model.Draw) {
	snap := stats.Compute(draws, u.Game.Config())
	if err := u.Stats.Write(snap); err != nil {
		fmt.Printf("Error writing statistics: %v\n", err)
	}
}

func (a *app) recordSuggestion(u scheduler.Unit, strategyName string, t model.TicketSet) {
	parts := make([]string, len(t.Numbers))
	for i, n := range t.Numbers {
		parts[i] = strconv.Itoa(n)
	}
	if err := a.recorder.RecordSuggestion(&recorder.SuggestionEvent{
		Game:     u.Game.Slug(),
		Strategy: strategyName,
		Numbers:  strings.Join(parts, "-"),
		Bonus:    t.Bonus,
	}); err != nil {
		fmt.Printf("Error recording suggestion: %v\n", err)
	}
}

func (a *app) recordUpdate(u scheduler.Unit, trigger string, added int, years string) {
	if err := a.recorder.RecordUpdate(&recorder.UpdateEvent{
		Game:       u.Game.Slug(),
		Trigger:    trigger,
		DrawsAdded: added,
		Years:      years,
	}); err != nil {
		fmt.Printf("Error recording update: %v\n", err)
	}
}

func (a *app) markChecked(u scheduler.Unit, updated bool, knownDraws int) {
	if err := a.state.MarkChecked(u.Game.Slug(), updated, knownDraws); err != nil {
		fmt.Printf("Error saving state: %v\n", err)
	}
}

// choice reads a validated menu selection; ":qa" quits from anywhere.
func (a *app) choice(max int, allowZero bool) (int, error) {
	min := 1
	if allowZero {
		min = 0
	}
	for {
		fmt.Printf("\nEnter your choice (%d-%d): ", min, max)
		line, err := a.readLine()
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < min || n > max {
			fmt.Printf("Please enter a number between %d and %d, or ':qa' to quit\n", min, max)
			continue
		}
		return n, nil
	}
}

func (a *app) promptInt(prompt string, min, max int) (int, error) {
	for {
		fmt.Print(prompt)
		line, err := a.readLine()
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < min || n > max {
			fmt.Printf("Please enter a number between %d and %d\n", min, max)
			continue
		}
		return n, nil
	}
}

func (a *app) confirm(prompt string) (bool, error) {
	for {
		fmt.Print(prompt)
		line, err := a.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToUpper(line) {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		}
		fmt.Println("Please enter Y or N")
	}
}

// readLine returns the next trimmed stdin line. Returns errQuit on ":qa" and
// on EOF so menus unwind cleanly.
func (a *app) readLine() (string, error) {
	if !a.in.Scan() {
		return "", errQuit
	}
	line := strings.TrimSpace(a.in.Text())
	if strings.EqualFold(line, ":qa") {
		fmt.Println("Exiting... Goodbye!")
		return "", errQuit
	}
	return line, nil
}

func divider(n int) {
	fmt.Println(strings.Repeat("=", n))
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
