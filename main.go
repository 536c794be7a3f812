package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mwi-alchemist/internal/db"
	"mwi-alchemist/internal/engine"
	"mwi-alchemist/internal/logger"
	"mwi-alchemist/internal/market"
	"mwi-alchemist/internal/mwapi"
)

var version = "dev"

func main() {
	action := flag.String("action", "", "action hrid to watch (overrides stored config)")
	skill := flag.Int("skill", 0, "character skill level for efficiency (0 = recipe level)")
	flag.Parse()

	logger.Banner(version)

	database, err := db.Open()
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	cfg := database.LoadConfig()
	if *action != "" {
		cfg.WatchAction = *action
		if err := database.SaveConfig(cfg); err != nil {
			logger.Warn("DB", fmt.Sprintf("Failed to persist config: %v", err))
		}
	}
	if cfg.WatchAction == "" {
		logger.Error("CFG", "No action to watch; pass -action or store one in config")
		os.Exit(1)
	}
	logger.Info("CFG", "Watching "+cfg.WatchAction)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := mwapi.NewClient(cfg.GameWSURL)
	client.Connect(ctx)
	defer client.Disconnect()

	cache := market.NewCache(
		time.Duration(cfg.CacheTTLSeconds)*time.Second,
		time.Duration(cfg.SweepIntervalSec)*time.Second,
	)
	cache.Start(ctx)

	coalescer := market.NewCoalescer(
		cache, client,
		cfg.FetchBatchSize,
		time.Duration(cfg.BatchPauseMS)*time.Millisecond,
		time.Duration(cfg.FetchTimeoutMS)*time.Millisecond,
	)
	defer coalescer.Close()

	resolver := market.NewResolver(cache, coalescer)
	assembler := engine.NewAssembler(resolver)

	source := &recipeSource{
		db:         database,
		assembler:  assembler,
		actionHrid: cfg.WatchAction,
		skillLevel: *skill,
	}
	display := &consoleDisplay{}

	orch := engine.NewOrchestrator(ctx, source, display, client.Ready, time.Duration(cfg.DebounceMS)*time.Millisecond)
	defer orch.Stop()

	// Every pushed snapshot both refreshes the cache and nudges the
	// estimate cycle; finished actions nudge it too.
	client.OnOrderBookUpdate(func(itemHrid string, books market.OrderBooks) {
		cache.Put(itemHrid, books)
		orch.Signal()
	})
	client.OnActionCompleted(orch.Signal)

	go func() {
		attempts := cfg.ReadyAttempts
		interval := time.Duration(cfg.ReadyIntervalSec) * time.Second
		if !client.WaitReady(ctx, attempts, interval) {
			if ctx.Err() == nil {
				logger.Error("game", fmt.Sprintf("Server unreachable after %d attempts", attempts))
			}
			return
		}
		orch.Signal()
	}()

	ticker := time.NewTicker(time.Duration(cfg.RefreshIntervalSec) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("main", "Shutting down")
			return
		case <-ticker.C:
			orch.Signal()
		}
	}
}

// recipeSource assembles the watched recipe from stored definitions and
// live market prices.
type recipeSource struct {
	db         *db.DB
	assembler  *engine.Assembler
	actionHrid string
	skillLevel int
}

func (s *recipeSource) Snapshot(ctx context.Context) (engine.RecipeSnapshot, error) {
	def, err := s.db.GetRecipe(s.actionHrid)
	if err != nil {
		return engine.RecipeSnapshot{}, fmt.Errorf("load recipe %s: %w", s.actionHrid, err)
	}
	if def == nil {
		return engine.RecipeSnapshot{}, fmt.Errorf("recipe %s: %w", s.actionHrid, engine.ErrIncompleteRecipe)
	}

	level := s.skillLevel
	if level == 0 {
		level = def.Level
	}
	efficiency := engine.EfficiencyBonus(level, def.Level, nil)

	return s.assembler.Assemble(ctx, *def, efficiency)
}

// consoleDisplay renders cycle outcomes on the terminal.
type consoleDisplay struct{}

func (consoleDisplay) ShowWaiting() {
	logger.Info("profit", "Waiting for market data...")
}

func (consoleDisplay) ShowNoData() {
	logger.Warn("profit", "No recipe data")
}

func (consoleDisplay) ShowError(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	logger.Error("profit", err.Error())
}

func (consoleDisplay) ShowEstimates(pessimistic, optimistic engine.Estimate) {
	logger.Stats("Profit/day (pessimistic)", formatEstimate(pessimistic))
	logger.Stats("Profit/day (optimistic)", formatEstimate(optimistic))
}

func formatEstimate(e engine.Estimate) string {
	if !e.HasData {
		return "no data"
	}
	return engine.FormatProfit(e.Value)
}
