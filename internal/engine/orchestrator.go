package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Estimate is one computed profit figure. HasData is false when some leg
// lacked a quotable price — a display state, not an error.
type Estimate struct {
	Value   int64
	HasData bool
}

// SnapshotSource supplies a fully resolved recipe snapshot on demand.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (RecipeSnapshot, error)
}

// Display is the sink for every update cycle's outcome: the two profit
// figures, or one of the waiting / no-data / error states.
type Display interface {
	ShowWaiting()
	ShowNoData()
	ShowError(err error)
	ShowEstimates(pessimistic, optimistic Estimate)
}

// Orchestrator debounces change signals and drives the estimate cycle:
// gather a snapshot, estimate both modes, report to the display. Bursts of
// signals collapse into a single recomputation.
type Orchestrator struct {
	ctx      context.Context
	source   SnapshotSource
	display  Display
	ready    func() bool
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewOrchestrator wires an orchestrator. ready gates the cycle on provider
// availability; while it returns false every cycle reports the waiting state.
func NewOrchestrator(ctx context.Context, source SnapshotSource, display Display, ready func() bool, debounce time.Duration) *Orchestrator {
	return &Orchestrator{
		ctx:      ctx,
		source:   source,
		display:  display,
		ready:    ready,
		debounce: debounce,
	}
}

// Signal schedules a recomputation. Each call resets the pending timer, so
// only the last signal of a burst fires.
func (o *Orchestrator) Signal() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.timer != nil {
		o.timer.Stop()
	}
	o.timer = time.AfterFunc(o.debounce, o.refresh)
}

// Stop cancels any pending recomputation.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

// refresh runs one update cycle. Nothing here may crash the cycle or leave
// the display stuck in a stale state: panics surface as the error state.
func (o *Orchestrator) refresh() {
	defer func() {
		if r := recover(); r != nil {
			o.display.ShowError(fmt.Errorf("update cycle: %v", r))
		}
	}()

	if !o.ready() {
		o.display.ShowWaiting()
		return
	}

	snap, err := o.source.Snapshot(o.ctx)
	switch {
	case errors.Is(err, ErrIncompleteRecipe):
		o.display.ShowNoData()
	case err != nil:
		o.display.ShowError(err)
	default:
		pessimistic := newEstimate(EstimateProfit(snap, false))
		optimistic := newEstimate(EstimateProfit(snap, true))
		o.display.ShowEstimates(pessimistic, optimistic)
	}
}

func newEstimate(value int64, ok bool) Estimate {
	return Estimate{Value: value, HasData: ok}
}
