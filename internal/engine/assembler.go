package engine

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"mwi-alchemist/internal/market"
)

// ErrIncompleteRecipe marks a recipe skeleton that cannot be estimated:
// no success rate or no time cost. Downstream this is the "no data"
// display state, not an error.
var ErrIncompleteRecipe = errors.New("recipe missing success rate or time cost")

// Assembler turns a recipe skeleton into a fully price-resolved snapshot.
type Assembler struct {
	resolver *market.Resolver
}

// NewAssembler creates an assembler over the given price resolver.
func NewAssembler(resolver *market.Resolver) *Assembler {
	return &Assembler{resolver: resolver}
}

// Assemble resolves every leg of the recipe concurrently and returns an
// immutable snapshot ready for EstimateProfit. Requirements resolve under
// the blocking material policy; drops, the catalyst and consumables resolve
// under the non-blocking output policy, so a missing quote there defaults
// instead of aborting the whole computation.
func (a *Assembler) Assemble(ctx context.Context, def RecipeDef, efficiency float64) (RecipeSnapshot, error) {
	if def.SuccessRate <= 0 || def.SuccessRate > 1 || def.TimeCost <= 0 {
		return RecipeSnapshot{}, ErrIncompleteRecipe
	}

	snap := RecipeSnapshot{
		SuccessRate:  def.SuccessRate,
		TimeCost:     def.TimeCost,
		Efficiency:   efficiency,
		Requirements: make([]ResolvedItem, len(def.Requirements)),
		Drops:        make([]ResolvedItem, len(def.Drops)),
		Consumables:  make([]ResolvedItem, len(def.Consumables)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, line := range def.Requirements {
		i, line := i, line
		g.Go(func() error {
			snap.Requirements[i] = a.resolveLine(gctx, line, true)
			return nil
		})
	}
	for i, line := range def.Drops {
		i, line := i, line
		g.Go(func() error {
			snap.Drops[i] = a.resolveLine(gctx, line, false)
			return nil
		})
	}
	for i, line := range def.Consumables {
		i, line := i, line
		g.Go(func() error {
			snap.Consumables[i] = a.resolveLine(gctx, line, false)
			return nil
		})
	}
	g.Go(func() error {
		if def.Catalyst == "" {
			// Catalyst-free recipes behave as if the catalyst were free.
			snap.Catalyst = ResolvedItem{Ask: market.Known(0), Bid: market.Known(0)}
			return nil
		}
		snap.Catalyst = a.resolveLine(gctx, RecipeLine{ItemHrid: def.Catalyst}, false)
		return nil
	})
	g.Wait()

	return snap, nil
}

func (a *Assembler) resolveLine(ctx context.Context, line RecipeLine, material bool) ResolvedItem {
	q := a.resolver.ResolvePrice(ctx, line.ItemHrid, line.EnhancementLevel, material)
	count := line.Count
	if count == 0 {
		count = 1
	}
	rate := line.DropRate
	if rate == 0 {
		rate = 1
	}
	return ResolvedItem{
		ItemHrid:         line.ItemHrid,
		EnhancementLevel: line.EnhancementLevel,
		Ask:              q.Ask,
		Bid:              q.Bid,
		Count:            count,
		DropRate:         rate,
	}
}
