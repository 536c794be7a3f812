package engine

import (
	"math"

	"mwi-alchemist/internal/market"
)

const (
	// marketFeeRate is deducted from every non-coin drop payout.
	marketFeeRate = 0.02
	// consumableDuration is the window, in seconds, one set of consumables
	// lasts; their cost is amortized over it rather than per attempt.
	consumableDuration = 300.0

	secondsPerDay = 86400
)

// EstimateProfit computes the expected daily profit of a crafting action.
//
// Optimistic mode assumes the actor transacts at the favorable side of
// every book: materials, catalyst and consumables bought at the bid, drops
// sold at the ask. Pessimistic mode is the mirror, modeling an actor who
// must cross the live spread on both legs.
//
// ok is false when any leg's selected price is unresolved — a profit
// figure is only meaningful when every leg has a quotable price.
func EstimateProfit(s RecipeSnapshot, optimistic bool) (profit int64, ok bool) {
	if hasUnresolvedPrices(s, optimistic) {
		return 0, false
	}

	requirementsCost := 0.0
	for _, req := range s.Requirements {
		requirementsCost += req.buyPrice(optimistic).Value() * float64(req.Count)
	}

	// Materials are lost on failure; the catalyst only burns on success.
	catalystPrice := s.Catalyst.buyPrice(optimistic).Value()
	costPerAttempt := requirementsCost*(1-s.SuccessRate) +
		(requirementsCost+catalystPrice)*s.SuccessRate

	incomePerAttempt := 0.0
	for _, drop := range s.Drops {
		income := drop.sellPrice(optimistic).Value() * drop.DropRate * float64(drop.Count) * s.SuccessRate
		if drop.ItemHrid != market.CoinHrid {
			income *= 1 - marketFeeRate
		}
		incomePerAttempt += income
	}

	drinkCost := 0.0
	for _, c := range s.Consumables {
		drinkCost += c.buyPrice(optimistic).Value()
	}

	netPerAttempt := incomePerAttempt - costPerAttempt
	perSecond := netPerAttempt*(1+s.Efficiency)/s.TimeCost - drinkCost/consumableDuration

	return int64(math.Round(perSecond * secondsPerDay)), true
}

// hasUnresolvedPrices reports whether any leg's selected price is missing.
func hasUnresolvedPrices(s RecipeSnapshot, optimistic bool) bool {
	for _, req := range s.Requirements {
		if !req.buyPrice(optimistic).Known() {
			return true
		}
	}
	for _, drop := range s.Drops {
		if !drop.sellPrice(optimistic).Known() {
			return true
		}
	}
	for _, c := range s.Consumables {
		if !c.buyPrice(optimistic).Known() {
			return true
		}
	}
	return !s.Catalyst.buyPrice(optimistic).Known()
}
