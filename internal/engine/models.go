package engine

import "mwi-alchemist/internal/market"

// ResolvedItem is one recipe leg with market prices attached.
type ResolvedItem struct {
	ItemHrid         string
	EnhancementLevel int
	Ask              market.Price
	Bid              market.Price
	Count            int
	DropRate         float64
}

// buyPrice is the price paid for this leg under the chosen optimism mode:
// optimistic actors buy at the bid, pessimistic ones cross the spread and
// pay the ask.
func (it ResolvedItem) buyPrice(optimistic bool) market.Price {
	if optimistic {
		return it.Bid
	}
	return it.Ask
}

// sellPrice mirrors buyPrice for the income side.
func (it ResolvedItem) sellPrice(optimistic bool) market.Price {
	if optimistic {
		return it.Ask
	}
	return it.Bid
}

// RecipeSnapshot is a fully price-resolved crafting action, immutable once
// assembled and consumed exactly once by EstimateProfit.
type RecipeSnapshot struct {
	SuccessRate float64 // in (0, 1]
	TimeCost    float64 // seconds per attempt
	Efficiency  float64 // multiplicative net-profit bonus, >= 0

	Requirements []ResolvedItem // materials consumed every attempt
	Drops        []ResolvedItem // outputs, with drop rate and count
	Catalyst     ResolvedItem   // consumed only on success
	Consumables  []ResolvedItem // flat cost per consumable duration window
}

// RecipeLine is one unresolved recipe leg as stored in the recipe source.
type RecipeLine struct {
	ItemHrid         string  `json:"item_hrid"`
	EnhancementLevel int     `json:"enhancement_level,omitempty"`
	Count            int     `json:"count,omitempty"`
	DropRate         float64 `json:"drop_rate,omitempty"`
}

// RecipeDef is a recipe skeleton: everything except market prices.
type RecipeDef struct {
	ActionHrid   string
	Level        int // recipe level, for the efficiency bonus
	SuccessRate  float64
	TimeCost     float64
	Requirements []RecipeLine
	Drops        []RecipeLine
	Catalyst     string // item hrid, empty when the recipe takes none
	Consumables  []RecipeLine
}
