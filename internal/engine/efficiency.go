package engine

// EfficiencyBuffType is the buff type that contributes to action efficiency.
const EfficiencyBuffType = "/buff_types/efficiency"

// Buff is one active action buff as reported by the character state.
type Buff struct {
	TypeHrid  string  `json:"type_hrid"`
	FlatBoost float64 `json:"flat_boost"`
}

// EfficiencyBonus computes the multiplicative net-profit bonus for an
// action: the sum of flat efficiency buffs, plus 1% per skill level above
// the recipe's level. Levels below the recipe contribute nothing.
func EfficiencyBonus(skillLevel, recipeLevel int, buffs []Buff) float64 {
	bonus := 0.0
	for _, b := range buffs {
		if b.TypeHrid == EfficiencyBuffType {
			bonus += b.FlatBoost
		}
	}
	if over := skillLevel - recipeLevel; over > 0 {
		bonus += float64(over) / 100
	}
	return bonus
}
