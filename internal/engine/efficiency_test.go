package engine

import "testing"

func TestEfficiencyBonus_LevelOverage(t *testing.T) {
	if got := EfficiencyBonus(75, 60, nil); got != 0.15 {
		t.Errorf("bonus = %v, want 0.15 for 15 levels over", got)
	}
	if got := EfficiencyBonus(40, 60, nil); got != 0 {
		t.Errorf("bonus = %v, want 0 below recipe level", got)
	}
}

func TestEfficiencyBonus_SumsEfficiencyBuffsOnly(t *testing.T) {
	buffs := []Buff{
		{TypeHrid: EfficiencyBuffType, FlatBoost: 0.1},
		{TypeHrid: EfficiencyBuffType, FlatBoost: 0.05},
		{TypeHrid: "/buff_types/action_speed", FlatBoost: 0.3},
	}
	got := EfficiencyBonus(50, 50, buffs)
	if got < 0.1499 || got > 0.1501 {
		t.Errorf("bonus = %v, want 0.15", got)
	}
}

func TestEfficiencyBonus_BuffsAndLevelsStack(t *testing.T) {
	buffs := []Buff{{TypeHrid: EfficiencyBuffType, FlatBoost: 0.1}}
	got := EfficiencyBonus(70, 60, buffs)
	if got < 0.1999 || got > 0.2001 {
		t.Errorf("bonus = %v, want 0.2", got)
	}
}
