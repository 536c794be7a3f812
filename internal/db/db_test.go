package db

import (
	"database/sql"
	"testing"

	"mwi-alchemist/internal/engine"

	_ "modernc.org/sqlite"
)

// openTestDB opens an in-memory SQLite DB and runs migrations (for testing only).
func openTestDB(t *testing.T) *DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		t.Fatalf("migrate: %v", err)
	}
	return d
}

func TestDB_ConfigRoundTrip(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	cfg := d.LoadConfig()
	if cfg.CacheTTLSeconds != 300 {
		t.Fatalf("empty store should yield defaults, CacheTTLSeconds = %d", cfg.CacheTTLSeconds)
	}

	cfg.WatchAction = "/actions/alchemy/transmute"
	cfg.FetchBatchSize = 4
	cfg.DebounceMS = 500
	if err := d.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got := d.LoadConfig()
	if got.WatchAction != "/actions/alchemy/transmute" {
		t.Errorf("WatchAction = %q, want /actions/alchemy/transmute", got.WatchAction)
	}
	if got.FetchBatchSize != 4 {
		t.Errorf("FetchBatchSize = %d, want 4", got.FetchBatchSize)
	}
	if got.DebounceMS != 500 {
		t.Errorf("DebounceMS = %d, want 500", got.DebounceMS)
	}
	// Untouched keys keep their defaults.
	if got.FetchTimeoutMS != 5000 {
		t.Errorf("FetchTimeoutMS = %d, want default 5000", got.FetchTimeoutMS)
	}
}

func TestDB_RecipeRoundTrip(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	def := engine.RecipeDef{
		ActionHrid:  "/actions/alchemy/transmute_amber",
		Level:       42,
		SuccessRate: 0.65,
		TimeCost:    18,
		Requirements: []engine.RecipeLine{
			{ItemHrid: "/items/amber", Count: 2},
			{ItemHrid: "/items/alchemists_bottoms", EnhancementLevel: 1, Count: 1},
		},
		Drops: []engine.RecipeLine{
			{ItemHrid: "/items/polished_amber", Count: 1, DropRate: 0.5},
		},
		Catalyst:    "/items/catalyst_of_transmutation",
		Consumables: []engine.RecipeLine{{ItemHrid: "/items/alchemy_tea"}},
	}
	if err := d.UpsertRecipe(def); err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}

	got, err := d.GetRecipe(def.ActionHrid)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got == nil {
		t.Fatal("GetRecipe returned nil for a stored recipe")
	}
	if got.SuccessRate != 0.65 || got.TimeCost != 18 || got.Level != 42 {
		t.Errorf("scalars = %v/%v/%d, want 0.65/18/42", got.SuccessRate, got.TimeCost, got.Level)
	}
	if len(got.Requirements) != 2 || got.Requirements[1].EnhancementLevel != 1 {
		t.Errorf("requirements = %+v, want 2 lines with enhancement preserved", got.Requirements)
	}
	if len(got.Drops) != 1 || got.Drops[0].DropRate != 0.5 {
		t.Errorf("drops = %+v, want drop rate 0.5", got.Drops)
	}
	if got.Catalyst != def.Catalyst {
		t.Errorf("catalyst = %q, want %q", got.Catalyst, def.Catalyst)
	}
}

func TestDB_GetRecipeNotFound(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	got, err := d.GetRecipe("/actions/alchemy/unknown")
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got != nil {
		t.Fatalf("GetRecipe = %+v, want nil for missing recipe", got)
	}
}

func TestDB_UpsertReplacesAndListOrders(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	a := engine.RecipeDef{ActionHrid: "/actions/alchemy/b_recipe", SuccessRate: 0.5, TimeCost: 10}
	b := engine.RecipeDef{ActionHrid: "/actions/alchemy/a_recipe", SuccessRate: 0.7, TimeCost: 12}
	for _, def := range []engine.RecipeDef{a, b} {
		if err := d.UpsertRecipe(def); err != nil {
			t.Fatalf("UpsertRecipe: %v", err)
		}
	}

	a.SuccessRate = 0.9
	if err := d.UpsertRecipe(a); err != nil {
		t.Fatalf("UpsertRecipe replace: %v", err)
	}

	defs, err := d.ListRecipes()
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("ListRecipes len = %d, want 2", len(defs))
	}
	if defs[0].ActionHrid != "/actions/alchemy/a_recipe" {
		t.Errorf("first recipe = %s, want ordered by hrid", defs[0].ActionHrid)
	}
	if defs[1].SuccessRate != 0.9 {
		t.Errorf("replaced SuccessRate = %v, want 0.9", defs[1].SuccessRate)
	}

	if err := d.DeleteRecipe(a.ActionHrid); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	defs, _ = d.ListRecipes()
	if len(defs) != 1 {
		t.Errorf("after delete len = %d, want 1", len(defs))
	}
}
