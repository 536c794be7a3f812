package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mwi-alchemist/internal/engine"
)

// UpsertRecipe stores or replaces a recipe skeleton.
func (d *DB) UpsertRecipe(def engine.RecipeDef) error {
	reqs, err := json.Marshal(def.Requirements)
	if err != nil {
		return fmt.Errorf("marshal requirements: %w", err)
	}
	drops, err := json.Marshal(def.Drops)
	if err != nil {
		return fmt.Errorf("marshal drops: %w", err)
	}
	consumables, err := json.Marshal(def.Consumables)
	if err != nil {
		return fmt.Errorf("marshal consumables: %w", err)
	}

	_, err = d.sql.Exec(`
		INSERT OR REPLACE INTO recipes
			(action_hrid, level, success_rate, time_cost, requirements, drops, catalyst, consumables, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		def.ActionHrid, def.Level, def.SuccessRate, def.TimeCost,
		string(reqs), string(drops), def.Catalyst, string(consumables),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetRecipe loads one recipe skeleton by action hrid.
// Not found is not an error: it returns (nil, nil).
func (d *DB) GetRecipe(actionHrid string) (*engine.RecipeDef, error) {
	row := d.sql.QueryRow(`
		SELECT action_hrid, level, success_rate, time_cost, requirements, drops, catalyst, consumables
		FROM recipes WHERE action_hrid = ?`, actionHrid)

	def, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return def, nil
}

// ListRecipes returns every stored recipe skeleton, ordered by action hrid.
func (d *DB) ListRecipes() ([]engine.RecipeDef, error) {
	rows, err := d.sql.Query(`
		SELECT action_hrid, level, success_rate, time_cost, requirements, drops, catalyst, consumables
		FROM recipes ORDER BY action_hrid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []engine.RecipeDef
	for rows.Next() {
		def, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	return defs, rows.Err()
}

// DeleteRecipe removes a recipe skeleton.
func (d *DB) DeleteRecipe(actionHrid string) error {
	_, err := d.sql.Exec("DELETE FROM recipes WHERE action_hrid = ?", actionHrid)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*engine.RecipeDef, error) {
	var def engine.RecipeDef
	var reqs, drops, consumables string
	if err := row.Scan(&def.ActionHrid, &def.Level, &def.SuccessRate, &def.TimeCost,
		&reqs, &drops, &def.Catalyst, &consumables); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(reqs), &def.Requirements); err != nil {
		return nil, fmt.Errorf("unmarshal requirements: %w", err)
	}
	if err := json.Unmarshal([]byte(drops), &def.Drops); err != nil {
		return nil, fmt.Errorf("unmarshal drops: %w", err)
	}
	if err := json.Unmarshal([]byte(consumables), &def.Consumables); err != nil {
		return nil, fmt.Errorf("unmarshal consumables: %w", err)
	}
	return &def, nil
}
