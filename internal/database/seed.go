package database

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// starterExercises is the fixed catalog inserted on first run.
var starterExercises = []struct {
	Name     string
	Category string
}{
	{"Bench Press", "Chest"},
	{"Squat", "Legs"},
	{"Deadlift", "Back"},
	{"Overhead Press", "Shoulders"},
}

// SeedExercises inserts the starter exercise catalog if the catalog is empty.
// Idempotent: the count check and the inserts run in the same transaction, so
// repeated startups never duplicate the starter rows.
func (db *DB) SeedExercises() error {
	return db.Transaction(func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRow("SELECT COUNT(*) FROM exercises").Scan(&count); err != nil {
			return fmt.Errorf("failed to count exercises: %w", err)
		}
		if count > 0 {
			return nil
		}

		for _, e := range starterExercises {
			if _, err := tx.Exec("INSERT INTO exercises (name, category) VALUES (?, ?)", e.Name, e.Category); err != nil {
				return fmt.Errorf("failed to seed exercise %q: %w", e.Name, err)
			}
		}

		log.Info().Int("count", len(starterExercises)).Msg("Seeded starter exercise catalog")
		return nil
	})
}
