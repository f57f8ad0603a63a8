package database

import (
	"database/sql"
	"fmt"
)

// Exercise represents a catalog exercise
type Exercise struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ListExercises returns all catalog exercises in insertion order
func (db *DB) ListExercises() ([]*Exercise, error) {
	rows, err := db.Query(`SELECT id, name, category FROM exercises ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*Exercise
	for rows.Next() {
		e := &Exercise{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Category); err != nil {
			return nil, fmt.Errorf("failed to scan exercise row: %w", err)
		}
		exercises = append(exercises, e)
	}

	return exercises, rows.Err()
}

// GetExercise retrieves an exercise by ID, returning nil if it does not exist
func (db *DB) GetExercise(id int64) (*Exercise, error) {
	e := &Exercise{}
	err := db.QueryRow(`SELECT id, name, category FROM exercises WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Category)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	return e, nil
}

// CreateExercise inserts a new catalog exercise
func (db *DB) CreateExercise(exercise *Exercise) error {
	result, err := db.Exec(`INSERT INTO exercises (name, category) VALUES (?, ?)`,
		exercise.Name, exercise.Category)
	if err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	exercise.ID = id

	return nil
}

// UpdateExercise updates an exercise's name and category.
// Returns false if no row with the given ID exists.
func (db *DB) UpdateExercise(exercise *Exercise) (bool, error) {
	result, err := db.Exec(`UPDATE exercises SET name = ?, category = ? WHERE id = ?`,
		exercise.Name, exercise.Category, exercise.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update exercise: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// DeleteExercise removes an exercise and every workout entry that references
// it. Sets are deleted first, then the referencing workout_exercises rows,
// then the exercise itself, all in one transaction. Sibling entries of the
// same workouts that reference other exercises are left untouched.
// Returns the exercise as it existed before deletion, or nil if it did not exist.
func (db *DB) DeleteExercise(id int64) (*Exercise, error) {
	exercise, err := db.GetExercise(id)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, nil
	}

	err = db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			DELETE FROM workout_sets WHERE workout_exercise_id IN (
				SELECT id FROM workout_exercises WHERE exercise_id = ?
			)
		`, id); err != nil {
			return fmt.Errorf("failed to delete sets for exercise: %w", err)
		}

		if _, err := tx.Exec(`DELETE FROM workout_exercises WHERE exercise_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete workout entries for exercise: %w", err)
		}

		if _, err := tx.Exec(`DELETE FROM exercises WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return exercise, nil
}
