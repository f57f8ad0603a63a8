package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Set represents one repetition group within a workout exercise
type Set struct {
	ID     int64   `json:"id"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// WorkoutExercise is the join between a workout and a catalog exercise,
// carrying that exercise's sets for the session. Exercise is nil if the
// referenced catalog row no longer exists.
type WorkoutExercise struct {
	ID         int64     `json:"id"`
	ExerciseID int64     `json:"exercise_id"`
	Exercise   *Exercise `json:"exercise"`
	Sets       []*Set    `json:"sets"`
}

// Workout represents one logged training session
type Workout struct {
	ID        int64              `json:"id"`
	Date      string             `json:"date"`
	Exercises []*WorkoutExercise `json:"exercises"`
}

// WorkoutEntry is the write-side shape for one exercise within a new workout
type WorkoutEntry struct {
	ExerciseID int64      `json:"exercise_id"`
	Sets       []SetInput `json:"sets"`
}

// SetInput is the write-side shape for one set
type SetInput struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// CreateWorkout inserts a workout with its exercises and sets in one
// transaction, preserving the caller's entry and set order. The date is
// stamped server-side. If any insert fails (including a foreign key
// violation on exercise_id) the whole workout is rolled back.
// Returns the hydrated workout for the new ID.
func (db *DB) CreateWorkout(entries []WorkoutEntry) (*Workout, error) {
	date := time.Now().UTC().Format(time.RFC3339)
	var workoutID int64

	err := db.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`INSERT INTO workouts (date) VALUES (?)`, date)
		if err != nil {
			return fmt.Errorf("failed to create workout: %w", err)
		}
		workoutID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}

		for _, entry := range entries {
			result, err := tx.Exec(`INSERT INTO workout_exercises (workout_id, exercise_id) VALUES (?, ?)`,
				workoutID, entry.ExerciseID)
			if err != nil {
				return fmt.Errorf("failed to create workout exercise: %w", err)
			}
			workoutExerciseID, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to get last insert id: %w", err)
			}

			for _, set := range entry.Sets {
				if _, err := tx.Exec(`INSERT INTO workout_sets (workout_exercise_id, reps, weight) VALUES (?, ?, ?)`,
					workoutExerciseID, set.Reps, set.Weight); err != nil {
					return fmt.Errorf("failed to create set: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return db.GetWorkout(workoutID)
}

// GetWorkout retrieves a fully hydrated workout by ID, returning nil if it
// does not exist
func (db *DB) GetWorkout(id int64) (*Workout, error) {
	workout := &Workout{}
	err := db.QueryRow(`SELECT id, date FROM workouts WHERE id = ?`, id).
		Scan(&workout.ID, &workout.Date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}

	if err := db.hydrateWorkout(workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// ListWorkouts returns all workouts, fully hydrated, oldest first
func (db *DB) ListWorkouts() ([]*Workout, error) {
	rows, err := db.Query(`SELECT id, date FROM workouts ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*Workout
	for rows.Next() {
		workout := &Workout{}
		if err := rows.Scan(&workout.ID, &workout.Date); err != nil {
			return nil, fmt.Errorf("failed to scan workout row: %w", err)
		}
		workouts = append(workouts, workout)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Hydrate after the workout cursor is drained so the nested queries
	// don't hold a second open result set
	for _, workout := range workouts {
		if err := db.hydrateWorkout(workout); err != nil {
			return nil, err
		}
	}

	return workouts, nil
}

// hydrateWorkout fills a workout's exercise entries and their sets, ordered
// by row id. The catalog lookup is a LEFT JOIN so a dangling exercise
// reference hydrates with a nil Exercise instead of failing.
func (db *DB) hydrateWorkout(workout *Workout) error {
	rows, err := db.Query(`
		SELECT we.id, we.exercise_id, e.name, e.category
		FROM workout_exercises we
		LEFT JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id = ?
		ORDER BY we.id ASC
	`, workout.ID)
	if err != nil {
		return fmt.Errorf("failed to list workout exercises: %w", err)
	}
	defer rows.Close()

	workout.Exercises = []*WorkoutExercise{}
	for rows.Next() {
		we := &WorkoutExercise{}
		var name, category sql.NullString
		if err := rows.Scan(&we.ID, &we.ExerciseID, &name, &category); err != nil {
			return fmt.Errorf("failed to scan workout exercise row: %w", err)
		}
		if name.Valid {
			we.Exercise = &Exercise{
				ID:       we.ExerciseID,
				Name:     nullStringValue(name),
				Category: nullStringValue(category),
			}
		}
		workout.Exercises = append(workout.Exercises, we)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, we := range workout.Exercises {
		if err := db.hydrateSets(we); err != nil {
			return err
		}
	}

	return nil
}

// hydrateSets fills a workout exercise's sets ordered by row id
func (db *DB) hydrateSets(we *WorkoutExercise) error {
	rows, err := db.Query(`
		SELECT id, reps, weight FROM workout_sets
		WHERE workout_exercise_id = ?
		ORDER BY id ASC
	`, we.ID)
	if err != nil {
		return fmt.Errorf("failed to list sets: %w", err)
	}
	defer rows.Close()

	we.Sets = []*Set{}
	for rows.Next() {
		set := &Set{}
		if err := rows.Scan(&set.ID, &set.Reps, &set.Weight); err != nil {
			return fmt.Errorf("failed to scan set row: %w", err)
		}
		we.Sets = append(we.Sets, set)
	}

	return rows.Err()
}
