package database

import (
	"database/sql"
	"fmt"
)

// WorkoutVolume is the total volume (sum of reps x weight) for one workout
type WorkoutVolume struct {
	WorkoutID int64   `json:"workout_id"`
	Date      string  `json:"date"`
	Volume    float64 `json:"volume"`
}

// ListWorkoutVolumes returns the per-workout total volume, oldest first.
// Workouts with no sets contribute zero volume.
func (db *DB) ListWorkoutVolumes() ([]*WorkoutVolume, error) {
	rows, err := db.Query(`
		SELECT w.id, w.date, SUM(ws.reps * ws.weight)
		FROM workouts w
		LEFT JOIN workout_exercises we ON we.workout_id = w.id
		LEFT JOIN workout_sets ws ON ws.workout_exercise_id = we.id
		GROUP BY w.id, w.date
		ORDER BY w.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout volumes: %w", err)
	}
	defer rows.Close()

	var volumes []*WorkoutVolume
	for rows.Next() {
		v := &WorkoutVolume{}
		var volume sql.NullFloat64
		if err := rows.Scan(&v.WorkoutID, &v.Date, &volume); err != nil {
			return nil, fmt.Errorf("failed to scan volume row: %w", err)
		}
		v.Volume = nullFloat64Value(volume)
		volumes = append(volumes, v)
	}

	return volumes, rows.Err()
}
