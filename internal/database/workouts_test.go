package database

import (
	"testing"
	"time"
)

func TestCreateWorkout_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	if err := db.SeedExercises(); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	entries := []WorkoutEntry{
		{ExerciseID: 2, Sets: []SetInput{{Reps: 5, Weight: 100}, {Reps: 3, Weight: 110}}},
		{ExerciseID: 1, Sets: []SetInput{{Reps: 10, Weight: 60}}},
	}

	workout, err := db.CreateWorkout(entries)
	if err != nil {
		t.Fatalf("CreateWorkout returned error: %v", err)
	}

	if _, err := time.Parse(time.RFC3339, workout.Date); err != nil {
		t.Fatalf("expected RFC3339 date, got %q: %v", workout.Date, err)
	}

	if len(workout.Exercises) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(workout.Exercises))
	}
	for i, entry := range entries {
		we := workout.Exercises[i]
		if we.ExerciseID != entry.ExerciseID {
			t.Fatalf("entry %d: expected exercise id %d, got %d", i, entry.ExerciseID, we.ExerciseID)
		}
		if we.Exercise == nil {
			t.Fatalf("entry %d: expected resolved exercise", i)
		}
		if len(we.Sets) != len(entry.Sets) {
			t.Fatalf("entry %d: expected %d sets, got %d", i, len(entry.Sets), len(we.Sets))
		}
		for j, set := range entry.Sets {
			if we.Sets[j].Reps != set.Reps || we.Sets[j].Weight != set.Weight {
				t.Fatalf("entry %d set %d: expected %d x %v, got %d x %v",
					i, j, set.Reps, set.Weight, we.Sets[j].Reps, we.Sets[j].Weight)
			}
		}
	}
}

func TestCreateWorkout_RollsBackOnForeignKeyViolation(t *testing.T) {
	db := newTestDB(t)
	if err := db.SeedExercises(); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	// The first entry is valid; the second references a nonexistent exercise,
	// so it fails only after the workout and some rows are already inserted
	_, err := db.CreateWorkout([]WorkoutEntry{
		{ExerciseID: 1, Sets: []SetInput{{Reps: 10, Weight: 60}}},
		{ExerciseID: 9999, Sets: []SetInput{{Reps: 5, Weight: 80}}},
	})
	if err == nil {
		t.Fatal("expected a foreign key violation")
	}

	for _, table := range []string{"workouts", "workout_exercises", "workout_sets"} {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatalf("failed to count %s: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("expected %s to be empty after rollback, got %d rows", table, count)
		}
	}
}

func TestListWorkouts_OldestFirst(t *testing.T) {
	db := newTestDB(t)
	if err := db.SeedExercises(); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	for range 3 {
		if _, err := db.CreateWorkout([]WorkoutEntry{
			{ExerciseID: 1, Sets: []SetInput{{Reps: 8, Weight: 50}}},
		}); err != nil {
			t.Fatalf("CreateWorkout returned error: %v", err)
		}
	}

	workouts, err := db.ListWorkouts()
	if err != nil {
		t.Fatalf("ListWorkouts returned error: %v", err)
	}
	if len(workouts) != 3 {
		t.Fatalf("expected 3 workouts, got %d", len(workouts))
	}
	for i := 1; i < len(workouts); i++ {
		if workouts[i].ID <= workouts[i-1].ID {
			t.Fatalf("expected ascending ids, got %d before %d", workouts[i-1].ID, workouts[i].ID)
		}
	}
}

func TestGetWorkout_NotFound(t *testing.T) {
	db := newTestDB(t)

	workout, err := db.GetWorkout(123)
	if err != nil {
		t.Fatalf("GetWorkout returned error: %v", err)
	}
	if workout != nil {
		t.Fatalf("expected nil for a nonexistent id, got %+v", workout)
	}
}

func TestHydration_ToleratesDanglingExerciseReference(t *testing.T) {
	db := newTestDB(t)

	// Force the dangling state directly; the cascade in DeleteExercise
	// prevents it in normal operation. A single connection keeps the
	// pragma change and the inserts together.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys=OFF"); err != nil {
		t.Fatalf("failed to disable foreign keys: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO workouts (id, date) VALUES (1, '2024-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("failed to insert workout: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO workout_exercises (id, workout_id, exercise_id) VALUES (1, 1, 77)`); err != nil {
		t.Fatalf("failed to insert workout exercise: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO workout_sets (workout_exercise_id, reps, weight) VALUES (1, 10, 40)`); err != nil {
		t.Fatalf("failed to insert set: %v", err)
	}

	workout, err := db.GetWorkout(1)
	if err != nil {
		t.Fatalf("GetWorkout returned error: %v", err)
	}
	if workout == nil {
		t.Fatal("expected workout to hydrate")
	}
	if len(workout.Exercises) != 1 {
		t.Fatalf("expected the dangling entry to be kept, got %d entries", len(workout.Exercises))
	}
	if workout.Exercises[0].Exercise != nil {
		t.Fatal("expected nil exercise for a dangling reference")
	}
	if len(workout.Exercises[0].Sets) != 1 {
		t.Fatalf("expected sets to hydrate, got %d", len(workout.Exercises[0].Sets))
	}
}

func TestListWorkoutVolumes(t *testing.T) {
	db := newTestDB(t)
	if err := db.SeedExercises(); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	// 10x60 + 8x65 = 1120
	if _, err := db.CreateWorkout([]WorkoutEntry{
		{ExerciseID: 1, Sets: []SetInput{{Reps: 10, Weight: 60}, {Reps: 8, Weight: 65}}},
	}); err != nil {
		t.Fatalf("CreateWorkout returned error: %v", err)
	}
	// 5x100 = 500
	if _, err := db.CreateWorkout([]WorkoutEntry{
		{ExerciseID: 2, Sets: []SetInput{{Reps: 5, Weight: 100}}},
	}); err != nil {
		t.Fatalf("CreateWorkout returned error: %v", err)
	}

	volumes, err := db.ListWorkoutVolumes()
	if err != nil {
		t.Fatalf("ListWorkoutVolumes returned error: %v", err)
	}
	if len(volumes) != 2 {
		t.Fatalf("expected 2 volume rows, got %d", len(volumes))
	}
	if volumes[0].Volume != 1120 {
		t.Fatalf("expected first workout volume 1120, got %v", volumes[0].Volume)
	}
	if volumes[1].Volume != 500 {
		t.Fatalf("expected second workout volume 500, got %v", volumes[1].Volume)
	}
}
