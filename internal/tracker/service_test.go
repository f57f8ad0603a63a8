package tracker

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/kennethkenn/Fitness-Log/internal/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := db.SeedExercises(); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	return New(db)
}

func findExercise(t *testing.T, s *Service, name string) *database.Exercise {
	t.Helper()

	exercises, err := s.Exercises()
	if err != nil {
		t.Fatalf("Exercises returned error: %v", err)
	}
	for _, e := range exercises {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("exercise %q not in catalog", name)
	return nil
}

func TestLogWorkout_Scenario(t *testing.T) {
	s := newTestService(t)
	bench := findExercise(t, s, "Bench Press")

	workout, err := s.LogWorkout([]database.WorkoutEntry{
		{ExerciseID: bench.ID, Sets: []database.SetInput{
			{Reps: 10, Weight: 60},
			{Reps: 8, Weight: 65},
		}},
	})
	if err != nil {
		t.Fatalf("LogWorkout returned error: %v", err)
	}

	if workout.Date == "" {
		t.Fatal("expected a non-empty date")
	}
	if len(workout.Exercises) != 1 {
		t.Fatalf("expected 1 workout exercise, got %d", len(workout.Exercises))
	}
	we := workout.Exercises[0]
	if we.Exercise == nil || we.Exercise.Name != "Bench Press" {
		t.Fatalf("expected resolved Bench Press, got %+v", we.Exercise)
	}
	if len(we.Sets) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(we.Sets))
	}
	if we.Sets[0].Reps != 10 || we.Sets[0].Weight != 60 {
		t.Fatalf("set 0 mismatch: %+v", we.Sets[0])
	}
	if we.Sets[1].Reps != 8 || we.Sets[1].Weight != 65 {
		t.Fatalf("set 1 mismatch: %+v", we.Sets[1])
	}
}

func TestLogWorkout_Validation(t *testing.T) {
	s := newTestService(t)

	cases := []struct {
		name    string
		entries []database.WorkoutEntry
	}{
		{"no entries", nil},
		{"missing exercise id", []database.WorkoutEntry{{ExerciseID: 0}}},
		{"negative reps", []database.WorkoutEntry{{ExerciseID: 1, Sets: []database.SetInput{{Reps: -1, Weight: 50}}}}},
		{"negative weight", []database.WorkoutEntry{{ExerciseID: 1, Sets: []database.SetInput{{Reps: 5, Weight: -50}}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.LogWorkout(tc.entries)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	// Nothing was persisted
	workouts, err := s.Workouts()
	if err != nil {
		t.Fatalf("Workouts returned error: %v", err)
	}
	if len(workouts) != 0 {
		t.Fatalf("expected no workouts after rejected input, got %d", len(workouts))
	}
}

func TestLogWorkout_UnknownExerciseIsIntegrityError(t *testing.T) {
	s := newTestService(t)

	_, err := s.LogWorkout([]database.WorkoutEntry{
		{ExerciseID: 9999, Sets: []database.SetInput{{Reps: 5, Weight: 50}}},
	})
	if !errors.Is(err, ErrIntegrity) {
		t.Fatalf("expected integrity error, got %v", err)
	}

	workouts, err := s.Workouts()
	if err != nil {
		t.Fatalf("Workouts returned error: %v", err)
	}
	if len(workouts) != 0 {
		t.Fatalf("expected rollback to leave no workouts, got %d", len(workouts))
	}
}

func TestCreateExercise_Validation(t *testing.T) {
	s := newTestService(t)

	if _, err := s.CreateExercise("  ", "Chest"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	if _, err := s.CreateExercise("Dip", "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank category, got %v", err)
	}

	exercise, err := s.CreateExercise(" Dip ", " Chest ")
	if err != nil {
		t.Fatalf("CreateExercise returned error: %v", err)
	}
	if exercise.Name != "Dip" || exercise.Category != "Chest" {
		t.Fatalf("expected trimmed values, got %q/%q", exercise.Name, exercise.Category)
	}
}

func TestUpdateExercise_NotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.UpdateExercise(9999, "Ghost", "None")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteExercise_ScopedToReferencingEntries(t *testing.T) {
	s := newTestService(t)
	bench := findExercise(t, s, "Bench Press")
	squat := findExercise(t, s, "Squat")

	// Squat appears in two workouts
	for range 2 {
		if _, err := s.LogWorkout([]database.WorkoutEntry{
			{ExerciseID: squat.ID, Sets: []database.SetInput{{Reps: 5, Weight: 100}}},
			{ExerciseID: bench.ID, Sets: []database.SetInput{{Reps: 10, Weight: 60}}},
		}); err != nil {
			t.Fatalf("LogWorkout returned error: %v", err)
		}
	}

	deleted, err := s.DeleteExercise(squat.ID)
	if err != nil {
		t.Fatalf("DeleteExercise returned error: %v", err)
	}
	if deleted.Name != "Squat" {
		t.Fatalf("expected pre-deletion Squat row, got %+v", deleted)
	}

	exercises, err := s.Exercises()
	if err != nil {
		t.Fatalf("Exercises returned error: %v", err)
	}
	for _, e := range exercises {
		if e.ID == squat.ID {
			t.Fatal("expected Squat to be gone from the catalog")
		}
	}

	workouts, err := s.Workouts()
	if err != nil {
		t.Fatalf("Workouts returned error: %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("expected both workouts to survive, got %d", len(workouts))
	}
	for _, w := range workouts {
		if len(w.Exercises) != 1 || w.Exercises[0].ExerciseID != bench.ID {
			t.Fatalf("workout %d: expected only the bench entry to remain, got %+v", w.ID, w.Exercises)
		}
	}

	if _, err := s.DeleteExercise(squat.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestVolume_Summary(t *testing.T) {
	s := newTestService(t)
	bench := findExercise(t, s, "Bench Press")

	// Volumes: 600, then 1200
	if _, err := s.LogWorkout([]database.WorkoutEntry{
		{ExerciseID: bench.ID, Sets: []database.SetInput{{Reps: 10, Weight: 60}}},
	}); err != nil {
		t.Fatalf("LogWorkout returned error: %v", err)
	}
	if _, err := s.LogWorkout([]database.WorkoutEntry{
		{ExerciseID: bench.ID, Sets: []database.SetInput{{Reps: 10, Weight: 60}, {Reps: 10, Weight: 60}}},
	}); err != nil {
		t.Fatalf("LogWorkout returned error: %v", err)
	}

	stats, err := s.Volume()
	if err != nil {
		t.Fatalf("Volume returned error: %v", err)
	}
	if stats.TotalWorkouts != 2 {
		t.Fatalf("expected 2 workouts, got %d", stats.TotalWorkouts)
	}
	if stats.TotalVolume != 1800 {
		t.Fatalf("expected total volume 1800, got %v", stats.TotalVolume)
	}
	if stats.AvgVolume != 900 {
		t.Fatalf("expected avg volume 900, got %v", stats.AvgVolume)
	}
	if stats.BestVolume != 1200 {
		t.Fatalf("expected best volume 1200, got %v", stats.BestVolume)
	}
	if stats.LastVolume != 1200 {
		t.Fatalf("expected last volume 1200, got %v", stats.LastVolume)
	}
}
