package tracker

import (
	"strings"

	"github.com/kennethkenn/Fitness-Log/internal/database"
)

// Service is the operation surface the transport layer sits behind. It
// composes the exercise and workout repositories, translating input shapes
// and classifying errors; all storage semantics live in the database package.
type Service struct {
	db *database.DB
}

// New creates a new tracker service
func New(db *database.DB) *Service {
	return &Service{db: db}
}

// Exercises returns the exercise catalog in insertion order
func (s *Service) Exercises() ([]*database.Exercise, error) {
	return s.db.ListExercises()
}

// CreateExercise adds a new exercise to the catalog. Name and category must
// be non-empty after trimming.
func (s *Service) CreateExercise(name, category string) (*database.Exercise, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return nil, validationErrorf("exercise name is required")
	}
	if category == "" {
		return nil, validationErrorf("exercise category is required")
	}

	exercise := &database.Exercise{Name: name, Category: category}
	if err := s.db.CreateExercise(exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// UpdateExercise changes an exercise's name and category, returning the
// updated row. Returns ErrNotFound if the id has no matching exercise.
func (s *Service) UpdateExercise(id int64, name, category string) (*database.Exercise, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return nil, validationErrorf("exercise name is required")
	}
	if category == "" {
		return nil, validationErrorf("exercise category is required")
	}

	exercise := &database.Exercise{ID: id, Name: name, Category: category}
	updated, err := s.db.UpdateExercise(exercise)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, notFoundErrorf("exercise %d", id)
	}
	return exercise, nil
}

// DeleteExercise removes an exercise and cascades to every workout entry and
// set referencing it, in one transaction. Returns the exercise as it existed
// before deletion, or ErrNotFound if it never existed.
func (s *Service) DeleteExercise(id int64) (*database.Exercise, error) {
	exercise, err := s.db.DeleteExercise(id)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, notFoundErrorf("exercise %d", id)
	}
	return exercise, nil
}

// Workouts returns all workouts, fully hydrated, oldest first
func (s *Service) Workouts() ([]*database.Workout, error) {
	return s.db.ListWorkouts()
}

// Workout returns one hydrated workout, or ErrNotFound
func (s *Service) Workout(id int64) (*database.Workout, error) {
	workout, err := s.db.GetWorkout(id)
	if err != nil {
		return nil, err
	}
	if workout == nil {
		return nil, notFoundErrorf("workout %d", id)
	}
	return workout, nil
}

// LogWorkout records a new workout with its exercises and sets in caller
// order, atomically. Validation happens before the transaction opens; a
// nonexistent exercise id surfaces as ErrIntegrity after rollback.
func (s *Service) LogWorkout(entries []database.WorkoutEntry) (*database.Workout, error) {
	if len(entries) == 0 {
		return nil, validationErrorf("a workout needs at least one exercise")
	}
	for i, entry := range entries {
		if entry.ExerciseID <= 0 {
			return nil, validationErrorf("entry %d: exercise id is required", i)
		}
		for j, set := range entry.Sets {
			if set.Reps < 0 {
				return nil, validationErrorf("entry %d set %d: reps must not be negative", i, j)
			}
			if set.Weight < 0 {
				return nil, validationErrorf("entry %d set %d: weight must not be negative", i, j)
			}
		}
	}

	workout, err := s.db.CreateWorkout(entries)
	if err != nil {
		return nil, wrapWriteError(err, "log workout")
	}
	return workout, nil
}

// VolumeStats summarizes total volume (sum of reps x weight) per workout,
// plus the last/average/best figures the analytics view shows.
type VolumeStats struct {
	Workouts      []*database.WorkoutVolume `json:"workouts"`
	TotalWorkouts int                       `json:"total_workouts"`
	TotalVolume   float64                   `json:"total_volume"`
	AvgVolume     float64                   `json:"avg_volume"`
	BestVolume    float64                   `json:"best_volume"`
	LastVolume    float64                   `json:"last_volume"`
}

// Volume computes the volume summary across all workouts
func (s *Service) Volume() (*VolumeStats, error) {
	volumes, err := s.db.ListWorkoutVolumes()
	if err != nil {
		return nil, err
	}

	stats := &VolumeStats{
		Workouts:      volumes,
		TotalWorkouts: len(volumes),
	}
	for _, v := range volumes {
		stats.TotalVolume += v.Volume
		if v.Volume > stats.BestVolume {
			stats.BestVolume = v.Volume
		}
	}
	if len(volumes) > 0 {
		stats.AvgVolume = stats.TotalVolume / float64(len(volumes))
		stats.LastVolume = volumes[len(volumes)-1].Volume
	}

	return stats, nil
}
