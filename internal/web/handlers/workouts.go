package handlers

import (
	"net/http"

	"github.com/kennethkenn/Fitness-Log/internal/database"
	"github.com/kennethkenn/Fitness-Log/internal/web/sse"
)

type logWorkoutRequest struct {
	Exercises []database.WorkoutEntry `json:"exercises"`
}

// WorkoutsList returns all workouts, oldest first
func (h *Handlers) WorkoutsList(w http.ResponseWriter, r *http.Request) {
	workouts, err := h.service.Workouts()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, workouts)
}

// WorkoutGet returns one hydrated workout
func (h *Handlers) WorkoutGet(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	workout, err := h.service.Workout(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, workout)
}

// WorkoutLog records a new workout with its exercises and sets
func (h *Handlers) WorkoutLog(w http.ResponseWriter, r *http.Request) {
	var req logWorkoutRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	workout, err := h.service.LogWorkout(req.Exercises)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.broadcast(sse.EventWorkoutLogged, workout)
	h.writeJSON(w, http.StatusCreated, workout)
}
