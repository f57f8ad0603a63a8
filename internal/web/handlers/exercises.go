package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kennethkenn/Fitness-Log/internal/tracker"
	"github.com/kennethkenn/Fitness-Log/internal/web/sse"
)

type exerciseRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ExercisesList returns the exercise catalog
func (h *Handlers) ExercisesList(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.service.Exercises()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, exercises)
}

// ExerciseCreate adds a new exercise to the catalog
func (h *Handlers) ExerciseCreate(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	exercise, err := h.service.CreateExercise(req.Name, req.Category)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.broadcast(sse.EventExerciseCreated, exercise)
	h.writeJSON(w, http.StatusCreated, exercise)
}

// ExerciseUpdate changes an exercise's name and category
func (h *Handlers) ExerciseUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req exerciseRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	exercise, err := h.service.UpdateExercise(id, req.Name, req.Category)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.broadcast(sse.EventExerciseUpdated, exercise)
	h.writeJSON(w, http.StatusOK, exercise)
}

// ExerciseDelete removes an exercise and every workout entry referencing it
func (h *Handlers) ExerciseDelete(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	exercise, err := h.service.DeleteExercise(id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.broadcast(sse.EventExerciseDeleted, exercise)
	h.writeJSON(w, http.StatusOK, exercise)
}

// pathID parses the {id} URL parameter as an int64
func (h *Handlers) pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, tracker.ErrValidation
	}
	return id, nil
}
