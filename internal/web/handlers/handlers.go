package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/kennethkenn/Fitness-Log/internal/tracker"
	"github.com/kennethkenn/Fitness-Log/internal/web/sse"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	service   *tracker.Service
	sseBroker *sse.Broker
}

// New creates a new Handlers instance
func New(service *tracker.Service) *Handlers {
	return &Handlers{service: service}
}

// SetSSEBroker sets the SSE broker for broadcasting events
func (h *Handlers) SetSSEBroker(broker *sse.Broker) {
	h.sseBroker = broker
}

// broadcast sends an SSE event if the broker is configured
func (h *Handlers) broadcast(eventType sse.EventType, data any) {
	if h.sseBroker != nil {
		h.sseBroker.Broadcast(sse.Event{Type: eventType, Data: data})
	}
}

// writeJSON sends a JSON response with the given status
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps a service error onto an HTTP status and JSON body
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracker.ErrValidation):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, tracker.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, tracker.ErrIntegrity):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Msg("Request failed")
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decodeJSON parses a request body into v, rejecting unknown fields
func (h *Handlers) decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
