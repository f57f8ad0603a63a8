package handlers

import "net/http"

// StatsVolume returns the per-workout volume series and summary figures
func (h *Handlers) StatsVolume(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Volume()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
