package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/zonetasks/internal/board"
	"github.com/dukerupert/zonetasks/internal/model"
	"github.com/dukerupert/zonetasks/internal/zone"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

// writeBoardError maps domain errors to 400 and 404. Anything else is a 500
// and gets logged.
func writeBoardError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, board.ErrZoneNotFound), errors.Is(err, board.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, zone.ErrNameRequired),
		errors.Is(err, zone.ErrWeekdaysRequired),
		errors.Is(err, zone.ErrTemplatesRequired),
		errors.Is(err, model.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("board operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
