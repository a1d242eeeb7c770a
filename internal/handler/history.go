package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/zonetasks/internal/board"
	"github.com/dukerupert/zonetasks/internal/model"
)

type HistoryHandler struct {
	board  *board.Board
	logger *slog.Logger
}

func NewHistoryHandler(b *board.Board, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{board: b, logger: logger}
}

// List returns recorded days, newest first. ?limit=N keeps the first N.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.board.History()
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		if n < len(entries) {
			entries = entries[:n]
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

type closeDayResponse struct {
	Recorded bool              `json:"recorded"`
	Entry    *model.ScoreEntry `json:"entry,omitempty"`
}

// CloseDay records today's scores. With no zones nothing is recorded and
// the response says so.
func (h *HistoryHandler) CloseDay(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.board.CloseDay()
	if !ok {
		writeJSON(w, http.StatusOK, closeDayResponse{Recorded: false})
		return
	}
	h.logger.Info("day closed", "entry_id", entry.ID, "total", entry.TotalScore)
	writeJSON(w, http.StatusCreated, closeDayResponse{Recorded: true, Entry: &entry})
}
