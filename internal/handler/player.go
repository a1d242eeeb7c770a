package handler

import (
	"net/http"

	"github.com/dukerupert/zonetasks/internal/board"
)

type PlayerHandler struct {
	board *board.Board
}

func NewPlayerHandler(b *board.Board) *PlayerHandler {
	return &PlayerHandler{board: b}
}

type playerRequest struct {
	Name string `json:"name"`
}

func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"name": h.board.PlayerName()})
}

func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": h.board.SetPlayerName(req.Name)})
}
