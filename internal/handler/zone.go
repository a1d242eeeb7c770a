package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/zonetasks/internal/board"
	"github.com/dukerupert/zonetasks/internal/model"
	"github.com/dukerupert/zonetasks/internal/recurrence"
	"github.com/dukerupert/zonetasks/internal/scoring"
	"github.com/dukerupert/zonetasks/internal/zone"
)

type ZoneHandler struct {
	board  *board.Board
	logger *slog.Logger
}

func NewZoneHandler(b *board.Board, logger *slog.Logger) *ZoneHandler {
	return &ZoneHandler{board: b, logger: logger}
}

// zoneView is a zone with its live score and a readable cadence.
type zoneView struct {
	model.Zone
	Schedule string           `json:"schedule"`
	Result   model.ZoneResult `json:"result"`
}

func newZoneView(z model.Zone) zoneView {
	return zoneView{Zone: z, Schedule: recurrence.Describe(z.Cadence), Result: scoring.Breakdown(z)}
}

func (h *ZoneHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.board.State())
}

func (h *ZoneHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.board.Refresh())
}

func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	zones := h.board.Zones()
	views := make([]zoneView, len(zones))
	for i, z := range zones {
		views[i] = newZoneView(z)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ZoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d zone.Draft
	if !decodeJSON(w, r, &d) {
		return
	}
	z, err := h.board.UpsertZone("", d)
	if err != nil {
		writeBoardError(w, h.logger, err)
		return
	}
	h.logger.Info("zone created", "zone_id", z.ID, "name", z.Name)
	writeJSON(w, http.StatusCreated, newZoneView(z))
}

func (h *ZoneHandler) Update(w http.ResponseWriter, r *http.Request) {
	var d zone.Draft
	if !decodeJSON(w, r, &d) {
		return
	}
	z, err := h.board.UpsertZone(r.PathValue("id"), d)
	if err != nil {
		writeBoardError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newZoneView(z))
}

func (h *ZoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.board.DeleteZone(r.PathValue("id")); err != nil {
		writeBoardError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ZoneHandler) Reset(w http.ResponseWriter, r *http.Request) {
	z, err := h.board.ResetZone(r.PathValue("id"))
	if err != nil {
		writeBoardError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newZoneView(z))
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

func (h *ZoneHandler) SetTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req taskStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	z, err := h.board.SetTaskStatus(r.PathValue("id"), r.PathValue("task_id"), model.Status(req.Status))
	if err != nil {
		writeBoardError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newZoneView(z))
}
