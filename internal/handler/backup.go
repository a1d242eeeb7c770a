package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/dukerupert/zonetasks/internal/backup"
	"github.com/dukerupert/zonetasks/internal/board"
)

type BackupHandler struct {
	board   *board.Board
	manager *backup.Manager
	logger  *slog.Logger
}

func NewBackupHandler(b *board.Board, m *backup.Manager, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{board: b, manager: m, logger: logger}
}

type backupResponse struct {
	Status backup.Status `json:"status"`
	Files  []backup.File `json:"files"`
}

func (h *BackupHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := backupResponse{Status: h.manager.Status(), Files: []backup.File{}}
	if h.manager.Enabled() {
		files, err := h.manager.List()
		if err != nil {
			h.logger.Error("list backups", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list backups")
			return
		}
		resp.Files = files
	}
	writeJSON(w, http.StatusOK, resp)
}

// Run exports the current state now.
func (h *BackupHandler) Run(w http.ResponseWriter, r *http.Request) {
	path, err := h.manager.Export(r.Context(), h.board.State())
	if err != nil {
		if errors.Is(err, backup.ErrDisabled) {
			writeError(w, http.StatusServiceUnavailable, "backup not configured")
			return
		}
		h.logger.Error("backup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "backup failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"file": filepath.Base(path)})
}
