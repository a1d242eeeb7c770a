package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/zonetasks/internal/backup"
	"github.com/dukerupert/zonetasks/internal/board"
	"github.com/dukerupert/zonetasks/internal/handler"
	"github.com/dukerupert/zonetasks/internal/middleware"
	ws "github.com/dukerupert/zonetasks/internal/websocket"
)

// Backups run argon2 key derivation, so each client gets a few per minute.
const (
	backupLimit  = 5
	backupWindow = time.Minute
)

type Server struct {
	hub         *ws.Hub
	zoneH       *handler.ZoneHandler
	scoreH      *handler.ScoreHandler
	historyH    *handler.HistoryHandler
	playerH     *handler.PlayerHandler
	backupH     *handler.BackupHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New builds the server. Websocket clients get b's score standing as their
// first message.
func New(b *board.Board, hub *ws.Hub, backupMgr *backup.Manager, logger *slog.Logger) *Server {
	hub.SetSnapshot(func() any { return b.Score() })
	return &Server{
		hub:         hub,
		zoneH:       handler.NewZoneHandler(b, logger.With("component", "zone")),
		scoreH:      handler.NewScoreHandler(b),
		historyH:    handler.NewHistoryHandler(b, logger.With("component", "history")),
		playerH:     handler.NewPlayerHandler(b),
		backupH:     handler.NewBackupHandler(b, backupMgr, logger.With("component", "backup")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Board
	mux.HandleFunc("GET /api/state", s.zoneH.State)
	mux.HandleFunc("POST /api/refresh", s.zoneH.Refresh)

	// Zones and their task instances
	mux.HandleFunc("GET /api/zones", s.zoneH.List)
	mux.HandleFunc("POST /api/zones", s.zoneH.Create)
	mux.HandleFunc("PUT /api/zones/{id}", s.zoneH.Update)
	mux.HandleFunc("DELETE /api/zones/{id}", s.zoneH.Delete)
	mux.HandleFunc("POST /api/zones/{id}/reset", s.zoneH.Reset)
	mux.HandleFunc("PUT /api/zones/{id}/tasks/{task_id}", s.zoneH.SetTaskStatus)

	// Scoring
	mux.HandleFunc("GET /api/score", s.scoreH.Score)
	mux.HandleFunc("GET /api/tiers", s.scoreH.Tiers)
	mux.HandleFunc("GET /api/history", s.historyH.List)
	mux.HandleFunc("POST /api/history/close-day", s.historyH.CloseDay)

	mux.HandleFunc("GET /api/player", s.playerH.Get)
	mux.HandleFunc("PUT /api/player", s.playerH.Update)

	mux.HandleFunc("GET /api/backup", s.backupH.Status)
	mux.Handle("POST /api/backup", middleware.RateLimit(s.rateLimiter, backupLimit, backupWindow)(http.HandlerFunc(s.backupH.Run)))

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"clients": s.hub.ClientCount(),
	})
}
