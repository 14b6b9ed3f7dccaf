package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/bond-desk/internal/database"
	"github.com/aristath/bond-desk/internal/scheduler"
)

// SystemHandlers handles health and status endpoints
type SystemHandlers struct {
	log       zerolog.Logger
	db        *database.DB
	scheduler *scheduler.Scheduler
	startedAt time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, db *database.DB, sched *scheduler.Scheduler) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		db:        db,
		scheduler: sched,
		startedAt: time.Now(),
	}
}

// HandleHealth is the liveness probe
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleStatus reports database and catalogue state
func (h *SystemHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"database_path":  h.db.Path(),
	}

	var bondCount, snapshotCount int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM bonds").Scan(&bondCount); err == nil {
		status["bonds"] = bondCount
	}
	if err := h.db.QueryRow("SELECT COUNT(*) FROM valuation_snapshots").Scan(&snapshotCount); err == nil {
		status["snapshots"] = snapshotCount
	}

	h.writeJSON(w, http.StatusOK, status)
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
