package handlers

import (
	"database/sql"
	"net/http"

	"github.com/selimakt/prodstore/pkg"
)

// HealthHandler, liveness/readiness kontrolü.
type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler, constructor.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check godoc
// GET /api/health
// DB ping başarısızsa 503 döner — load balancer instance'ı devreden çıkarır.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		pkg.ErrorWithMessage(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
