package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"travelapp/internal/utils"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": utils.NowUTC()})
}

// DBCheck GET /api/db-check pings the store and counts users.
func (h *Handler) DBCheck(c *gin.Context) {
	if h.Store == nil || h.Store.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database not connected", nil)
		return
	}
	ctx := c.Request.Context()
	if err := h.Store.Ping(ctx); err != nil {
		utils.LogError("", "system", "db_check", "ping failed", err)
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database not reachable", nil)
		return
	}
	var count int
	if err := h.Store.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		utils.LogError("", "system", "db_check", "count users failed", err)
		respondError(c, http.StatusInternalServerError, "db_query_failed", "database query failed", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "database connection OK",
		"driver":      h.Store.Dialect.Name(),
		"users_in_db": count,
	})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "not_ready", "router not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
