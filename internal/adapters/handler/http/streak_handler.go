package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codequest/streak-engine/internal/adapters/handler/http/middleware"
	"github.com/codequest/streak-engine/internal/core/services"
)

type StreakHandler struct {
	svc        *services.StreakService
	defaultLoc *time.Location
}

func NewStreakHandler(svc *services.StreakService, defaultLoc *time.Location) *StreakHandler {
	return &StreakHandler{
		svc:        svc,
		defaultLoc: defaultLoc,
	}
}

func (h *StreakHandler) RegisterRoutes(r *gin.RouterGroup) {
	streak := r.Group("/streak")
	{
		streak.GET("", h.Get)
		streak.POST("/complete", h.Complete)
	}
}

func (h *StreakHandler) Get(c *gin.Context) {
	playerID, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	loc, ok := requestLocation(c, h.defaultLoc)
	if !ok {
		return
	}

	view, err := h.svc.GetStreak(c.Request.Context(), playerID, loc)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Complete records a qualifying completion reported directly by the client.
func (h *StreakHandler) Complete(c *gin.Context) {
	playerID, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	loc, ok := requestLocation(c, h.defaultLoc)
	if !ok {
		return
	}

	view, err := h.svc.RecordCompletion(c.Request.Context(), playerID, loc)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
