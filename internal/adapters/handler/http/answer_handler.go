package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codequest/streak-engine/internal/adapters/handler/http/middleware"
	"github.com/codequest/streak-engine/internal/core/domain"
	"github.com/codequest/streak-engine/internal/core/services"
)

type AnswerHandler struct {
	svc        *services.AnswerService
	defaultLoc *time.Location
}

func NewAnswerHandler(svc *services.AnswerService, defaultLoc *time.Location) *AnswerHandler {
	return &AnswerHandler{
		svc:        svc,
		defaultLoc: defaultLoc,
	}
}

type answerRequest struct {
	QuestionIndex *int  `json:"question_index" binding:"required,min=0"`
	QuestionCount int   `json:"question_count" binding:"required,min=1"`
	Correct       *bool `json:"correct" binding:"required"`
}

func (h *AnswerHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/activities/:activity/answers", h.Submit)
}

func (h *AnswerHandler) Submit(c *gin.Context) {
	playerID, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	activity, err := domain.ParseActivity(c.Param("activity"))
	if err != nil {
		handleError(c, err)
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	loc, ok := requestLocation(c, h.defaultLoc)
	if !ok {
		return
	}

	result, err := h.svc.RecordAnswer(c.Request.Context(), domain.AnswerSubmission{
		PlayerID:      playerID,
		Activity:      activity,
		QuestionIndex: *req.QuestionIndex,
		QuestionCount: req.QuestionCount,
		Correct:       *req.Correct,
	}, loc)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
