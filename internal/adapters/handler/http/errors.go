package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codequest/streak-engine/internal/core/domain"
)

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})

	case errors.Is(err, domain.ErrUnknownActivity):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown activity"})

	case errors.Is(err, domain.ErrInvalidAnswer):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid answer",
			"message": "question_index must be within [0, question_count)",
		})

	case errors.Is(err, domain.ErrInvalidNickname):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": "password too short"})

	case errors.Is(err, domain.ErrNicknameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "nickname already taken"})

	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid nickname or password"})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
