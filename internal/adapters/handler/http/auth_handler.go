package http

import (
	"net/http"
	"time"

	"github.com/codequest/streak-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service       *services.AuthService
	tokenDuration time.Duration
}

func NewAuthHandler(service *services.AuthService, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{
		service:       service,
		tokenDuration: tokenDuration,
	}
}

type credentialsRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type playerResponse struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

type loginResponse struct {
	Token     string         `json:"token"`
	ExpiresIn int64          `json:"expires_in"`
	Player    playerResponse `json:"player"`
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, playerResponse{
		ID:        player.ID,
		Nickname:  player.Nickname,
		CreatedAt: player.CreatedAt,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, player, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		ExpiresIn: int64(h.tokenDuration.Seconds()),
		Player: playerResponse{
			ID:        player.ID,
			Nickname:  player.Nickname,
			CreatedAt: player.CreatedAt,
		},
	})
}
