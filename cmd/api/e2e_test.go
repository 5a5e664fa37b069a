package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codequest/streak-engine/internal/config"
	"github.com/codequest/streak-engine/internal/core/domain"
	"github.com/codequest/streak-engine/internal/core/services"
)

type loginResponse struct {
	Token string `json:"token"`
}

func newMemoryApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		StoreBackend:    config.BackendMemory,
		JWTSecret:       "e2e-secret",
		JWTIssuer:       "streak-engine",
		TokenTTL:        time.Hour,
		RateLimit:       100,
		RateLimitWindow: time.Minute,
		Timezone:        time.UTC,
	}

	router, cleanup, err := buildApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return router
}

func call(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Timezone", "UTC")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEndToEnd_StreakLifecycle(t *testing.T) {
	router := newMemoryApp(t)

	credentials := `{"nickname": "enum_master", "password": "Sup3rSecret!"}`
	var token string

	t.Run("1. Register", func(t *testing.T) {
		w := call(t, router, http.MethodPost, "/api/v1/auth/register", "", credentials)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
	})

	t.Run("2. Register twice is a conflict", func(t *testing.T) {
		w := call(t, router, http.MethodPost, "/api/v1/auth/register", "", credentials)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("3. Login", func(t *testing.T) {
		w := call(t, router, http.MethodPost, "/api/v1/auth/login", "", credentials)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		var resp loginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)
		token = resp.Token
	})

	t.Run("4. Fresh streak is empty", func(t *testing.T) {
		require.NotEmpty(t, token, "Login step failed")

		w := call(t, router, http.MethodGet, "/api/v1/streak", token, "")
		require.Equal(t, http.StatusOK, w.Code)

		var view domain.StreakView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, 0, view.Count)
		assert.False(t, view.ActiveToday)
	})

	t.Run("5. Intermediate answer does not count", func(t *testing.T) {
		require.NotEmpty(t, token, "Login step failed")

		w := call(t, router, http.MethodPost, "/api/v1/activities/enum_eliminator/answers", token,
			`{"question_index": 2, "question_count": 10, "correct": true}`)
		require.Equal(t, http.StatusOK, w.Code)

		var result services.AnswerResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.False(t, result.Completed)
		assert.Equal(t, 0, result.Streak.Count)
	})

	t.Run("6. Final correct answer starts the streak", func(t *testing.T) {
		require.NotEmpty(t, token, "Login step failed")

		w := call(t, router, http.MethodPost, "/api/v1/activities/enum_eliminator/answers", token,
			`{"question_index": 9, "question_count": 10, "correct": true}`)
		require.Equal(t, http.StatusOK, w.Code)

		var result services.AnswerResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.True(t, result.Completed)
		assert.True(t, result.StreakUpdated)
		assert.Equal(t, 1, result.Streak.Count)
	})

	t.Run("7. Another game on the same day keeps the count", func(t *testing.T) {
		require.NotEmpty(t, token, "Login step failed")

		w := call(t, router, http.MethodPost, "/api/v1/streak/complete", token, "")
		require.Equal(t, http.StatusOK, w.Code)

		var view domain.StreakView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, 1, view.Count)
		assert.Equal(t, domain.StreakUnchanged, view.Outcome)
		assert.Equal(t, "1 day", view.Label)
		assert.True(t, view.ActiveToday)
	})

	t.Run("8. Health reports the memory store", func(t *testing.T) {
		w := call(t, router, http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "store")
	})
}
