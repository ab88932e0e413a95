package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archive-service/internal/auth"
)

func setupLoginRouter(handler *LoginHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", handler.Login)
	return r
}

func TestLoginSuccess(t *testing.T) {
	gate := auth.NewGate("", "opensesame")
	manager := auth.NewManager("test-secret", time.Hour)
	router := setupLoginRouter(NewLoginHandler(gate, manager, nil))

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"password":"opensesame"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	token, ok := resp["token"].(string)
	require.True(t, ok)
	assert.NoError(t, manager.VerifyToken(token))
}

func TestLoginWrongPassword(t *testing.T) {
	gate := auth.NewGate("", "opensesame")
	manager := auth.NewManager("test-secret", time.Hour)
	router := setupLoginRouter(NewLoginHandler(gate, manager, nil))

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"password":"guess"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginMissingBody(t *testing.T) {
	gate := auth.NewGate("", "opensesame")
	manager := auth.NewManager("test-secret", time.Hour)
	router := setupLoginRouter(NewLoginHandler(gate, manager, nil))

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
