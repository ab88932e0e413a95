package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"archive-service/internal/auth"
	"archive-service/internal/telemetry"
)

// LoginHandler exchanges the shared archive passphrase for a session token.
type LoginHandler struct {
	gate    *auth.Gate
	manager *auth.Manager
	emitter *telemetry.AuditEmitter
}

// NewLoginHandler builds a LoginHandler.
func NewLoginHandler(gate *auth.Gate, manager *auth.Manager, emitter *telemetry.AuditEmitter) *LoginHandler {
	return &LoginHandler{gate: gate, manager: manager, emitter: emitter}
}

// Login validates the passphrase and issues a session token.
func (h *LoginHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := requestIDFromContext(c)
	if !h.gate.Check(req.Password) {
		h.emitter.Emit(c.Request.Context(), "WARN", "login rejected", requestID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	token, expiresAt, err := h.manager.GenerateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	h.emitter.Emit(c.Request.Context(), "INFO", "login accepted", requestID)
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt,
	})
}
