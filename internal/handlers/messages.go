package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"archive-service/internal/observability"
	"archive-service/internal/repositories"
	"archive-service/internal/telemetry"
)

const defaultPageSize = 50

// MessagesHandler serves read queries over the archived conversation.
type MessagesHandler struct {
	repo    repositories.MessageRepository
	emitter *telemetry.AuditEmitter
}

// NewMessagesHandler builds a MessagesHandler.
func NewMessagesHandler(repo repositories.MessageRepository, emitter *telemetry.AuditEmitter) *MessagesHandler {
	return &MessagesHandler{repo: repo, emitter: emitter}
}

// List returns a page of messages, optionally bounded by from/to days.
func (h *MessagesHandler) List(c *gin.Context) {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	pageSize, err := intQuery(c, "pageSize", defaultPageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pageSize"})
		return
	}

	result, err := h.repo.Paginate(c.Request.Context(), page, pageSize, c.Query("from"), c.Query("to"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrInvalidDate) || errors.Is(err, repositories.ErrInvalidPage) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Search returns messages whose text contains q, optionally bounded by
// from/to days.
func (h *MessagesHandler) Search(c *gin.Context) {
	ctx, span := observability.Tracer().Start(c.Request.Context(), "messages.search")
	defer span.End()

	query := c.Query("q")
	results, total, err := h.repo.Search(ctx, query, c.Query("from"), c.Query("to"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrEmptyQuery) || errors.Is(err, repositories.ErrInvalidDate) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	observability.IncSearch()
	h.emitter.Emit(ctx, "INFO", fmt.Sprintf("search %q matched %d", query, total), requestIDFromContext(c))

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   total,
		"query":   query,
	})
}

// Days returns one summary per calendar day present in the archive.
func (h *MessagesHandler) Days(c *gin.Context) {
	days, err := h.repo.DaySummaries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load day summaries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// ByDate returns every message on one calendar day.
func (h *MessagesHandler) ByDate(c *gin.Context) {
	msgs, err := h.repo.ByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrInvalidDate) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// Thread returns the participants and thread name from the export header.
func (h *MessagesHandler) Thread(c *gin.Context) {
	thread, err := h.repo.Thread(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load thread"})
		return
	}
	c.JSON(http.StatusOK, thread)
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
