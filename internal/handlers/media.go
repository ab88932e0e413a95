package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"archive-service/internal/media"
	"archive-service/internal/observability"
)

// MediaHandler redirects export-relative media URIs to their resolved
// locations.
type MediaHandler struct {
	resolver media.Resolver
}

// NewMediaHandler builds a MediaHandler.
func NewMediaHandler(resolver media.Resolver) *MediaHandler {
	return &MediaHandler{resolver: resolver}
}

// Redirect resolves the media URI and answers with a temporary redirect.
func (h *MediaHandler) Redirect(c *gin.Context) {
	// The wildcard carries the filename part of an export URI like
	// "./media/uuid.jpeg"; rebuild the full relative URI for the resolver.
	uri := "./media" + c.Param("uri")

	url, err := h.resolver.Resolve(c.Request.Context(), uri)
	if err != nil {
		if errors.Is(err, media.ErrBadURI) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media uri"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve media"})
		return
	}

	observability.IncMediaRedirect()
	c.Redirect(http.StatusFound, url)
}
