package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"archive-service/internal/media"
	"archive-service/internal/mocks"
)

func setupMediaRouter(handler *MediaHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/media/*uri", handler.Redirect)
	return r
}

func TestMediaRedirect(t *testing.T) {
	resolver := new(mocks.ResolverMock)
	router := setupMediaRouter(NewMediaHandler(resolver))

	resolver.On("Resolve", mock.Anything, "./media/abc.jpeg").
		Return("https://cdn.example.com/media/abc.jpeg", nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/media/abc.jpeg", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "https://cdn.example.com/media/abc.jpeg", rec.Header().Get("Location"))
	resolver.AssertExpectations(t)
}

func TestMediaRedirectBadURI(t *testing.T) {
	resolver := new(mocks.ResolverMock)
	router := setupMediaRouter(NewMediaHandler(resolver))

	resolver.On("Resolve", mock.Anything, "./media/evil.jpeg").
		Return("", media.ErrBadURI).Once()

	req := httptest.NewRequest(http.MethodGet, "/media/evil.jpeg", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resolver.AssertExpectations(t)
}
