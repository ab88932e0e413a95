package media

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathResolver(t *testing.T) {
	resolver := NewPathResolver("")

	url, err := resolver.Resolve(context.Background(), "./media/abc.jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/media/abc.jpeg", url)
}

func TestPathResolverWithBase(t *testing.T) {
	resolver := NewPathResolver("https://cdn.example.com/")

	url, err := resolver.Resolve(context.Background(), "./media/abc.jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/media/abc.jpeg", url)
}

func TestPathResolverRejectsTraversal(t *testing.T) {
	resolver := NewPathResolver("")

	_, err := resolver.Resolve(context.Background(), "./media/../../etc/passwd")
	assert.ErrorIs(t, err, ErrBadURI)

	_, err = resolver.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrBadURI)
}
