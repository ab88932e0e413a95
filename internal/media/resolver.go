package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrBadURI reports a media URI that does not point inside the export's media
// directory.
var ErrBadURI = errors.New("bad media uri")

// Resolver turns an export-relative media URI (e.g. "./media/uuid.jpeg") into
// a fetchable URL.
type Resolver interface {
	Resolve(ctx context.Context, uri string) (string, error)
}

// PathResolver maps media URIs onto a public base URL, for serving straight
// from disk or a CDN prefix.
type PathResolver struct {
	baseURL string
}

// NewPathResolver constructs a PathResolver. baseURL may be empty to serve
// from the site root, matching the export's ./media/ layout.
func NewPathResolver(baseURL string) *PathResolver {
	return &PathResolver{baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (r *PathResolver) Resolve(_ context.Context, uri string) (string, error) {
	key, err := storageKey(uri)
	if err != nil {
		return "", err
	}
	return r.baseURL + "/" + key, nil
}

// storageKey normalizes an export URI to its object key, rejecting anything
// that escapes the media directory.
func storageKey(uri string) (string, error) {
	key := strings.TrimPrefix(uri, "./")
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrBadURI, uri)
	}
	return key, nil
}
