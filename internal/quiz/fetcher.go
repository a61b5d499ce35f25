package quiz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/quizmark/quizmark/internal/store"
)

// Fetcher retrieves raw question-document text from a source location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (string, error)
}

// HTTPFetcher fetches documents over HTTP(S). Any status outside 200-399 is
// an error; the controller treats those as skippable, not fatal.
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, location string) (string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", location, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch %s: status %d", location, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", location, err)
	}
	return string(body), nil
}

// FileFetcher reads documents from the local filesystem.
type FileFetcher struct{}

func (FileFetcher) Fetch(_ context.Context, location string) (string, error) {
	b, err := os.ReadFile(location)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", location, err)
	}
	return string(b), nil
}

// SchemeFetcher routes each location by scheme: http and https go to HTTP,
// everything else is treated as a local path.
type SchemeFetcher struct {
	HTTP Fetcher
	File Fetcher
}

func (f SchemeFetcher) Fetch(ctx context.Context, location string) (string, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return f.HTTP.Fetch(ctx, location)
	}
	return f.File.Fetch(ctx, location)
}

// CachedFetcher is a read-through cache around another fetcher. Documents
// younger than TTL are served from the cache without refetching.
type CachedFetcher struct {
	Next  Fetcher
	Cache *store.Store
	TTL   time.Duration
}

func (f *CachedFetcher) Fetch(ctx context.Context, location string) (string, error) {
	body, fetchedAt, found, err := f.Cache.Get(location)
	if err != nil {
		slog.Warn("document cache read failed", "location", location, "error", err)
	} else if found && time.Since(fetchedAt) < f.TTL {
		return body, nil
	}

	body, err = f.Next.Fetch(ctx, location)
	if err != nil {
		return "", err
	}
	if putErr := f.Cache.Put(location, body); putErr != nil {
		slog.Warn("document cache write failed", "location", location, "error", putErr)
	}
	return body, nil
}
