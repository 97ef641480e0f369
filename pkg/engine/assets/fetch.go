// Package assets fetches, decodes and caches the images and sounds a trial
// refers to.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Fetcher opens asset references. A reference is either an http(s) URL or a
// path, which is resolved against BaseDir when relative.
type Fetcher struct {
	BaseDir string
	Client  *http.Client
}

// NewFetcher creates a fetcher resolving relative paths against baseDir.
func NewFetcher(baseDir string) *Fetcher {
	return &Fetcher{
		BaseDir: baseDir,
		Client:  http.DefaultClient,
	}
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Open returns a reader for ref. The caller closes it.
func (f *Fetcher) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if ref == "" {
		return nil, fmt.Errorf("open: empty reference")
	}

	if IsRemote(ref) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", ref, err)
		}
		client := f.Client
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", ref, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("open %s: unexpected status %s", ref, resp.Status)
		}
		return resp.Body, nil
	}

	file, err := os.Open(f.Path(ref))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ref, err)
	}
	return file, nil
}

// ReadAll fetches ref completely.
func (f *Fetcher) ReadAll(ctx context.Context, ref string) ([]byte, error) {
	rc, err := f.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}

// Path resolves a local reference to a filesystem path. Any query string
// (such as a cache buster) is dropped.
func (f *Fetcher) Path(ref string) string {
	if i := strings.IndexByte(ref, '?'); i >= 0 {
		ref = ref[:i]
	}
	if filepath.IsAbs(ref) || f.BaseDir == "" {
		return ref
	}
	return filepath.Join(f.BaseDir, ref)
}

// CacheBust appends the timestamp as a query parameter so that the asset is
// fetched again and animated formats restart.
func CacheBust(ref string, now time.Time) string {
	sep := "?"
	if strings.Contains(ref, "?") {
		sep = "&"
	}
	return ref + sep + strconv.FormatInt(now.UnixMilli(), 10)
}

// Ext returns the lower-cased extension of ref, ignoring any query string.
func Ext(ref string) string {
	if i := strings.IndexByte(ref, '?'); i >= 0 {
		ref = ref[:i]
	}
	return strings.ToLower(filepath.Ext(ref))
}
