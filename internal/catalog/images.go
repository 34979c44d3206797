package catalog

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"sync"
	"time"

	// Register decoders for product/logo image formats.
	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
)

// Images are downsampled to fit this bounding box before caching.
const imageBoundPx = 400

// CachedImage is a decoded, downsampled product image ready for embedding.
// PNG holds re-encoded bytes so one cached entry can be registered with any
// number of documents.
type CachedImage struct {
	PNG    []byte
	Width  int
	Height int
}

// ImageSource yields a renderable image for a product image URL, or nothing.
type ImageSource interface {
	Get(ctx context.Context, url string) *CachedImage
}

// ImageCache fetches remote images over HTTP and memoizes the result by URL
// for the life of the process, including failures: a URL that errored once is
// never retried in the same run. The cache exists so the branded and unbranded
// rendering passes of one job do not fetch every image twice.
//
// There is no eviction. Growth is bounded in practice by the size of the
// catalogs a deployment serves; see DESIGN.md.
type ImageCache struct {
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	entries map[string]*CachedImage // nil value records a failed fetch
}

// ImageCacheOptions groups dependencies for NewImageCache.
type ImageCacheOptions struct {
	// Client is the HTTP client used for fetches. Defaults to http.DefaultClient.
	Client *http.Client
	// Timeout bounds each individual fetch.
	Timeout time.Duration
	// Logger is optional.
	Logger *slog.Logger
}

// NewImageCache constructs an ImageCache.
func NewImageCache(opts ImageCacheOptions) *ImageCache {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageCache{
		client:  client,
		timeout: timeout,
		logger:  logger.With("component", "image_cache"),
		entries: make(map[string]*CachedImage),
	}
}

// Get returns the cached image for url, fetching it on first use. An empty
// url returns nil immediately without touching the network. Any fetch or
// decode failure is cached as a negative entry and returns nil for the rest
// of the run.
func (c *ImageCache) Get(ctx context.Context, url string) *CachedImage {
	if url == "" {
		return nil
	}

	c.mu.Lock()
	if img, ok := c.entries[url]; ok {
		c.mu.Unlock()
		return img
	}
	c.mu.Unlock()

	img, err := c.fetch(ctx, url)
	if err != nil {
		c.logger.WarnContext(ctx, "image fetch failed", "url", url, "error", err)
		img = nil
	}

	c.mu.Lock()
	c.entries[url] = img
	c.mu.Unlock()
	return img
}

// Len returns the number of cached entries, negative results included.
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ImageCache) fetch(ctx context.Context, url string) (*CachedImage, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: unexpected status %d", resp.StatusCode)
	}

	src, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return Downsample(src, imageBoundPx), nil
}

// Downsample scales src to fit within a bound×bound box, preserving aspect
// ratio, and re-encodes it as PNG. Images already inside the box are
// re-encoded unscaled.
func Downsample(src image.Image, bound int) *CachedImage {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w > bound || h > bound {
		if w >= h {
			h = h * bound / w
			w = bound
		} else {
			w = w * bound / h
			h = bound
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		// Encoding an in-memory RGBA image only fails on writer errors,
		// which bytes.Buffer does not produce.
		return nil
	}
	return &CachedImage{PNG: buf.Bytes(), Width: w, Height: h}
}
