// Package imagecache resolves image keys to bitmaps, loading each key at most once.
//
// A Cache is owned by one display session and is not safe for concurrent use:
// Resolve and Preload must be called from the goroutine that owns it. Missing or
// broken assets never surface as errors; they are replaced by a placeholder that
// is cached under the failing key so the load is never retried.
package imagecache

import (
	"context"
	"image"
	"image/color"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/olivierh59500/gridview/internal/logger"
)

// Placeholder geometry
const (
	PlaceholderSize = 32
)

// PlaceholderColor fills the fallback circle.
var PlaceholderColor = color.RGBA{255, 0, 0, 255}

// Loader fetches and decodes the asset named by key.
// Loaders used with Preload must be safe for concurrent use.
type Loader interface {
	Load(key string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func(key string) (image.Image, error)

func (f LoaderFunc) Load(key string) (image.Image, error) { return f(key) }

// Option configures a Cache
type Option func(*Cache)

// WithUpload converts every image, placeholder included, before it is cached.
// The display uses it to turn decoded images into GPU textures once.
func WithUpload(fn func(image.Image) image.Image) Option {
	return func(c *Cache) {
		c.upload = fn
	}
}

// WithLogger sets the logger used to report substituted assets.
func WithLogger(l *log.Logger) Option {
	return func(c *Cache) {
		c.log = l
	}
}

// WithPreloadWorkers bounds the decoders running during Preload.
func WithPreloadWorkers(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.workers = n
		}
	}
}

// Cache memoizes key -> bitmap for its whole lifetime. Entries are never evicted.
type Cache struct {
	loader      Loader
	upload      func(image.Image) image.Image
	log         *log.Logger
	workers     int
	entries     map[string]image.Image
	placeholder image.Image
	attempts    int
}

// New creates an empty cache backed by loader.
func New(loader Loader, opts ...Option) *Cache {
	c := &Cache{
		loader:  loader,
		log:     logger.Discard(),
		workers: runtime.NumCPU(),
		entries: make(map[string]image.Image),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the bitmap for key. A cached key costs no I/O; an unknown key is
// loaded once and a failing key is answered with the placeholder from then on.
func (c *Cache) Resolve(key string) image.Image {
	if img, ok := c.entries[key]; ok {
		return img
	}
	c.attempts++
	img, err := c.loader.Load(key)
	return c.store(key, img, err)
}

// Preload resolves every key not cached yet, decoding up to the worker limit in parallel.
// Only ctx cancellation is reported; keys skipped by a cancellation stay unloaded.
func (c *Cache) Preload(ctx context.Context, keys []string) error {
	var pending []string
	seen := make(map[string]bool)
	for _, k := range keys {
		if _, ok := c.entries[k]; ok || seen[k] {
			continue
		}
		seen[k] = true
		pending = append(pending, k)
	}
	if len(pending) == 0 {
		return nil
	}

	type result struct {
		img  image.Image
		err  error
		done bool
	}
	results := make([]result, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, key := range pending {
		i, key := i, key
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := c.loader.Load(key)
			results[i] = result{img: img, err: err, done: true}
			return nil
		})
	}
	err := g.Wait()

	// Store on the owner's goroutine; workers never touch the map.
	for i, key := range pending {
		r := results[i]
		if !r.done {
			continue
		}
		c.attempts++
		c.store(key, r.img, r.err)
	}
	c.log.Debug("images preloaded", "requested", len(keys), "loaded", len(pending), "cached", len(c.entries))
	return err
}

// Len is the number of cached keys.
func (c *Cache) Len() int { return len(c.entries) }

// Attempts counts loader calls made so far.
func (c *Cache) Attempts() int { return c.attempts }

func (c *Cache) store(key string, img image.Image, err error) image.Image {
	if err != nil || img == nil {
		c.log.Debug("image substituted by placeholder", "key", key, "err", err)
		img = c.fallback()
	} else if c.upload != nil {
		img = c.upload(img)
	}
	c.entries[key] = img
	return img
}

// fallback builds the placeholder once per cache.
func (c *Cache) fallback() image.Image {
	if c.placeholder == nil {
		var img image.Image = Placeholder()
		if c.upload != nil {
			img = c.upload(img)
		}
		c.placeholder = img
	}
	return c.placeholder
}

// Placeholder draws a PlaceholderSize square with a filled PlaceholderColor circle
// on a transparent background.
func Placeholder() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PlaceholderSize, PlaceholderSize))
	r := float64(PlaceholderSize) / 2
	for y := 0; y < PlaceholderSize; y++ {
		for x := 0; x < PlaceholderSize; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, PlaceholderColor)
			}
		}
	}
	return img
}
