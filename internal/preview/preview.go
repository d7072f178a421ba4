// Package preview decides what the secondary pane shows for the hovered
// entry: a one-level listing for directories, verbatim text, a halfblock
// rendering of an image, or nothing.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/LFroesch/gravily/internal/logger"
)

type Kind int

const (
	KindNone Kind = iota
	KindListing
	KindText
	KindImage
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindListing:
		return "listing"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindError:
		return "error"
	}
	return "none"
}

// Preview is the content of the secondary pane for one path
type Preview struct {
	Kind Kind
	Path string

	Entries []string // KindListing
	Text    string   // KindText
	Cells   [][]Cell // KindImage
	Err     error    // KindError
}

const (
	// DefaultMaxPixels bounds the width*height of an image that will be
	// decoded. The header is checked before any pixel buffer is allocated.
	DefaultMaxPixels = 40_000_000

	// MaxCachedSide is the longest side, in pixels, of a cached image.
	// Larger images are shrunk once after decoding.
	MaxCachedSide = 1024
)

// ErrImageTooLarge is returned for images whose header exceeds MaxPixels
var ErrImageTooLarge = errors.New("image too large to preview")

// Renderer classifies paths and rasterizes images. Decoded images are kept
// in a cache, shrunk to MaxCachedSide, so moving the cursor back onto an
// image does not decode it again.
type Renderer struct {
	MaxTextBytes int64
	MaxPixels    int64
	Filter       string

	images *cache.Cache
}

// NewRenderer creates a renderer whose decoded images expire after ttl.
// A zero ttl disables caching.
func NewRenderer(maxTextBytes int64, ttl time.Duration, filter string) *Renderer {
	r := &Renderer{
		MaxTextBytes: maxTextBytes,
		MaxPixels:    DefaultMaxPixels,
		Filter:       filter,
	}
	if ttl > 0 {
		r.images = cache.New(ttl, 2*ttl)
	}
	return r
}

// Render builds the preview of path for a pane of width x height cells.
// hovering is false when nothing is selected, in which case the preview
// is suppressed.
func (r *Renderer) Render(path string, hovering bool, width, height int) Preview {
	if !hovering {
		return Preview{Kind: KindNone, Path: path}
	}

	info, err := os.Stat(path)
	if err != nil {
		return Preview{
			Kind: KindError,
			Path: path,
			Err:  fmt.Errorf("Error getting metadata of path %s: %w", path, err),
		}
	}

	if info.IsDir() {
		entries, err := listNames(path)
		if err != nil {
			return Preview{Kind: KindError, Path: path, Err: err}
		}
		return Preview{Kind: KindListing, Path: path, Entries: entries}
	}

	if !info.Mode().IsRegular() {
		return Preview{Kind: KindNone, Path: path}
	}

	var data []byte
	if r.MaxTextBytes <= 0 || info.Size() <= r.MaxTextBytes {
		data, err = os.ReadFile(path)
		if err != nil {
			logger.Debug("Preview read failed for %s: %v", path, err)
			return Preview{Kind: KindNone, Path: path}
		}
		if utf8.Valid(data) {
			return Preview{Kind: KindText, Path: path, Text: string(data)}
		}
	}

	img := r.decode(path, info, data)
	if img == nil {
		return Preview{Kind: KindNone, Path: path}
	}
	return Preview{
		Kind:  KindImage,
		Path:  path,
		Cells: Halfblock(img, width, height, r.Filter),
	}
}

// decode returns the image at path, or nil when it is not one. data is the
// file content when it has already been read.
func (r *Renderer) decode(path string, info os.FileInfo, data []byte) image.Image {
	key := cacheKey(path, info)
	if r.images != nil {
		if v, ok := r.images.Get(key); ok {
			img, _ := v.(image.Image)
			return img
		}
	}

	var img image.Image
	var err error
	if data != nil {
		img, err = r.decodeLimited(bytes.NewReader(data))
	} else {
		img, err = r.decodeFile(path)
	}
	if err != nil {
		if errors.Is(err, ErrImageTooLarge) {
			logger.Debug("Preview skipped for %s: %v", path, err)
		}
		img = nil
	} else {
		img = Shrink(img, MaxCachedSide, r.Filter)
	}

	// Failures are cached as well so binary files are only probed once
	if r.images != nil {
		r.images.SetDefault(key, img)
	}
	return img
}

// CachedImages reports how many decode results are currently held
func (r *Renderer) CachedImages() int {
	if r.images == nil {
		return 0
	}
	return r.images.ItemCount()
}

func (r *Renderer) decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return r.decodeLimited(f)
}

// decodeLimited reads the image header first and refuses to decode
// anything larger than MaxPixels.
func (r *Renderer) decodeLimited(rs io.ReadSeeker) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(rs)
	if err != nil {
		return nil, err
	}
	if r.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > r.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(rs)
	return img, err
}

func cacheKey(path string, info os.FileInfo) string {
	return fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
}

// listNames returns the names of path's children in enumeration order
func listNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
