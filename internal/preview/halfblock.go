package preview

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// UpperHalf is drawn in every image cell: the foreground paints the top
// pixel and the background the bottom one.
const UpperHalf = '▀'

// Resampling filters accepted by Halfblock
const (
	FilterNearest  = "nearest"
	FilterBilinear = "bilinear"
)

// Cell is one terminal character of a rasterized image
type Cell struct {
	FG    color.RGBA
	BG    color.RGBA
	Glyph rune
}

// Halfblock resamples src to w x 2h pixels and packs each vertical pair
// into one cell. The result always has h rows of w cells.
func Halfblock(src image.Image, w, h int, filter string) [][]Cell {
	if w <= 0 || h <= 0 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, 2*h))
	interpolator(filter).Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return Quantize(dst)
}

// Shrink scales src down so that neither side exceeds maxSide, keeping the
// aspect ratio. Images already within bounds are returned as is.
func Shrink(src image.Image, maxSide int, filter string) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}

	nw, nh := maxSide, maxSide
	if w >= h {
		nh = max(h*maxSide/w, 1)
	} else {
		nw = max(w*maxSide/h, 1)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	interpolator(filter).Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Quantize packs the rows of img two at a time. When the height is odd the
// last row is paired with itself.
func Quantize(img image.Image) [][]Cell {
	b := img.Bounds()
	w, rows := b.Dx(), (b.Dy()+1)/2
	if w <= 0 || rows <= 0 {
		return nil
	}

	grid := make([][]Cell, rows)
	for y := 0; y < rows; y++ {
		line := make([]Cell, w)
		top := b.Min.Y + 2*y
		bottom := top + 1
		if bottom >= b.Max.Y {
			bottom = top
		}
		for x := 0; x < w; x++ {
			sx := b.Min.X + x
			line[x] = Cell{
				FG:    toRGBA(img.At(sx, top)),
				BG:    toRGBA(img.At(sx, bottom)),
				Glyph: UpperHalf,
			}
		}
		grid[y] = line
	}
	return grid
}

func interpolator(filter string) draw.Interpolator {
	if filter == FilterBilinear {
		return draw.ApproxBiLinear
	}
	return draw.NearestNeighbor
}

// toRGBA drops alpha so transparent pixels render against black
func toRGBA(c color.Color) color.RGBA {
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
}
