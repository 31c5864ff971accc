// Package bigchar renders Thai syllables as large block art using half-block characters.
package bigchar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// fontPaths lists common locations of fonts with Thai coverage.
var fontPaths = []string{
	// Linux
	"/usr/share/fonts/truetype/noto/NotoSansThai-Regular.ttf",
	"/usr/share/fonts/opentype/noto/NotoSansThai-Regular.ttf",
	"/usr/share/fonts/noto/NotoSansThai-Regular.ttf",
	"/usr/share/fonts/google-noto/NotoSansThai-Regular.ttf",
	"/usr/share/fonts/truetype/tlwg/Loma.ttf",
	"/usr/share/fonts/truetype/tlwg/Garuda.ttf",
	"/usr/share/fonts/truetype/tlwg/Norasi.ttf",
	// macOS
	"/System/Library/Fonts/Supplemental/Thonburi.ttc",
	"/System/Library/Fonts/Thonburi.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Windows
	"C:\\Windows\\Fonts\\tahoma.ttf",
	"C:\\Windows\\Fonts\\LeelawUI.ttf",
}

// probe must have a glyph in any font we accept.
const probe = 'ก'

const (
	fontSize  = 64
	padding   = 8
	threshold = uint8(40) // brightness at which a pixel counts as ink
)

// Renderer draws text with one font face and caches the results.
type Renderer struct {
	face font.Face

	mu    sync.Mutex
	cache map[string]string
}

// New returns a renderer drawing with face.
func New(face font.Face) *Renderer {
	return &Renderer{face: face, cache: make(map[string]string)}
}

// NewFromFile loads a .ttf, .otf or .ttc file. The first font in it with a
// glyph for need wins.
func NewFromFile(path string, need rune) (*Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fonts []*opentype.Font
	if coll, err := opentype.ParseCollection(data); err == nil {
		for i := 0; i < coll.NumFonts(); i++ {
			if f, err := coll.Font(i); err == nil {
				fonts = append(fonts, f)
			}
		}
	} else if f, err := opentype.Parse(data); err == nil {
		fonts = append(fonts, f)
	} else {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var buf sfnt.Buffer
	for _, f := range fonts {
		if idx, err := f.GlyphIndex(&buf, need); err != nil || idx == 0 {
			continue
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: fontSize, DPI: 72})
		if err != nil {
			continue
		}
		return New(face), nil
	}
	return nil, fmt.Errorf("%s has no glyph for %q", path, need)
}

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
)

// Default returns the renderer for the first installed Thai font, or nil.
func Default() *Renderer {
	defaultOnce.Do(func() {
		for _, path := range fontPaths {
			if r, err := NewFromFile(path, probe); err == nil {
				defaultRenderer = r
				return
			}
		}
	})
	return defaultRenderer
}

// IsAvailable reports whether a Thai font was found.
func IsAvailable() bool {
	return Default() != nil
}

// GetCached renders text with the default renderer. It returns "" when no
// Thai font is installed.
func GetCached(text string, cols, rows int) string {
	r := Default()
	if r == nil {
		return ""
	}
	return r.Cached(text, cols, rows)
}

// Cached returns a previous rendering of text at this size or renders it.
func (r *Renderer) Cached(text string, cols, rows int) string {
	key := fmt.Sprintf("%s\x00%dx%d", text, cols, rows)

	r.mu.Lock()
	defer r.mu.Unlock()

	if out, ok := r.cache[key]; ok {
		return out
	}
	out := r.Render(text, cols, rows)
	r.cache[key] = out
	return out
}

// Render draws the whole string, combining marks included, into a cols x rows
// grid of half-block characters.
func (r *Renderer) Render(text string, cols, rows int) string {
	if text == "" || r == nil || r.face == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	// Marks stack above and below the base line, so measure the string
	// rather than a single glyph.
	bounds, advance := font.BoundString(r.face, text)
	inkWidth := max((bounds.Max.X - bounds.Min.X).Ceil(), advance.Ceil())
	inkHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	srcWidth := max(inkWidth+padding*2, fontSize)
	srcHeight := max(inkHeight+padding*2, fontSize)

	src := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	x := (srcWidth-inkWidth)/2 - bounds.Min.X.Floor()
	y := (srcHeight-inkHeight)/2 - bounds.Min.Y.Floor()

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)

	// rows*2 because each cell holds two vertical pixels
	scaled := scaleDown(src, cols, rows*2)
	return imageToHalfBlocks(scaled, cols, rows)
}

// scaleDown scales a grayscale image using area averaging.
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Dx()
	srcHeight := src.Bounds().Dy()

	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := min(max(int(float64(dx+1)*xRatio), sx1+1), srcWidth)
			sy2 := min(max(int(float64(dy+1)*yRatio), sy1+1), srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}

			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}

	return dst
}

// imageToHalfBlocks converts a grayscale image to half-block art.
func imageToHalfBlocks(img *image.Gray, cols, rows int) string {
	var out strings.Builder

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			topOn := brightness(img, col, row*2) > threshold
			bottomOn := brightness(img, col, row*2+1) > threshold

			switch {
			case topOn && bottomOn:
				out.WriteRune('█')
			case topOn:
				out.WriteRune('▀')
			case bottomOn:
				out.WriteRune('▄')
			default:
				out.WriteRune(' ')
			}
		}
		if row < rows-1 {
			out.WriteRune('\n')
		}
	}

	return out.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return 0
	}
	return img.GrayAt(x, y).Y
}
