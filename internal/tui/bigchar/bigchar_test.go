package bigchar

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func goRenderer(t *testing.T) *Renderer {
	t.Helper()
	f, err := opentype.Parse(goregular.TTF)
	require.NoError(t, err)
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: fontSize, DPI: 72})
	require.NoError(t, err)
	return New(face)
}

func TestRender_Shape(t *testing.T) {
	out := goRenderer(t).Render("A", 20, 10)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	for _, l := range lines {
		assert.Equal(t, 20, len([]rune(l)))
	}
	assert.True(t, strings.ContainsAny(out, "█▀▄"), "expected some ink")
}

func TestRender_Empty(t *testing.T) {
	r := goRenderer(t)
	assert.Empty(t, r.Render("", 10, 5))
	assert.Empty(t, r.Render("A", 0, 5))

	var nilRenderer *Renderer
	assert.Empty(t, nilRenderer.Render("A", 10, 5))
}

func TestCached(t *testing.T) {
	r := goRenderer(t)
	first := r.Cached("Ab", 16, 8)
	assert.Equal(t, first, r.Cached("Ab", 16, 8))
	assert.Len(t, r.cache, 1)

	r.Cached("Ab", 8, 4)
	assert.Len(t, r.cache, 2)
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "go.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0644))

	r, err := NewFromFile(path, 'A')
	require.NoError(t, err)
	assert.NotEmpty(t, r.Render("A", 10, 5))

	// Go Regular has no Thai glyphs.
	_, err = NewFromFile(path, probe)
	assert.Error(t, err)

	_, err = NewFromFile(filepath.Join(dir, "missing.ttf"), 'A')
	assert.Error(t, err)

	junk := filepath.Join(dir, "junk.ttf")
	require.NoError(t, os.WriteFile(junk, []byte("not a font"), 0644))
	_, err = NewFromFile(junk, 'A')
	assert.Error(t, err)
}

func TestImageToHalfBlocks(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 4))
	img.SetGray(0, 0, color.Gray{Y: 255}) // top of cell (0,0)
	img.SetGray(1, 1, color.Gray{Y: 255}) // bottom of cell (1,0)
	img.SetGray(0, 2, color.Gray{Y: 255}) // both halves of cell (0,1)
	img.SetGray(0, 3, color.Gray{Y: 255})

	assert.Equal(t, "▀▄\n█ ", imageToHalfBlocks(img, 2, 2))
}

func TestScaleDown(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for x := 0; x < 2; x++ {
		for y := 0; y < 4; y++ {
			src.SetGray(x, y, color.Gray{Y: 200})
		}
	}

	dst := scaleDown(src, 2, 2)
	assert.Equal(t, uint8(200), dst.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), dst.GrayAt(1, 1).Y)
}
