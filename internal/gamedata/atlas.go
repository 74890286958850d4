package gamedata

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"blockworld/internal/registry"
)

const (
	// tileSize is the pixel edge of one texture tile in the atlas.
	tileSize = 16
	// atlasTilesPerRow fixes the atlas grid width.
	atlasTilesPerRow = 16
)

// atlasBuilder lays texture tiles out on a fixed grid and hands out
// normalized rectangles. Proper bin packing lives in the texture-packing
// collaborator; definition files here only carry flat color tiles.
type atlasBuilder struct {
	img   *image.RGBA
	rects map[string]registry.TextureRect
	next  int
}

func newAtlasBuilder(tileCount int) *atlasBuilder {
	rows := (tileCount + atlasTilesPerRow - 1) / atlasTilesPerRow
	if rows < 1 {
		rows = 1
	}
	return &atlasBuilder{
		img:   image.NewRGBA(image.Rect(0, 0, atlasTilesPerRow*tileSize, rows*tileSize)),
		rects: make(map[string]registry.TextureRect),
	}
}

// add registers a named solid-color tile and returns its atlas rect.
// Adding the same name twice returns the existing rect.
func (b *atlasBuilder) add(name string, c color.RGBA) registry.TextureRect {
	if r, ok := b.rects[name]; ok {
		return r
	}
	col := b.next % atlasTilesPerRow
	row := b.next / atlasTilesPerRow
	b.next++

	dst := image.Rect(col*tileSize, row*tileSize, (col+1)*tileSize, (row+1)*tileSize)
	draw.Draw(b.img, dst, image.NewUniform(c), image.Point{}, draw.Src)

	bounds := b.img.Bounds()
	r := registry.TextureRect{
		X:      float32(dst.Min.X) / float32(bounds.Dx()),
		Y:      float32(dst.Min.Y) / float32(bounds.Dy()),
		Width:  float32(tileSize) / float32(bounds.Dx()),
		Height: float32(tileSize) / float32(bounds.Dy()),
	}
	b.rects[name] = r
	return r
}

func (b *atlasBuilder) rect(name string) (registry.TextureRect, bool) {
	r, ok := b.rects[name]
	return r, ok
}

// parseColor parses "#rrggbb" or "#rrggbbaa".
func parseColor(s string) (color.RGBA, error) {
	var r, g, b, a uint8
	a = 0xff
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("gamedata: bad color %q: %w", s, err)
		}
	case 9:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return color.RGBA{}, fmt.Errorf("gamedata: bad color %q: %w", s, err)
		}
	default:
		return color.RGBA{}, fmt.Errorf("gamedata: bad color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
