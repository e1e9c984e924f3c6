package mandel

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ChannelsPerPixel is the number of color channels in a pixel.
// The kernel writes 4 float32 values per pixel (RGBA); the pixmap
// stores the same 4 channels as bytes.
const ChannelsPerPixel = 4

// Pixmap represents a rectangular RGBA8 pixel buffer.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates an empty pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*ChannelsPerPixel),
	}
}

// NewPixmapFromFloats builds a pixmap from raw float pixel data as
// written by the compute kernel: 4 float32 channels per pixel, row
// major, values nominally in [0, 1]. Each channel is clamped to [0, 1]
// and rounded to a byte, so out-of-range kernel output saturates
// instead of wrapping.
func NewPixmapFromFloats(width, height int, pixels []float32) (*Pixmap, error) {
	want := width * height * ChannelsPerPixel
	if len(pixels) != want {
		return nil, fmt.Errorf("mandel: pixel data has %d floats, want %d for %dx%d", len(pixels), want, width, height)
	}

	pm := NewPixmap(width, height)
	for i, v := range pixels {
		pm.data[i] = channelByte(v)
	}
	return pm, nil
}

// channelByte converts one float channel to a byte: clamp to [0, 1],
// then round to the nearest of the 256 steps.
func channelByte(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// Save writes the pixmap to an image file, choosing the encoder from
// the path extension: .png or .bmp.
func (p *Pixmap) Save(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return p.SavePNG(path)
	case ".bmp":
		return p.SaveBMP(path)
	default:
		return fmt.Errorf("mandel: unsupported image extension %q", ext)
	}
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// SaveBMP saves the pixmap to a BMP file.
func (p *Pixmap) SaveBMP(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return bmp.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * ChannelsPerPixel
	return color.RGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
