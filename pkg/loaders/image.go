package loaders

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ImageData holds a decoded 8-bit RGBA raster with its origin at the top-left.
// It satisfies material.PixelSource.
type ImageData struct {
	img *image.NRGBA
}

// LoadImage decodes a PNG, JPEG, GIF, BMP or TIFF file, applying any EXIF orientation
func LoadImage(filename string) (*ImageData, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
	}
	return NewImageData(img), nil
}

// NewImageData wraps an already decoded image
func NewImageData(img image.Image) *ImageData {
	return &ImageData{img: imaging.Clone(img)}
}

// Width returns the image width in pixels
func (d *ImageData) Width() int {
	if d == nil || d.img == nil {
		return 0
	}
	return d.img.Rect.Dx()
}

// Height returns the image height in pixels, or 0 when no image is loaded
func (d *ImageData) Height() int {
	if d == nil || d.img == nil {
		return 0
	}
	return d.img.Rect.Dy()
}

// PixelAt returns the color bytes at (x, y); alpha is ignored
func (d *ImageData) PixelAt(x, y int) (r, g, b uint8) {
	i := d.img.PixOffset(x+d.img.Rect.Min.X, y+d.img.Rect.Min.Y)
	return d.img.Pix[i], d.img.Pix[i+1], d.img.Pix[i+2]
}
