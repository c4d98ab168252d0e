package output

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// Thumbnail scales img to width pixels wide, keeping the aspect ratio
func Thumbnail(img image.Image, width int) image.Image {
	return resize.Resize(uint(width), 0, img, resize.Bilinear)
}

// ThumbnailPath returns the PNG preview path next to an output path,
// e.g. out/render.ppm -> out/render_thumb.png
func ThumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb.png"
}

// SaveThumbnail writes a width-pixel PNG preview of img next to path and returns its location
func SaveThumbnail(path string, img image.Image, width int) (string, error) {
	thumbPath := ThumbnailPath(path)
	if err := Save(thumbPath, Thumbnail(img, width)); err != nil {
		return "", err
	}
	return thumbPath, nil
}
