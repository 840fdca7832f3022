// Package imaging generates fixed-aspect thumbnails for uploaded images.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// DefaultThumbSize is the width and height of generated thumbnails.
const DefaultThumbSize = 300

// JPEGQuality is the compression quality for re-encoded thumbnails.
const JPEGQuality = 85

// Dimensions probes pixel dimensions without fully decoding the image.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("probing image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Thumbnail decodes the image and produces a size×size cover-fit thumbnail:
// the source is center-cropped to a square and scaled down, then re-encoded
// as JPEG.
func Thumbnail(data []byte, size int) ([]byte, error) {
	if size < 1 {
		size = DefaultThumbSize
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, CoverRect(img.Bounds(), size, size), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// CoverRect returns the centered source rectangle whose aspect ratio matches
// the target and which covers as much of the source as possible.
func CoverRect(src image.Rectangle, targetW, targetH int) image.Rectangle {
	w := src.Dx()
	h := src.Dy()
	if w < 1 || h < 1 || targetW < 1 || targetH < 1 {
		return src
	}

	// Compare aspect ratios without floating point: w/h vs targetW/targetH.
	if w*targetH > h*targetW {
		// Source is wider than the target: crop horizontally.
		cropW := h * targetW / targetH
		x0 := src.Min.X + (w-cropW)/2
		return image.Rect(x0, src.Min.Y, x0+cropW, src.Max.Y)
	}
	// Source is taller (or equal): crop vertically.
	cropH := w * targetH / targetW
	y0 := src.Min.Y + (h-cropH)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+cropH)
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
	image.RegisterFormat("gif", "GIF8", gif.Decode, gif.DecodeConfig)
	image.RegisterFormat("webp", "RIFF????WEBPVP8", webp.Decode, webp.DecodeConfig)
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
}
