package imaging

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestDimensions(t *testing.T) {
	w, h, err := Dimensions(encodePNG(t, 640, 480))
	require.NoError(t, err)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestDimensionsRejectsGarbage(t *testing.T) {
	_, _, err := Dimensions([]byte("not an image"))
	assert.Error(t, err)
}

func TestThumbnailIsSquareJPEG(t *testing.T) {
	out, err := Thumbnail(encodePNG(t, 800, 600), 300)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestThumbnailDefaultsSize(t *testing.T) {
	out, err := Thumbnail(encodePNG(t, 100, 100), 0)
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, DefaultThumbSize, cfg.Width)
}

func TestCoverRect(t *testing.T) {
	cases := []struct {
		name string
		src  image.Rectangle
		want image.Rectangle
	}{
		{"wide source crops sides", image.Rect(0, 0, 400, 200), image.Rect(100, 0, 300, 200)},
		{"tall source crops top and bottom", image.Rect(0, 0, 200, 400), image.Rect(0, 100, 200, 300)},
		{"square source untouched", image.Rect(0, 0, 300, 300), image.Rect(0, 0, 300, 300)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CoverRect(tc.src, 300, 300)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoverRectDegenerate(t *testing.T) {
	src := image.Rect(0, 0, 0, 0)
	assert.Equal(t, src, CoverRect(src, 300, 300))
}
