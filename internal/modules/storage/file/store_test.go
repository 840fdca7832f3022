package file

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["image"][0]
}

func TestStoreSavePNG(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, zap.NewNop())

	info, err := store.Save(multipartHeader(t, "photo.png", pngBytes(t, 40, 30)))
	require.NoError(t, err)

	assert.Equal(t, "photo.png", info.OriginalName)
	assert.Equal(t, "image/png", info.MimeType)
	assert.Equal(t, 40, info.Width)
	assert.Equal(t, 30, info.Height)
	assert.Len(t, filepath.Ext(info.FileName), 4)
	assert.FileExists(t, filepath.Join(dir, info.FileName))

	require.NotEmpty(t, info.ThumbName)
	assert.Equal(t, ThumbPrefix+info.FileName, info.ThumbName)
	assert.FileExists(t, filepath.Join(dir, info.ThumbName))
}

func TestStoreSaveExtensionFollowsSniffedType(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, zap.NewNop())

	// A mislabelled upload must be stored under its real type so it is
	// later served as an image, not as text.
	info, err := store.Save(multipartHeader(t, "photo.txt", pngBytes(t, 12, 12)))
	require.NoError(t, err)

	assert.Equal(t, "image/png", info.MimeType)
	assert.Equal(t, ".png", filepath.Ext(info.FileName))
	assert.FileExists(t, filepath.Join(dir, info.FileName))
}

func TestExtFor(t *testing.T) {
	cases := []struct {
		mime string
		name string
		want string
	}{
		{"image/png", "photo.txt", ".png"},
		{"image/jpeg", "pic.jpeg", ".jpg"},
		{"image/webp", "anything", ".webp"},
		{"application/unknown", "scan.tiff", ".tiff"},
		{"application/unknown", "noext", ".jpg"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extFor(tc.mime, tc.name), "mime %q name %q", tc.mime, tc.name)
	}
}

func TestStoreSaveRejectsNonImage(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	_, err := store.Save(multipartHeader(t, "notes.txt", []byte("just some text content here")))
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Reason, "JPEG")
}

func TestStoreSaveRejectsEmpty(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	_, err := store.Save(multipartHeader(t, "empty.png", nil))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestStoreDeleteRemovesBothFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, zap.NewNop())

	info, err := store.Save(multipartHeader(t, "photo.png", pngBytes(t, 16, 16)))
	require.NoError(t, err)

	store.Delete(info)

	_, err = os.Stat(filepath.Join(dir, info.FileName))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, info.ThumbName))
	assert.True(t, os.IsNotExist(err))

	// Deleting again must not panic on missing files.
	store.Delete(info)
	store.Delete(nil)
}

func TestSafeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc123.jpg", "abc123.jpg"},
		{"thumb_abc.jpg", "thumb_abc.jpg"},
		{"../../etc/passwd", "passwd"},
		{"has space.jpg", ""},
		{"semi;colon.png", ""},
		{"", ""},
		{".", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SafeName(tc.in), "input %q", tc.in)
	}
}
