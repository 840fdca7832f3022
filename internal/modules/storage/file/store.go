// Package file stores uploaded images on local disk and keeps a square
// thumbnail next to each original.
package file

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bazaarhq/core/internal/models"
	"github.com/bazaarhq/core/internal/pkg/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxUploadSize is the hard cap for a single uploaded file.
const MaxUploadSize = 10 << 20

// ThumbPrefix marks derived thumbnail files in the uploads directory.
const ThumbPrefix = "thumb_"

var extByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// Store persists uploads under a single flat directory.
type Store struct {
	dir string
	log *zap.Logger
}

func NewStore(dir string, log *zap.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// Dir returns the uploads directory.
func (s *Store) Dir() string { return s.dir }

// Save validates, writes and thumbnails an uploaded image. Validation
// failures come back as *ValidationError; anything else is an IO fault.
func (s *Store) Save(header *multipart.FileHeader) (*models.FileInfo, error) {
	if header.Size > MaxUploadSize {
		return nil, &ValidationError{Reason: fmt.Sprintf("file exceeds the %dMB limit", MaxUploadSize>>20)}
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, &ValidationError{Reason: fmt.Sprintf("file exceeds the %dMB limit", MaxUploadSize>>20)}
	}
	if len(data) == 0 {
		return nil, &ValidationError{Reason: "uploaded file is empty"}
	}

	mimeType := detectMime(data)
	if _, ok := extByMime[mimeType]; !ok {
		return nil, &ValidationError{Reason: "only JPEG, PNG, GIF, WebP and BMP images are allowed"}
	}
	// The sniffed MIME type decides the stored extension, so the declared
	// filename cannot change how the asset is later served.
	ext := extFor(mimeType, header.Filename)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "")[:18] + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing upload: %w", err)
	}

	info := &models.FileInfo{
		OriginalName: filepath.Base(header.Filename),
		FileName:     name,
		Size:         int64(len(data)),
		MimeType:     mimeType,
		Path:         path,
	}
	if w, h, err := imaging.Dimensions(data); err == nil {
		info.Width = w
		info.Height = h
	}

	// A failed thumbnail never fails the upload.
	thumbName := ThumbPrefix + name
	if thumb, err := imaging.Thumbnail(data, imaging.DefaultThumbSize); err != nil {
		s.log.Warn("thumbnail generation failed",
			zap.String("file", name), zap.Error(err))
	} else if err := os.WriteFile(filepath.Join(s.dir, thumbName), thumb, 0o644); err != nil {
		s.log.Warn("thumbnail write failed",
			zap.String("file", thumbName), zap.Error(err))
	} else {
		info.ThumbName = thumbName
	}

	return info, nil
}

// Delete removes the original and its thumbnail and reports whether the
// original existed. A missing thumbnail is never an error.
func (s *Store) Delete(info *models.FileInfo) bool {
	if info == nil {
		return false
	}
	existed := false
	if name := SafeName(info.FileName); name != "" {
		existed = s.remove(name)
	}
	if name := SafeName(info.ThumbName); name != "" {
		s.remove(name)
	}
	return existed
}

func (s *Store) remove(name string) bool {
	err := os.Remove(filepath.Join(s.dir, name))
	if err == nil {
		return true
	}
	if !os.IsNotExist(err) {
		s.log.Warn("file removal failed", zap.String("file", name), zap.Error(err))
	}
	return false
}

// extFor picks the stored extension: the MIME-mapped one first, then the
// original filename's, then .jpg.
func extFor(mimeType, originalName string) string {
	if ext, ok := extByMime[mimeType]; ok {
		return ext
	}
	if ext := strings.ToLower(filepath.Ext(originalName)); ext != "" && len(ext) <= 10 {
		return ext
	}
	return ".jpg"
}

// ValidationError marks uploads rejected for content reasons rather than
// infrastructure faults.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func detectMime(data []byte) string {
	mimeType := http.DetectContentType(data)
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.TrimSpace(mimeType)
}

// SafeName strips any path components and rejects names with unexpected
// characters.
func SafeName(raw string) string {
	name := filepath.Base(strings.TrimSpace(raw))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return ""
	}
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			continue
		}
		return ""
	}
	return name
}
