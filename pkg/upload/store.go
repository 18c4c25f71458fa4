package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/places/pkg/apperr"
	"github.com/artem13815/places/pkg/metrics"
)

// MIME types accepted for images and the extension each one is stored with.
var mimeExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

var (
	ErrInvalidMediaType = apperr.Validation("Invalid mime type!")
	ErrFileTooLarge     = apperr.Validation("File too large.")
	ErrFileRequired     = apperr.Validation("An image is required.")
)

// Store writes uploaded images into one directory on local disk.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates dir if needed. maxBytes <= 0 disables the size check.
func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

func (s *Store) Dir() string { return s.dir }

// ExtensionFor returns the stored extension for an allowed declared type.
func ExtensionFor(contentType string) (string, bool) {
	ext, ok := mimeExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	return ext, ok
}

// Save validates the declared type and size of fh and writes it under a
// time-ordered unique name. It returns the stored path.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	ext, ok := ExtensionFor(fh.Header.Get("Content-Type"))
	if !ok {
		return "", ErrInvalidMediaType
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}
	id, err := uuid.NewUUID()
	if err != nil {
		return "", apperr.Internal("Could not store the uploaded file.", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", apperr.Internal("Could not store the uploaded file.", err)
	}
	defer src.Close()

	dst := filepath.Join(s.dir, id.String()+"."+ext)
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperr.Internal("Could not store the uploaded file.", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return "", apperr.Internal("Could not store the uploaded file.", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", apperr.Internal("Could not store the uploaded file.", err)
	}
	return filepath.ToSlash(dst), nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *Store) Remove(path string) error {
	err := os.Remove(filepath.FromSlash(path))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	metrics.ImageCleanupFailures.Inc()
	return err
}
