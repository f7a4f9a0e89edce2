package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxImageBytes is the upload size limit (5 MiB).
const MaxImageBytes = 5 * 1024 * 1024

// UploadURLPrefix is the public URL prefix under which uploaded images are
// served. Stored image_url values are relative to it.
const UploadURLPrefix = "/media/uploads/"

// ImageStore persists uploaded recipe images and hands back URLs usable
// verbatim as a recipe's image_url.
type ImageStore interface {
	// Save validates and stores an uploaded image, returning its public URL.
	Save(ctx context.Context, r io.Reader, originalName, contentType string, size int64) (string, error)
	// Delete removes the file behind a previously returned URL.
	Delete(ctx context.Context, url string) error
}

// validateUpload enforces the shared MIME and size rules for all backends.
func validateUpload(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return &UploadError{Message: "Seules les images sont acceptées"}
	}
	if size > MaxImageBytes {
		return &UploadError{Message: "L'image dépasse la taille maximale de 5 Mo"}
	}
	return nil
}

// imageFileName generates a collision-resistant filename preserving the
// original extension: recipe-<timestamp>-<random>.<ext>.
func imageFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("recipe-%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}

// LocalImageStore stores images in a flat directory on the local filesystem,
// served by the API process under UploadURLPrefix.
type LocalImageStore struct {
	dir    string
	logger zerolog.Logger
}

// NewLocalImageStore creates the uploads directory if needed.
func NewLocalImageStore(dir string, logger zerolog.Logger) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalImageStore{
		dir:    dir,
		logger: logger.With().Str("component", "image_store").Logger(),
	}, nil
}

// Dir returns the directory the store writes into.
func (s *LocalImageStore) Dir() string {
	return s.dir
}

// Save writes the image bytes under a generated filename and returns its URL.
func (s *LocalImageStore) Save(ctx context.Context, r io.Reader, originalName, contentType string, size int64) (string, error) {
	if err := validateUpload(contentType, size); err != nil {
		return "", err
	}

	name := imageFileName(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// The declared size is checked above; the limit guards against a lying
	// multipart header.
	written, err := io.Copy(f, io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if written > MaxImageBytes {
		_ = os.Remove(path)
		return "", &UploadError{Message: "L'image dépasse la taille maximale de 5 Mo"}
	}

	s.logger.Info().Str("file", name).Int64("bytes", written).Msg("image stored")
	return UploadURLPrefix + name, nil
}

// Delete removes the file behind url. Only the basename is resolved, so a
// crafted URL cannot escape the uploads directory.
func (s *LocalImageStore) Delete(ctx context.Context, url string) error {
	name := filepath.Base(strings.TrimPrefix(url, UploadURLPrefix))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid image URL: %q", url)
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to remove image %s: %w", name, err)
	}

	s.logger.Info().Str("file", name).Msg("image removed")
	return nil
}
