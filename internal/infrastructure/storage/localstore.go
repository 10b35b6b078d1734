// Package storage keeps uploaded ticket images on the local filesystem.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fixdesk/fixdesk/internal/shared/biztime"
)

var (
	// ErrUnsupportedType is returned for content that is not a JPEG or PNG image
	ErrUnsupportedType = errors.New("only JPG and PNG images are allowed")
	// ErrTooLarge is returned when content exceeds the configured size
	ErrTooLarge = errors.New("file exceeds the maximum allowed size")
)

// allowedTypes maps sniffed MIME types to the extension stored on disk
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// LocalFileStore writes files under dir and exposes them below publicPrefix
type LocalFileStore struct {
	dir          string
	publicPrefix string
	maxSize      int64
}

func NewLocalFileStore(dir, publicPrefix string, maxSize int64) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalFileStore{
		dir:          dir,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
		maxSize:      maxSize,
	}, nil
}

// Dir is the directory served as static content
func (s *LocalFileStore) Dir() string {
	return s.dir
}

// Save sniffs r, rejects anything but JPEG/PNG, and stores it as
// <unixMillis>-<ownerID>-<sanitized name>. It returns the public URL.
func (s *LocalFileStore) Save(ctx context.Context, ownerID, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// read one byte past the limit to detect oversize content
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return "", ErrTooLarge
	}

	mtype := mimetype.Detect(data)
	ext, ok := allowedTypes[mtype.String()]
	if !ok {
		return "", fmt.Errorf("%w: got %s", ErrUnsupportedType, mtype.String())
	}

	name := fmt.Sprintf("%d-%s-%s", biztime.NowUnixMilli(), SanitizeName(ownerID), sanitizeFileName(originalName, ext))
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return s.publicPrefix + "/" + name, nil
}

// Remove deletes a file previously returned by Save. Unknown URLs are ignored.
func (s *LocalFileStore) Remove(publicURL string) error {
	name := strings.TrimPrefix(publicURL, s.publicPrefix+"/")
	if name == publicURL || name == "" || strings.ContainsAny(name, `/\`) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// SanitizeName replaces every run of characters outside [a-zA-Z0-9._-] with "_"
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// sanitizeFileName keeps the base name safe and forces the extension to match the sniffed type
func sanitizeFileName(original, ext string) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Trim(SanitizeName(base), "._")
	if base == "" {
		base = "image"
	}
	if len(base) > 100 {
		base = base[:100]
	}
	return base + ext
}
