// Package media stores uploaded post images on the local filesystem.
package media

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// PostsDir is the subdirectory that post images are written to.
const PostsDir = "posts"

// MaxImageSize bounds a single upload.
const MaxImageSize = 10 << 20

var (
	ErrNotImage      = errors.New("upload a valid image")
	ErrImageTooLarge = errors.New("image is too large")
)

// LocalStorage saves files below a root directory and serves them under a URL prefix.
type LocalStorage struct {
	root      string
	urlPrefix string
}

// NewLocalStorage creates the root directory if needed.
func NewLocalStorage(root, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", root, err)
	}
	slog.Debug("media: storage directory ready", "path", root)

	return &LocalStorage{
		root:      root,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

// Root returns the directory files are stored in.
func (ls *LocalStorage) Root() string {
	return ls.root
}

// URLPrefix returns the URL path the root directory is served under.
func (ls *LocalStorage) URLPrefix() string {
	return ls.urlPrefix
}

// URL returns the public URL for a stored reference.
func (ls *LocalStorage) URL(ref string) string {
	if ref == "" {
		return ""
	}
	return ls.urlPrefix + "/" + strings.TrimLeft(ref, "/")
}

// SaveImageFile stores an uploaded multipart file. A nil header stores nothing.
func (ls *LocalStorage) SaveImageFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return ls.SaveImage(file)
}

// SaveImage stores r under PostsDir with a generated name and returns the
// reference to persist on the post, e.g. "posts/<uuid>.png".
// The content must be detected as an image.
func (ls *LocalStorage) SaveImage(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", ErrNotImage
	}

	dir := filepath.Join(ls.root, PostsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := uuid.New().String() + mt.Extension()
	dst := filepath.Join(dir, name)
	if err := os.WriteFile(dst, data, 0644); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	ref := path.Join(PostsDir, name)
	slog.Info("media: image saved", "ref", ref, "mime", mt.String(), "size", len(data))
	return ref, nil
}

// Delete removes a stored reference. Missing files are not an error.
func (ls *LocalStorage) Delete(ref string) error {
	if ref == "" {
		return nil
	}

	clean := filepath.Clean(filepath.FromSlash(ref))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return fmt.Errorf("invalid media reference: %s", ref)
	}

	if err := os.Remove(filepath.Join(ls.root, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
