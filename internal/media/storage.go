// Package media stores uploaded files such as movie posters under a media
// root directory.
package media

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const PostersDir = "posters"

type Storage struct {
	root      string
	urlPrefix string
}

func NewStorage(root, urlPrefix string) *Storage {
	return &Storage{
		root:      root,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

func (s *Storage) Root() string {
	return s.root
}

// SavePoster copies src into the posters directory under a fresh name and
// returns the path relative to the media root.
func (s *Storage) SavePoster(src io.Reader, ext string) (string, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	rel := path.Join(PostersDir, uuid.NewString()+strings.ToLower(ext))
	dst := s.abs(rel)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create posters dir: %w", err)
	}
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create poster: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write poster: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write poster: %w", err)
	}
	return rel, nil
}

// SavePosterFile is SavePoster for a file on disk, keeping its extension.
func (s *Storage) SavePosterFile(srcPath string) (string, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.SavePoster(f, filepath.Ext(srcPath))
}

// Remove deletes a stored file; a file that is already gone is not an
// error.
func (s *Storage) Remove(rel string) error {
	if err := os.Remove(s.abs(rel)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL returns the public URL of a stored file, or "" for an empty path.
func (s *Storage) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return s.urlPrefix + "/" + rel
}

func (s *Storage) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}
