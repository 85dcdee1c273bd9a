// Package uploads stores user-submitted images under a static directory.
// Filenames are validated against a small extension allowlist and sanitized
// before they ever touch the filesystem.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"storefront/internal/domain"
)

var (
	ErrIllegalExtension = errors.New("illegal file extension")
	ErrIllegalFilename  = errors.New("illegal filename")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

type Storage struct {
	Dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{Dir: dir}, nil
}

// SaveImage writes src under the sanitized name, suffixing -1, -2, ... when
// the name is already taken. Returns the stored filename.
func (s *Storage) SaveImage(name string, src io.Reader) (string, error) {
	base, ext, err := splitName(name)
	if err != nil {
		return "", err
	}

	filename := base + ext
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(s.Dir, filename)); os.IsNotExist(err) {
			break
		}
		filename = fmt.Sprintf("%s-%d%s", base, i, ext)
	}
	if err := s.write(filename, src); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveAvatar stores one avatar per user under a deterministic name,
// overwriting any previous avatar regardless of its extension.
func (s *Storage) SaveAvatar(userID uint, name string, src io.Reader) (string, error) {
	_, ext, err := splitName(name)
	if err != nil {
		return "", err
	}
	for e := range allowedExtensions {
		old := fmt.Sprintf("user_%d%s", userID, e)
		if e != ext {
			_ = os.Remove(filepath.Join(s.Dir, old))
		}
	}
	filename := fmt.Sprintf("user_%d%s", userID, ext)
	if err := s.write(filename, src); err != nil {
		return "", err
	}
	return filename, nil
}

// FindAvatar returns the stored avatar filename for a user, if any.
func (s *Storage) FindAvatar(userID uint) (string, error) {
	for ext := range allowedExtensions {
		filename := fmt.Sprintf("user_%d%s", userID, ext)
		if _, err := os.Stat(filepath.Join(s.Dir, filename)); err == nil {
			return filename, nil
		}
	}
	return "", domain.ErrImageNotFound
}

// Path resolves a stored filename to an absolute-safe path for serving.
func (s *Storage) Path(filename string) (string, error) {
	if _, _, err := splitName(filename); err != nil {
		return "", err
	}
	p := filepath.Join(s.Dir, filename)
	if _, err := os.Stat(p); err != nil {
		return "", domain.ErrImageNotFound
	}
	return p, nil
}

func (s *Storage) Delete(filename string) error {
	p, err := s.Path(filename)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

func (s *Storage) write(filename string, src io.Reader) error {
	dst, err := os.Create(filepath.Join(s.Dir, filename))
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write image file: %w", err)
	}
	return nil
}

func splitName(name string) (base, ext string, err error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, "\\/") || strings.HasPrefix(name, ".") {
		return "", "", fmt.Errorf("%w: %q", ErrIllegalFilename, name)
	}
	ext = strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return "", "", fmt.Errorf("%w: %q", ErrIllegalExtension, ext)
	}
	return strings.TrimSuffix(name, filepath.Ext(name)), ext, nil
}
