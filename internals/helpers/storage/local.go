// internals/helpers/storage/local.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type LocalStore struct {
	Dir       string // root directory on disk
	URLPrefix string // public prefix, e.g. /uploads
}

func NewLocalStore(dir, urlPrefix string) *LocalStore {
	return &LocalStore{Dir: dir, URLPrefix: "/" + strings.Trim(urlPrefix, "/")}
}

func (s *LocalStore) Save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	data, err := encodeUpload(fh)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := ObjectName(folder, fh.Filename)
	full := filepath.Join(s.Dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(s.URLPrefix, name), nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	rel, ok := s.relative(url)
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// relative maps a public URL back to a path under Dir; foreign URLs are ignored.
func (s *LocalStore) relative(url string) (string, bool) {
	url = strings.TrimSpace(url)
	prefix := strings.TrimRight(s.URLPrefix, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	rel := path.Clean(strings.TrimPrefix(url, prefix))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return rel, true
}
