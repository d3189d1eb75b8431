// Package storagetest provides an in-memory ImageStore and multipart helpers for tests.
package storagetest

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"campus_events_backend/internals/helpers/storage"
)

// MemoryStore records saved and deleted URLs.
type MemoryStore struct {
	mu       sync.Mutex
	seq      int
	Live     map[string]bool
	Deleted  []string
	FailSave error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Live: map[string]bool{}}
}

func (m *MemoryStore) Save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	if msg := storage.CheckImageHeader(fh); msg != "" {
		return "", fmt.Errorf("%w: %s", storage.ErrUnsupportedImage, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return "", m.FailSave
	}
	m.seq++
	url := fmt.Sprintf("/uploads/%s/%d.webp", folder, m.seq)
	m.Live[url] = true
	return url, nil
}

func (m *MemoryStore) Delete(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Live, url)
	m.Deleted = append(m.Deleted, url)
	return nil
}

func (m *MemoryStore) LiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Live)
}

func (m *MemoryStore) WasDeleted(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.Deleted {
		if d == url {
			return true
		}
	}
	return false
}

// PNG returns a small encoded PNG.
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

// FileHeader builds a real *multipart.FileHeader by round-tripping a form.
func FileHeader(t testing.TB, field, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	files := form.File[field]
	if len(files) != 1 {
		t.Fatalf("expected one file, got %d", len(files))
	}
	return files[0]
}
