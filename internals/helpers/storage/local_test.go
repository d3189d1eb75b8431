package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"campus_events_backend/internals/helpers/storage"
	"campus_events_backend/internals/helpers/storage/storagetest"
)

func TestLocalStoreSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s := storage.NewLocalStore(dir, "uploads")
	ctx := context.Background()

	fh := storagetest.FileHeader(t, "event_logo_file", "Spring Fair.png", "image/png", storagetest.PNG(t, 40, 30))
	url, err := s.Save(ctx, "events", fh)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/events/") || !strings.HasSuffix(url, "-spring-fair.webp") {
		t.Fatalf("unexpected url %q", url)
	}

	onDisk := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	if _, err := os.Stat(onDisk); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	if err := s.Delete(ctx, url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Fatalf("file still present after delete: %v", err)
	}

	// absent resource is not an error
	if err := s.Delete(ctx, url); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestLocalStoreRejectsNonImage(t *testing.T) {
	s := storage.NewLocalStore(t.TempDir(), "/uploads")
	fh := storagetest.FileHeader(t, "event_logo_file", "notes.txt", "text/plain", []byte("hello"))

	_, err := s.Save(context.Background(), "events", fh)
	if !errors.Is(err, storage.ErrUnsupportedImage) {
		t.Fatalf("err = %v, want ErrUnsupportedImage", err)
	}
}

func TestLocalStoreIgnoresForeignURLs(t *testing.T) {
	s := storage.NewLocalStore(t.TempDir(), "/uploads")
	for _, u := range []string{"", "https://cdn.example.com/x.webp", "/uploads/../etc/passwd"} {
		if err := s.Delete(context.Background(), u); err != nil {
			t.Errorf("Delete(%q) = %v", u, err)
		}
	}
}
