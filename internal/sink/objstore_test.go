package sink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"promoback/internal/platform/config"
)

func TestObjectStoreDisabledWithoutDir(t *testing.T) {
	store := NewObjectStore(config.Config{})
	if _, ok := store.(DisabledStore); !ok {
		t.Fatalf("expected disabled store, got %T", store)
	}
}

func TestFsStoreWritesAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	store := NewObjectStore(config.Config{StorageDir: dir, StorageBaseURL: "https://cdn.example.com/media"})

	url, err := store.Upload(context.Background(), "avatars/p1/pic.jpg", []byte("blob"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://cdn.example.com/media/avatars/p1/pic.jpg" {
		t.Fatalf("url = %q", url)
	}

	written, err := os.ReadFile(filepath.Join(dir, "avatars", "p1", "pic.jpg"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(written) != "blob" {
		t.Fatalf("content = %q", written)
	}
}

func TestFsStorePathWithoutBaseURL(t *testing.T) {
	dir := t.TempDir()
	store := NewObjectStore(config.Config{StorageDir: dir})

	url, err := store.Upload(context.Background(), "x.bin", []byte{1})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != filepath.Join(dir, "x.bin") {
		t.Fatalf("url = %q", url)
	}
}
