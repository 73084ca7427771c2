package sink

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"promoback/internal/platform/config"
)

// fsStore keeps uploads on a mounted volume. The deployment serves the
// directory behind nginx, so the returned URL is base + object name.
type fsStore struct {
	dir     string
	baseURL string
}

// NewObjectStore returns the filesystem store when STORAGE_DIR is set,
// otherwise the disabled one.
func NewObjectStore(cfg config.Config) ObjectStore {
	if cfg.StorageDir == "" {
		return DisabledStore{}
	}
	return &fsStore{dir: cfg.StorageDir, baseURL: cfg.StorageBaseURL}
}

func (s *fsStore) Upload(ctx context.Context, name string, blob []byte) (string, error) {
	full := filepath.Join(s.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, blob, 0o644); err != nil {
		return "", err
	}
	if s.baseURL == "" {
		return full, nil
	}
	return s.baseURL + "/" + path.Clean(name), nil
}
