package blobstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/nardosm/ik-registry/internal"
)

// DiskStore writes uploads under a local directory and serves them back
// through the router's static /uploads mount. Filenames are replaced
// with UUIDs so client-supplied names never touch the filesystem.
type DiskStore struct {
	dir        string
	publicPath string
	maxBytes   int64
	logger     *slog.Logger
}

func NewDiskStore(dir, publicPath string, maxSizeMB int64, logger *slog.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStore{
		dir:        dir,
		publicPath: publicPath,
		maxBytes:   maxSizeMB << 20,
		logger:     logger,
	}, nil
}

func (s *DiskStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", errUnsupportedType
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		s.logger.Error("failed to create upload file", "error", err, "path", path)
		return "", internal.NewInternalError("failed to store file", err)
	}
	defer f.Close()

	// one byte over the cap distinguishes "too large" from "exactly max"
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		os.Remove(path)
		s.logger.Error("failed to write upload file", "error", err, "path", path)
		return "", internal.NewInternalError("failed to store file", err)
	}
	if n > s.maxBytes {
		os.Remove(path)
		return "", errTooLarge
	}

	s.logger.Info("file stored", "name", name, "size", n, "original", filename)
	return s.publicPath + "/" + name, nil
}

// Dir exposes the storage directory for the static file mount.
func (s *DiskStore) Dir() string {
	return s.dir
}
