package proofs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "dmaxcricket/pkg/errors"
	"dmaxcricket/pkg/logger"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Store persists payment-proof uploads and returns the reference that later
// groups the booking rows paid by that proof.
type Store interface {
	Save(ctx context.Context, originalName string, size int64, r io.Reader) (string, error)
}

type diskStore struct {
	dir      string
	maxBytes int64
	log      *logger.Logger
}

func NewDiskStore(dir string, maxBytes int64, log *logger.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create proof directory %s: %w", dir, err)
	}

	return &diskStore{
		dir:      dir,
		maxBytes: maxBytes,
		log:      log,
	}, nil
}

// Save writes the upload under a fresh server-chosen name. The client's file
// name only contributes its extension; everything else is discarded.
func (s *diskStore) Save(ctx context.Context, originalName string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", apperrors.InvalidInput(fmt.Sprintf("unsupported file type: %s", ext))
	}

	if size > s.maxBytes {
		return "", apperrors.Validation("Payment proof exceeds the size limit", map[string]any{
			"max_bytes": s.maxBytes,
			"size":      size,
		})
	}

	ref := fmt.Sprintf("PAY_%d_%s%s", time.Now().Unix(), uuid.New().String(), ext)
	path := filepath.Join(s.dir, ref)

	f, err := os.Create(path)
	if err != nil {
		return "", apperrors.Internal("Failed to store payment proof", err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		os.Remove(path)
		return "", apperrors.Internal("Failed to store payment proof", err)
	}
	if written > s.maxBytes {
		os.Remove(path)
		return "", apperrors.Validation("Payment proof exceeds the size limit", map[string]any{
			"max_bytes": s.maxBytes,
		})
	}

	s.log.Info("Payment proof stored", "ref", ref, "bytes", written)
	return ref, nil
}
