package proofs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "dmaxcricket/pkg/errors"
	"dmaxcricket/pkg/logger"
)

func newTestStore(t *testing.T, maxBytes int64) Store {
	t.Helper()

	log := logger.New(logger.Config{
		Level:   "info",
		Format:  logger.JSON,
		Service: "test",
	})

	store, err := NewDiskStore(t.TempDir(), maxBytes, log)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestSave_WritesFileUnderServerName(t *testing.T) {
	log := logger.New(logger.Config{
		Level:   "info",
		Format:  logger.JSON,
		Service: "test",
	})
	dir := t.TempDir()
	store, err := NewDiskStore(dir, 1024, log)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	content := []byte("fake image bytes")
	ref, err := store.Save(context.Background(), "My Receipt (1).PNG", int64(len(content)), bytes.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(ref, "PAY_") {
		t.Errorf("expected PAY_ prefix, got %s", ref)
	}
	if !strings.HasSuffix(ref, ".png") {
		t.Errorf("expected lowercased .png extension, got %s", ref)
	}
	if strings.Contains(ref, "Receipt") {
		t.Errorf("client name must not leak into the reference, got %s", ref)
	}

	stored, err := os.ReadFile(filepath.Join(dir, ref))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Error("stored content differs from the upload")
	}
}

func TestSave_RejectsUnsupportedExtension(t *testing.T) {
	store := newTestStore(t, 1024)

	tests := []string{"proof.pdf", "proof.exe", "proof.svg", "proof"}
	for _, name := range tests {
		if _, err := store.Save(context.Background(), name, 10, strings.NewReader("x")); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}
}

func TestSave_RejectsDeclaredOversize(t *testing.T) {
	store := newTestStore(t, 16)

	_, err := store.Save(context.Background(), "proof.png", 17, strings.NewReader("small"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestSave_RejectsUnderdeclaredOversizeStream(t *testing.T) {
	store := newTestStore(t, 16)

	body := strings.Repeat("a", 64)
	_, err := store.Save(context.Background(), "proof.png", 10, strings.NewReader(body))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestSave_UniqueReferences(t *testing.T) {
	store := newTestStore(t, 1024)

	refA, err := store.Save(context.Background(), "a.jpg", 1, strings.NewReader("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	refB, err := store.Save(context.Background(), "b.jpg", 1, strings.NewReader("b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if refA == refB {
		t.Errorf("expected distinct references, both were %s", refA)
	}
}
