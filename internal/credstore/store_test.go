package credstore

import (
	"context"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "profile", SlotKey))

	// Empty slot reads as absent, not as an error.
	if token, err := store.Get(ctx); err != nil || token != "" {
		t.Fatalf("Get(empty) = %q, %v; want \"\", nil", token, err)
	}

	if err := store.Set(ctx, "token-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if token, err := store.Get(ctx); err != nil || token != "token-1" {
		t.Fatalf("Get = %q, %v; want token-1", token, err)
	}

	// Last write wins.
	if err := store.Set(ctx, "token-2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if token, _ := store.Get(ctx); token != "token-2" {
		t.Fatalf("Get = %q, want token-2", token)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if token, err := store.Get(ctx); err != nil || token != "" {
		t.Fatalf("Get(after clear) = %q, %v; want \"\", nil", token, err)
	}

	// Clearing twice stays quiet.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear(again): %v", err)
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), SlotKey)

	if err := NewFileStore(path).Set(ctx, "durable"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if token, err := NewFileStore(path).Get(ctx); err != nil || token != "durable" {
		t.Fatalf("Get from fresh instance = %q, %v; want durable", token, err)
	}
}

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	if token, _ := store.Get(ctx); token != "" {
		t.Fatalf("Get(empty) = %q, want \"\"", token)
	}
	if err := store.Set(ctx, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if token, _ := store.Get(ctx); token != "tok" {
		t.Fatalf("Get = %q, want tok", token)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if token, _ := store.Get(ctx); token != "" {
		t.Fatalf("Get(after clear) = %q, want \"\"", token)
	}
}
