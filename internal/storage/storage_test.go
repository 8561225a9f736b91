package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMemoryKVRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	if _, ok, err := kv.Load(ctx, "missing"); err != nil || ok {
		t.Fatalf("load missing: ok=%v err=%v", ok, err)
	}
	if err := kv.Save(ctx, "k", "v1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := kv.Save(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := kv.Load(ctx, "k")
	if err != nil || !ok || got != "v2" {
		t.Fatalf("load: got=%q ok=%v err=%v", got, ok, err)
	}
}

func TestFileKVRoundTrip(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := kv.Load(ctx, "missing"); err != nil || ok {
		t.Fatalf("load missing: ok=%v err=%v", ok, err)
	}
	if err := kv.Save(ctx, "cashTransactions", `[{"id":"1"}]`); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := kv.Load(ctx, "cashTransactions")
	if err != nil || !ok || got != `[{"id":"1"}]` {
		t.Fatalf("load: got=%q ok=%v err=%v", got, ok, err)
	}

	// Full-value replacement, no deltas.
	if err := kv.Save(ctx, "cashTransactions", `[]`); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, _, _ = kv.Load(ctx, "cashTransactions")
	if got != `[]` {
		t.Fatalf("replace left %q", got)
	}
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kassa.db")
	kv, err := NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer kv.Close()
	ctx := context.Background()

	if _, ok, err := kv.Load(ctx, "missing"); err != nil || ok {
		t.Fatalf("load missing: ok=%v err=%v", ok, err)
	}
	if err := kv.Save(ctx, "k", "v1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := kv.Save(ctx, "k", "v2"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, ok, err := kv.Load(ctx, "k")
	if err != nil || !ok || got != "v2" {
		t.Fatalf("load: got=%q ok=%v err=%v", got, ok, err)
	}

	// Reopen to confirm durability.
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	kv2, err := NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv2.Close()
	got, ok, err = kv2.Load(ctx, "k")
	if err != nil || !ok || got != "v2" {
		t.Fatalf("load after reopen: got=%q ok=%v err=%v", got, ok, err)
	}
}
