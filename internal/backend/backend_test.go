package backend

import (
	"context"
	"path/filepath"
	"testing"
)

func TestTypeIsValid(t *testing.T) {
	for _, v := range []Type{SQLite, File, Memory} {
		if !v.IsValid() {
			t.Fatalf("%s should be valid", v)
		}
	}
	if Type("redis").IsValid() {
		t.Fatal("unknown type reported valid")
	}
}

func TestOpenRejectsUnknownType(t *testing.T) {
	if _, err := Open(Config{Type: "redis"}, nil); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpenFileAndMemory(t *testing.T) {
	ctx := context.Background()

	kv, err := Open(Config{Type: File, DataDir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("open file backend: %v", err)
	}
	defer kv.Close()
	if err := kv.Save(ctx, "k", "v"); err != nil {
		t.Fatalf("file save: %v", err)
	}

	mem, err := Open(Config{Type: Memory}, nil)
	if err != nil {
		t.Fatalf("open memory backend: %v", err)
	}
	defer mem.Close()
	if err := mem.Save(ctx, "k", "v"); err != nil {
		t.Fatalf("memory save: %v", err)
	}
}

func TestOpenSQLite(t *testing.T) {
	kv, err := Open(Config{Type: SQLite, SQLiteDBPath: filepath.Join(t.TempDir(), "kassa.db")}, nil)
	if err != nil {
		t.Fatalf("open sqlite backend: %v", err)
	}
	defer kv.Close()
	if err := kv.Save(context.Background(), "k", "v"); err != nil {
		t.Fatalf("sqlite save: %v", err)
	}
}
