package storage

import (
	"path/filepath"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	kv := NewFile(t.TempDir())

	if _, ok, err := kv.Get("zenplan_schedules"); err != nil || ok {
		t.Fatalf("Get on empty store: got ok=%v err=%v, want absent", ok, err)
	}

	if err := kv.Set("zenplan_schedules", `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := kv.Get("zenplan_schedules")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Get: key absent after Set")
	}
	if got != "[{\"id\":\"a\"}]\n" {
		t.Errorf("Get: got %q, want stored value with trailing newline", got)
	}
}

func TestFileCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	kv := NewFile(dir)
	if err := kv.Set("k", "v"); err != nil {
		t.Fatalf("Set into missing dir failed: %v", err)
	}
	if _, ok, err := kv.Get("k"); err != nil || !ok {
		t.Fatalf("Get after Set: got ok=%v err=%v", ok, err)
	}
}

func TestFileRejectsUnusableKey(t *testing.T) {
	kv := NewFile(t.TempDir())
	if err := kv.Set("///", "v"); err == nil {
		t.Error("Set with unusable key: expected error")
	}
}

func TestMemory(t *testing.T) {
	kv := NewMemory()
	if _, ok, _ := kv.Get("missing"); ok {
		t.Error("Get on empty memory store: expected absent")
	}
	if err := kv.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok, _ := kv.Get("k")
	if !ok || got != "v" {
		t.Errorf("Get: got %q ok=%v, want \"v\" true", got, ok)
	}
}
