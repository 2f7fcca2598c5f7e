package db

import (
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(filepath.Join(t.TempDir(), "nested", FileName))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestKVSetGetRemove(t *testing.T) {
	kv := openTemp(t)

	if _, ok, err := kv.Get("jess_events"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := kv.Set("jess_events", `[]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set("jess_events", `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	got, ok, err := kv.Get("jess_events")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got != `[{"id":"a"}]` {
		t.Errorf("Get = %q", got)
	}

	if err := kv.Set("jess_tasks", `[]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	keys, err := kv.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "jess_events" || keys[1] != "jess_tasks" {
		t.Errorf("Keys = %v", keys)
	}

	if err := kv.Remove("jess_events"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := kv.Remove("never_set"); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}
	if _, ok, _ := kv.Get("jess_events"); ok {
		t.Error("key still present after Remove")
	}
}

func TestKVPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	kv, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := kv.Set("jess_timetable", `[1]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	kv.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get("jess_timetable")
	if err != nil || !ok || got != `[1]` {
		t.Errorf("after reopen Get = %q ok=%v err=%v", got, ok, err)
	}
}

func TestDefaultPath(t *testing.T) {
	got, err := DefaultPath("/tmp/jess-data")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join("/tmp/jess-data", FileName) {
		t.Errorf("DefaultPath = %q", got)
	}
	home, err := DefaultPath("")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(filepath.Dir(home)) != ".jess" {
		t.Errorf("DefaultPath(\"\") = %q", home)
	}
}
