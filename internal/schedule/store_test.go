package schedule

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/nibzard/zenplan-go/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	return NewStore(kv), kv
}

func TestCreatePrepends(t *testing.T) {
	store, _ := newTestStore(t)

	first := store.Create("First", "desc", "", PriorityMedium, "2026-08-28")
	if first.IsZero() {
		t.Fatal("Create returned zero schedule for valid input")
	}
	if store.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", store.Len())
	}

	second := store.Create("Second", "", "", PriorityHigh, "2026-08-29")
	snap := store.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Snapshot length: got %d, want 2", len(snap))
	}
	if snap[0].ID != second.ID {
		t.Errorf("new schedule not at index 0: got %q, want %q", snap[0].ID, second.ID)
	}
	if snap[1].ID != first.ID {
		t.Errorf("prior schedule displaced: got %q, want %q", snap[1].ID, first.ID)
	}
	if first.ID == second.ID {
		t.Error("ids are not unique")
	}
}

func TestCreateFields(t *testing.T) {
	store, _ := newTestStore(t)

	s := store.Create("Trip", "pack bags", "bring charger", PriorityLow, "2026-09-01")
	if s.Title != "Trip" || s.Description != "pack bags" || s.Notes != "bring charger" {
		t.Errorf("fields not carried: %+v", s)
	}
	if s.Priority != PriorityLow || s.Date != "2026-09-01" {
		t.Errorf("priority/date not carried: %+v", s)
	}
	if len(s.Checklist) != 0 {
		t.Errorf("checklist: got %d items, want empty", len(s.Checklist))
	}
	if s.CreatedAt == 0 {
		t.Error("createdAt not set")
	}
	colorOK := false
	for _, c := range Colors {
		if s.Color == c {
			colorOK = true
		}
	}
	if !colorOK {
		t.Errorf("color %q not drawn from palette", s.Color)
	}
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	store, _ := newTestStore(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		got := store.Create(title, "desc", "", PriorityHigh, "2026-08-28")
		if !got.IsZero() {
			t.Errorf("Create(%q): got %+v, want zero schedule", title, got)
		}
	}
	if store.Len() != 0 {
		t.Errorf("collection changed by rejected creates: len %d", store.Len())
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.Create("Doomed", "", "", PriorityMedium, "2026-08-28")

	store.Delete(s.ID)
	if store.Len() != 0 {
		t.Fatalf("Len after delete: got %d, want 0", store.Len())
	}

	// Second delete of the same id must be a silent no-op.
	store.Delete(s.ID)
	store.Delete("never-existed")
	if store.Len() != 0 {
		t.Errorf("Len after repeated deletes: got %d, want 0", store.Len())
	}
}

func TestUpdateNotes(t *testing.T) {
	store, _ := newTestStore(t)
	keep := store.Create("Keep", "", "", PriorityLow, "2026-08-28")
	target := store.Create("Target", "", "old", PriorityLow, "2026-08-28")

	store.UpdateNotes(target.ID, "new notes")
	if got := store.Get(target.ID).Notes; got != "new notes" {
		t.Errorf("Notes: got %q, want %q", got, "new notes")
	}

	// Untargeted schedule is identical by value.
	if !reflect.DeepEqual(store.Get(keep.ID), keep) {
		t.Error("untargeted schedule was altered")
	}

	store.UpdateNotes("missing", "x")
	if got := store.Get(target.ID).Notes; got != "new notes" {
		t.Errorf("no-op update altered notes: got %q", got)
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.Create("With items", "", "", PriorityMedium, "2026-08-28")
	store.AddItem(s.ID, "one")
	store.AddItem(s.ID, "two")

	before := store.Get(s.ID)
	itemID := before.Checklist[0].ID

	store.ToggleItem(s.ID, itemID)
	mid := store.Get(s.ID)
	if !mid.Checklist[0].IsCompleted {
		t.Error("first toggle did not complete the item")
	}
	if mid.Checklist[1].IsCompleted {
		t.Error("first toggle altered a sibling item")
	}

	store.ToggleItem(s.ID, itemID)
	after := store.Get(s.ID)
	if !reflect.DeepEqual(after, before) {
		t.Errorf("double toggle is not identity:\n before %+v\n after  %+v", before, after)
	}
}

func TestToggleAbsentIsNoop(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.Create("S", "", "", PriorityMedium, "2026-08-28")
	store.AddItem(s.ID, "one")
	before := store.Snapshot()

	store.ToggleItem(s.ID, "missing-item")
	store.ToggleItem("missing-schedule", "whatever")

	if !reflect.DeepEqual(store.Snapshot(), before) {
		t.Error("toggle on absent ids altered the collection")
	}
}

func TestAddItem(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.Create("S", "", "", PriorityMedium, "2026-08-28")

	store.AddItem(s.ID, "first")
	store.AddItem(s.ID, "second")
	store.AddItem(s.ID, "")
	store.AddItem(s.ID, "   ")

	items := store.Get(s.ID).Checklist
	if len(items) != 2 {
		t.Fatalf("items: got %d, want 2 (blank text rejected)", len(items))
	}
	if items[0].Text != "first" || items[1].Text != "second" {
		t.Errorf("insertion order lost: %+v", items)
	}
	if items[0].IsCompleted || items[1].IsCompleted {
		t.Error("new items must start incomplete")
	}
	if items[0].ID == items[1].ID {
		t.Error("item ids are not unique within the schedule")
	}
}

func TestRemoveItem(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.Create("S", "", "", PriorityMedium, "2026-08-28")
	store.AddItem(s.ID, "one")
	store.AddItem(s.ID, "two")

	itemID := store.Get(s.ID).Checklist[0].ID
	store.RemoveItem(s.ID, itemID)

	items := store.Get(s.ID).Checklist
	if len(items) != 1 || items[0].Text != "two" {
		t.Errorf("after remove: %+v", items)
	}

	store.RemoveItem(s.ID, "missing")
	if len(store.Get(s.ID).Checklist) != 1 {
		t.Error("remove of absent item altered the checklist")
	}
}

func TestPersistRoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	store := NewStore(kv)

	a := store.Create("Alpha", "adesc", "anote", PriorityHigh, "2026-08-28")
	store.AddItem(a.ID, "step one")
	store.Create("Beta", "", "", PriorityLow, "2026-09-02")
	store.ToggleItem(a.ID, store.Get(a.ID).Checklist[0].ID)

	// A fresh store over the same KV restores an equal collection.
	restored := NewStore(kv)
	if !reflect.DeepEqual(restored.Snapshot(), store.Snapshot()) {
		t.Errorf("restored collection differs:\n got  %+v\n want %+v",
			restored.Snapshot(), store.Snapshot())
	}
}

func TestRestoreMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", "{not json"},
		{"wrong shape", `{"id": "not-an-array"}`},
		{"empty string", ""},
		{"whitespace", "  \n "},
		{"json null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemory()
			if err := kv.Set(StoreKey, tt.raw); err != nil {
				t.Fatalf("seed kv: %v", err)
			}
			store := NewStore(kv)
			if store.Len() != 0 {
				t.Errorf("Len: got %d, want 0", store.Len())
			}
		})
	}
}

func TestRestoreToleratesUnknownFields(t *testing.T) {
	kv := storage.NewMemory()
	raw := `[{"id":"s1","title":"Kept","date":"2026-08-28","priority":"low",
		"checklist":[],"color":"#60a5fa","createdAt":1,"legacy_field":42}]`
	if err := kv.Set(StoreKey, raw); err != nil {
		t.Fatalf("seed kv: %v", err)
	}

	store := NewStore(kv)
	if store.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", store.Len())
	}
	if got := store.Get("s1").Title; got != "Kept" {
		t.Errorf("Title: got %q, want Kept", got)
	}
}

func TestCustomKey(t *testing.T) {
	kv := storage.NewMemory()
	store := NewStore(kv, WithKey("alt_slot"))
	store.Create("X", "", "", PriorityLow, "2026-08-28")

	if _, ok, _ := kv.Get("alt_slot"); !ok {
		t.Error("mutation did not persist under the custom key")
	}
	if _, ok, _ := kv.Get(StoreKey); ok {
		t.Error("mutation leaked into the default key")
	}
}

func TestPersistedShape(t *testing.T) {
	kv := storage.NewMemory()
	store := NewStore(kv)
	store.Create("Shape", "d", "n", PriorityHigh, "2026-08-28")

	raw, ok, _ := kv.Get(StoreKey)
	if !ok {
		t.Fatal("nothing persisted")
	}
	var decoded []map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("persisted payload is not a JSON array: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("payload length: got %d, want 1", len(decoded))
	}
	for _, field := range []string{"id", "title", "description", "date", "priority", "checklist", "color", "createdAt"} {
		if _, present := decoded[0][field]; !present {
			t.Errorf("persisted record missing field %q", field)
		}
	}
}
