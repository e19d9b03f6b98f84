package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "history.db"), filepath.Join(dir, "history.lock"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndList(t *testing.T) {
	store := openTestStore(t)

	rec := Record{
		ExtrinsicHash: "0xabc",
		Command:       "instantiate",
		NodeURL:       "ws://localhost:9944",
		Signer:        "0x1111111111111111111111111111111111111111",
		SubmittedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := store.Append(rec); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	records, err := store.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.ExtrinsicHash != rec.ExtrinsicHash || got.Command != rec.Command || got.NodeURL != rec.NodeURL {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestAppendRequiresHash(t *testing.T) {
	store := openTestStore(t)
	if err := store.Append(Record{Command: "call"}); err == nil {
		t.Fatal("expected error for missing extrinsic hash")
	}
}

func TestAppendUpsertsByHash(t *testing.T) {
	store := openTestStore(t)
	first := Record{ExtrinsicHash: "0xabc", Command: "upload"}
	second := Record{ExtrinsicHash: "0xabc", Command: "remove"}
	if err := store.Append(first); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(second); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	records, err := store.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].Command != "remove" {
		t.Fatalf("expected single upserted record, got %+v", records)
	}
}
