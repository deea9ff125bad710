package keyvalue

import (
	"context"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "client-1", KeyProfile, sample{Name: "Sari", Count: 3}); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	var got sample
	found, err := store.Get(ctx, "client-1", KeyProfile, &got)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if !found {
		t.Fatal("expected record to exist")
	}
	if got.Name != "Sari" || got.Count != 3 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestMemoryStoreScopesByClient(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "client-1", KeyCart, sample{Name: "a"}); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	var got sample
	found, err := store.Get(ctx, "client-2", KeyCart, &got)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if found {
		t.Fatal("expected no record for a different client")
	}
}

func TestMemoryStoreDiscardsCorruptRecord(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	store.SetRaw("client-1", KeyCart, []byte("{not json"))

	var got sample
	found, err := store.Get(ctx, "client-1", KeyCart, &got)
	if err != nil {
		t.Fatalf("corrupt records must read as absent, got error: %v", err)
	}
	if found {
		t.Fatal("corrupt record should be treated as absent")
	}

	// The corrupt record must also be gone afterwards.
	store.mu.RLock()
	_, still := store.records[memoryKey("client-1", KeyCart)]
	store.mu.RUnlock()
	if still {
		t.Fatal("corrupt record should have been discarded")
	}
}

func TestMemoryStoreDeleteMissingIsNoop(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.Delete(context.Background(), "client-1", KeyCart, KeyProfile); err != nil {
		t.Fatalf("deleting missing keys should be a no-op, got: %v", err)
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	t.Parallel()

	var got sample
	if err := decodeRecord([]byte(`{"v":99,"data":{"name":"x"}}`), &got); err == nil {
		t.Fatal("expected version error")
	}
}
