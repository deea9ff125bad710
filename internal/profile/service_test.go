package profile

import (
	"context"
	"io"
	"testing"

	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/keyvalue"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
)

func newTestService(t *testing.T) (Service, *keyvalue.MemoryStore) {
	t.Helper()
	store := keyvalue.NewMemoryStore()
	svc, err := NewService(store, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestGetReturnsDefaultsWhenAbsent(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p != DefaultProfile() {
		t.Fatalf("expected defaults, got %+v", p)
	}
}

func TestUpdateThenGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	saved, err := svc.Update(ctx, "c1", Profile{
		Name:  "Dewi",
		Email: "dewi@example.com",
		Bio:   "Kolektor anyaman rotan.",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != saved {
		t.Fatalf("got %+v, want %+v", got, saved)
	}
}

func TestUpdateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, "c1", Profile{Email: "a@b.c"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("missing name must be rejected, got %v", err)
	}

	_, err = svc.Update(ctx, "c1", Profile{Name: "Dewi"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("missing email must be rejected, got %v", err)
	}
}

func TestCorruptProfileFallsBackToDefaults(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	store.SetRaw("c1", keyvalue.KeyProfile, []byte("###"))

	p, err := svc.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("Get over corrupt record: %v", err)
	}
	if p != DefaultProfile() {
		t.Fatalf("corrupt profile must read as defaults, got %+v", p)
	}
}
