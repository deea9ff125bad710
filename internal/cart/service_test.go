package cart

import (
	"context"
	"io"
	"testing"

	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/keyvalue"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
	"github.com/ecocraftid/ecocraft-backend/pkg/pricing"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T) (Service, *keyvalue.MemoryStore) {
	t.Helper()
	store := keyvalue.NewMemoryStore()
	svc, err := NewService(store, nil, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

var (
	basket = Item{ProductID: "ec-001", Name: "Set Keranjang Serat Kelapa", UnitPrice: 299990, Image: "/images/product-1.webp"}
	cups   = Item{ProductID: "ec-007", Name: "Gelas Batok Kelapa", UnitPrice: 89990}
)

func TestGetEmptyCart(t *testing.T) {
	svc, _ := newTestService(t)

	state, err := svc.Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(state.Lines) != 0 || state.TotalPrice != 0 {
		t.Fatalf("expected empty cart, got %+v", state)
	}
}

func TestAddItemNewAndExisting(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	state, err := svc.AddItem(ctx, "c1", basket)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(state.Lines) != 1 || state.Lines[0].Quantity != 1 {
		t.Fatalf("unexpected state after first add: %+v", state)
	}

	state, err = svc.AddItem(ctx, "c1", basket)
	if err != nil {
		t.Fatalf("AddItem twice: %v", err)
	}
	if len(state.Lines) != 1 {
		t.Fatalf("existing product must bump quantity, not append: %+v", state.Lines)
	}
	if state.Lines[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", state.Lines[0].Quantity)
	}
	if state.TotalPrice != 2*basket.UnitPrice {
		t.Fatalf("total = %d, want %d", state.TotalPrice, 2*basket.UnitPrice)
	}
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "c1", basket); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, "c1", cups); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	state, err := svc.AddItem(ctx, "c1", basket)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if state.Lines[0].ProductID != "ec-001" || state.Lines[1].ProductID != "ec-007" {
		t.Fatalf("line order changed: %+v", state.Lines)
	}
}

func TestAddItemValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), "c1", Item{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "c1", basket); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, "c1", basket); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, "c1", cups); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	state, err := svc.RemoveItem(ctx, "c1", basket.ProductID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(state.Lines) != 1 || state.Lines[0].ProductID != cups.ProductID {
		t.Fatalf("unexpected lines: %+v", state.Lines)
	}
	if state.TotalPrice != cups.UnitPrice {
		t.Fatalf("total = %d, want %d", state.TotalPrice, cups.UnitPrice)
	}
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "c1", cups); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	state, err := svc.RemoveItem(ctx, "c1", "no-such-product")
	if err != nil {
		t.Fatalf("RemoveItem on absent id must not error: %v", err)
	}
	if len(state.Lines) != 1 || state.TotalPrice != cups.UnitPrice {
		t.Fatalf("state changed on no-op removal: %+v", state)
	}
}

func TestUpdateQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "c1", basket); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	state, err := svc.UpdateQuantity(ctx, "c1", basket.ProductID, 5)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if state.Lines[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", state.Lines[0].Quantity)
	}
	if state.TotalPrice != 5*basket.UnitPrice {
		t.Fatalf("total = %d, want %d", state.TotalPrice, 5*basket.UnitPrice)
	}

	state, err = svc.UpdateQuantity(ctx, "c1", basket.ProductID, 2)
	if err != nil {
		t.Fatalf("UpdateQuantity down: %v", err)
	}
	if state.TotalPrice != 2*basket.UnitPrice {
		t.Fatalf("total after lowering = %d, want %d", state.TotalPrice, 2*basket.UnitPrice)
	}
}

func TestUpdateQuantityRejectsZeroAndMissing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "c1", basket); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	_, err := svc.UpdateQuantity(ctx, "c1", basket.ProductID, 0)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("quantity 0 must be rejected, got %v", err)
	}

	_, err = svc.UpdateQuantity(ctx, "c1", "missing", 2)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("missing line must be not found, got %v", err)
	}
}

func TestIncrementDecrement(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "c1", basket); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	state, err := svc.Increment(ctx, "c1", basket.ProductID)
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if state.Lines[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", state.Lines[0].Quantity)
	}

	state, err = svc.Decrement(ctx, "c1", basket.ProductID)
	if err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	if state.Lines[0].Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", state.Lines[0].Quantity)
	}
}

func TestDecrementAtOneRemovesLine(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "c1", basket); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	state, err := svc.Decrement(ctx, "c1", basket.ProductID)
	if err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	if len(state.Lines) != 0 || state.TotalPrice != 0 {
		t.Fatalf("line must be removed at quantity 1: %+v", state)
	}

	// The persisted snapshot must not contain a zero-quantity line either.
	var persisted State
	found, err := store.Get(ctx, "c1", keyvalue.KeyCart, &persisted)
	if err != nil || !found {
		t.Fatalf("read persisted cart: found=%v err=%v", found, err)
	}
	for _, l := range persisted.Lines {
		if l.Quantity < 1 {
			t.Fatalf("persisted zero-quantity line: %+v", l)
		}
	}
}

func TestClear(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "c1", basket); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := svc.Clear(ctx, "c1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	state, err := svc.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(state.Lines) != 0 || state.TotalPrice != 0 {
		t.Fatalf("cart not cleared: %+v", state)
	}
}

func TestCartsAreScopedPerClient(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "alice", basket); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	state, err := svc.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(state.Lines) != 0 {
		t.Fatalf("client carts must not leak: %+v", state)
	}
}

func TestCorruptSnapshotYieldsEmptyCart(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	store.SetRaw("c1", keyvalue.KeyCart, []byte("{not json"))

	state, err := svc.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("Get over corrupt record: %v", err)
	}
	if len(state.Lines) != 0 || state.TotalPrice != 0 {
		t.Fatalf("corrupt snapshot must read as empty: %+v", state)
	}
}

func TestSummaryUsesSharedPricing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "c1", basket); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, "c1", basket); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, "c1", Item{ProductID: "x", Name: "x", UnitPrice: 99990}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	got, err := svc.Summary(ctx, "c1", enums.ShippingMethodStandard)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	want := pricing.Quote(699970, enums.ShippingMethodStandard)
	if got != want {
		t.Fatalf("summary = %+v, want %+v", got, want)
	}
	if got.Tax != 76997 || got.Total != 836957 {
		t.Fatalf("breakdown mismatch: %+v", got)
	}
}
