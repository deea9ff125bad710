package checkout

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ecocraftid/ecocraft-backend/internal/cart"
	"github.com/ecocraftid/ecocraft-backend/internal/orders"
	"github.com/ecocraftid/ecocraft-backend/pkg/db/models"
	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/keyvalue"
	"github.com/ecocraftid/ecocraft-backend/pkg/pricing"
)

type fakeRecorder struct {
	mu     sync.Mutex
	inputs []orders.RecordInput
}

func (f *fakeRecorder) Record(_ context.Context, input orders.RecordInput) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, input)
	return &models.Order{
		ID:             uuid.New(),
		ClientID:       input.ClientID,
		DisplayNumber:  input.DisplayNumber,
		ShippingMethod: input.ShippingMethod,
		PaymentMethod:  input.PaymentMethod,
		Subtotal:       input.Summary.Subtotal,
		ShippingCost:   input.Summary.ShippingCost,
		Tax:            input.Summary.Tax,
		Total:          input.Summary.Total,
		Lines:          input.Lines,
		PlacedAt:       input.PlacedAt,
	}, nil
}

type wizardFixture struct {
	svc      *service
	carts    cart.Service
	sessions SessionService
	recorder *fakeRecorder
	store    *keyvalue.MemoryStore
}

func newWizardFixture(t *testing.T, delay time.Duration) *wizardFixture {
	t.Helper()

	store := keyvalue.NewMemoryStore()
	logg := testLogger()

	carts, err := cart.NewService(store, nil, logg)
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}
	sessions, err := NewSessionService(store, 24*time.Hour, nil, logg)
	if err != nil {
		t.Fatalf("NewSessionService: %v", err)
	}
	recorder := &fakeRecorder{}

	svc, err := NewService(carts, sessions, recorder, delay, nil, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	return &wizardFixture{
		svc:      svc.(*service),
		carts:    carts,
		sessions: sessions,
		recorder: recorder,
		store:    store,
	}
}

func (f *wizardFixture) fillCart(t *testing.T, clientID string) {
	t.Helper()
	ctx := context.Background()
	items := []cart.Item{
		{ProductID: "ec-001", Name: "Set Keranjang Serat Kelapa", UnitPrice: 299990},
		{ProductID: "ec-001", Name: "Set Keranjang Serat Kelapa", UnitPrice: 299990},
		{ProductID: "ec-007", Name: "Gelas Batok Kelapa", UnitPrice: 99990},
	}
	for _, item := range items {
		if _, err := f.carts.AddItem(ctx, clientID, item); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}
}

func TestPlaceOrderHappyPath(t *testing.T) {
	f := newWizardFixture(t, 0)
	ctx := context.Background()

	f.fillCart(t, "c1")
	if _, err := f.sessions.Save(ctx, "c1", midFlowState()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	placedAt := time.Date(2025, 7, 4, 9, 30, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return placedAt }
	f.svc.numberFn = func() string { return "AC-123456" }

	conf, err := f.svc.PlaceOrder(ctx, "c1", reviewReadyState())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if conf.DisplayNumber != "AC-123456" {
		t.Fatalf("display number = %s", conf.DisplayNumber)
	}
	if conf.OrderDate != "4 Juli 2025" {
		t.Fatalf("order date = %q", conf.OrderDate)
	}

	want := pricing.Quote(699970, enums.ShippingMethodStandard)
	if conf.Summary != want {
		t.Fatalf("summary = %+v, want %+v", conf.Summary, want)
	}
	if conf.Summary.Tax != 76997 || conf.Summary.Total != 836957 {
		t.Fatalf("breakdown mismatch: %+v", conf.Summary)
	}
	if len(conf.Lines) != 2 {
		t.Fatalf("confirmation lines = %+v", conf.Lines)
	}

	// Cart must be cleared on completion.
	cartState, err := f.carts.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("carts.Get: %v", err)
	}
	if len(cartState.Lines) != 0 || cartState.TotalPrice != 0 {
		t.Fatalf("cart not cleared: %+v", cartState)
	}

	// Saved session must be cleared too.
	session, err := f.sessions.DetectResumable(ctx, "c1")
	if err != nil {
		t.Fatalf("DetectResumable: %v", err)
	}
	if session != nil {
		t.Fatalf("session survived completion: %+v", session)
	}

	if len(f.recorder.inputs) != 1 {
		t.Fatalf("recorded %d orders", len(f.recorder.inputs))
	}
	recorded := f.recorder.inputs[0]
	if recorded.PaymentMethod != enums.PaymentMethodCreditCard || len(recorded.Lines) != 2 {
		t.Fatalf("unexpected record input: %+v", recorded)
	}
}

func TestPlaceOrderRequiresReviewStep(t *testing.T) {
	f := newWizardFixture(t, 0)
	f.fillCart(t, "c1")

	for _, step := range []enums.CheckoutStep{
		enums.CheckoutStepShipping,
		enums.CheckoutStepPayment,
		enums.CheckoutStepConfirmation,
	} {
		s := reviewReadyState()
		s.Step = step
		_, err := f.svc.PlaceOrder(context.Background(), "c1", s)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("placing from %s must be rejected, got %v", step, err)
		}
	}
}

func TestPlaceOrderRevalidatesGuards(t *testing.T) {
	f := newWizardFixture(t, 0)
	f.fillCart(t, "c1")
	ctx := context.Background()

	s := reviewReadyState()
	s.Shipping.Email = ""
	_, err := f.svc.PlaceOrder(ctx, "c1", s)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("incomplete shipping must be rejected, got %v", err)
	}

	s = reviewReadyState()
	s.Payment.Card = nil
	_, err = f.svc.PlaceOrder(ctx, "c1", s)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("invalid payment must be rejected, got %v", err)
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	f := newWizardFixture(t, 0)

	_, err := f.svc.PlaceOrder(context.Background(), "c1", reviewReadyState())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("empty cart must be rejected, got %v", err)
	}
}

func TestPlaceOrderRejectsDuplicateSubmission(t *testing.T) {
	f := newWizardFixture(t, 200*time.Millisecond)
	f.fillCart(t, "c1")
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := f.svc.PlaceOrder(ctx, "c1", reviewReadyState())
		firstDone <- err
	}()

	// Wait until the first submission holds the in-flight slot.
	deadline := time.Now().Add(time.Second)
	for {
		f.svc.mu.Lock()
		held := f.svc.inflight["c1"]
		f.svc.mu.Unlock()
		if held {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first submission never started processing")
		}
		time.Sleep(time.Millisecond)
	}

	_, err := f.svc.PlaceOrder(ctx, "c1", reviewReadyState())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("duplicate submission must be rejected, got %v", err)
	}

	if err := <-firstDone; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if len(f.recorder.inputs) != 1 {
		t.Fatalf("recorded %d orders, want 1", len(f.recorder.inputs))
	}
}

func TestPlaceOrderAllowsSequentialOrders(t *testing.T) {
	f := newWizardFixture(t, 0)
	ctx := context.Background()

	f.fillCart(t, "c1")
	if _, err := f.svc.PlaceOrder(ctx, "c1", reviewReadyState()); err != nil {
		t.Fatalf("first order: %v", err)
	}

	f.fillCart(t, "c1")
	if _, err := f.svc.PlaceOrder(ctx, "c1", reviewReadyState()); err != nil {
		t.Fatalf("second order after release: %v", err)
	}
}

func TestPlaceOrderConcurrentClientsDoNotBlock(t *testing.T) {
	f := newWizardFixture(t, 50*time.Millisecond)
	ctx := context.Background()

	f.fillCart(t, "alice")
	f.fillCart(t, "bob")

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, clientID := range []string{"alice", "bob"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.svc.PlaceOrder(ctx, id, reviewReadyState())
			errs <- err
		}(clientID)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent order failed: %v", err)
		}
	}
}

func TestDisplayNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^AC-\d{6}$`)
	for i := 0; i < 50; i++ {
		n := displayNumber()
		if !re.MatchString(n) {
			t.Fatalf("display number %q does not match AC-XXXXXX", n)
		}
	}
}

func TestFormatOrderDate(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), "2 Januari 2025"},
		{time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC), "17 Agustus 2025"},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "31 Desember 2024"},
	}
	for _, tc := range cases {
		if got := formatOrderDate(tc.in); got != tc.want {
			t.Errorf("formatOrderDate(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
