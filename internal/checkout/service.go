package checkout

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/ecocraftid/ecocraft-backend/internal/cart"
	"github.com/ecocraftid/ecocraft-backend/internal/orders"
	"github.com/ecocraftid/ecocraft-backend/pkg/db/models"
	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
	"github.com/ecocraftid/ecocraft-backend/pkg/metrics"
	"github.com/ecocraftid/ecocraft-backend/pkg/pricing"
)

// CartStore is the slice of the cart service order placement needs.
type CartStore interface {
	Get(ctx context.Context, clientID string) (cart.State, error)
	Clear(ctx context.Context, clientID string) error
}

// OrderRecorder persists the completed order.
type OrderRecorder interface {
	Record(ctx context.Context, input orders.RecordInput) (*models.Order, error)
}

// Confirmation is the terminal wizard payload.
type Confirmation struct {
	OrderID       uuid.UUID       `json:"order_id"`
	DisplayNumber string          `json:"display_number"`
	OrderDate     string          `json:"order_date"`
	PlacedAt      time.Time       `json:"placed_at"`
	Summary       pricing.Summary `json:"summary"`
	Lines         []cart.Line     `json:"lines"`
}

// Service drives the checkout wizard across requests.
type Service interface {
	// Begin returns a fresh wizard at the shipping step.
	Begin() State
	// Advance applies one step transition with its guard.
	Advance(ctx context.Context, state State, to enums.CheckoutStep) (State, error)
	// PlaceOrder runs the simulated payment step and completes the wizard.
	// It clears both the saved session and the cart on success.
	PlaceOrder(ctx context.Context, clientID string, state State) (Confirmation, error)
}

type service struct {
	carts    CartStore
	sessions SessionService
	orders   OrderRecorder
	met      *metrics.StorefrontMetrics
	logg     *logger.Logger

	delay    time.Duration
	now      func() time.Time
	numberFn func() string

	mu       sync.Mutex
	inflight map[string]bool
}

// NewService wires the wizard orchestrator. delay is the simulated payment
// authorization time.
func NewService(carts CartStore, sessions SessionService, recorder OrderRecorder, delay time.Duration, met *metrics.StorefrontMetrics, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session service is required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("order recorder is required")
	}
	if delay < 0 {
		return nil, fmt.Errorf("delay must not be negative")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &service{
		carts:    carts,
		sessions: sessions,
		orders:   recorder,
		met:      met,
		logg:     logg,
		delay:    delay,
		now:      time.Now,
		numberFn: displayNumber,
		inflight: map[string]bool{},
	}, nil
}

// displayNumber generates the cosmetic order identifier shown to the user.
// It carries no uniqueness guarantee; the order row ID is the real key.
func displayNumber() string {
	return fmt.Sprintf("AC-%06d", 100000+rand.IntN(900000))
}

func (s *service) Begin() State {
	return NewState()
}

func (s *service) Advance(ctx context.Context, state State, to enums.CheckoutStep) (State, error) {
	next, err := Advance(state, to)
	if err != nil {
		return State{}, err
	}
	return next, nil
}

func (s *service) acquire(clientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[clientID] {
		return false
	}
	s.inflight[clientID] = true
	return true
}

func (s *service) release(clientID string) {
	s.mu.Lock()
	delete(s.inflight, clientID)
	s.mu.Unlock()
}

func (s *service) PlaceOrder(ctx context.Context, clientID string, state State) (Confirmation, error) {
	if clientID == "" {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeValidation, "client id is required")
	}
	if state.Step != enums.CheckoutStepReview {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeStateConflict, "order can only be placed from the review step").
			WithDetails(map[string]any{"step": string(state.Step)})
	}
	if !state.Shipping.Complete() {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeValidation, "shipping information is incomplete")
	}
	if !state.Payment.Valid() {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeValidation, "payment selection is incomplete")
	}

	if !s.acquire(clientID) {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeStateConflict, "an order is already being processed")
	}
	defer s.release(clientID)

	cartState, err := s.carts.Get(ctx, clientID)
	if err != nil {
		return Confirmation{}, err
	}
	if len(cartState.Lines) == 0 {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	// Simulated payment authorization. Deliberately not cancellable via ctx:
	// once submitted, the authorization runs to completion.
	started := s.now()
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.met.ObserveCheckoutProcessing(s.now().Sub(started))

	summary := pricing.Quote(cartState.TotalPrice, state.ShippingMethod)

	lines := make([]models.OrderLine, 0, len(cartState.Lines))
	for _, l := range cartState.Lines {
		lines = append(lines, models.OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Image:     l.Image,
		})
	}

	placedAt := s.now().UTC()
	order, err := s.orders.Record(ctx, orders.RecordInput{
		ClientID:       clientID,
		DisplayNumber:  s.numberFn(),
		ShippingMethod: summary.ShippingMethod,
		PaymentMethod:  state.Payment.Method,
		Summary:        summary,
		Lines:          lines,
		PlacedAt:       placedAt,
	})
	if err != nil {
		return Confirmation{}, err
	}

	// The order is already persisted; cleanup failures are logged, not
	// surfaced, so the client still sees their confirmation.
	cleanup := multierr.Combine(
		s.sessions.ClearOnCompletion(ctx, clientID),
		s.carts.Clear(ctx, clientID),
	)
	if cleanup != nil {
		s.logg.Error(ctx, "checkout.cleanup_failed", cleanup)
	}

	s.met.IncCheckoutCompleted()

	ctx = s.logg.WithFields(ctx, map[string]any{
		"order_id":       order.ID,
		"display_number": order.DisplayNumber,
		"total":          order.Total,
	})
	s.logg.Info(ctx, "checkout.completed")

	return Confirmation{
		OrderID:       order.ID,
		DisplayNumber: order.DisplayNumber,
		OrderDate:     formatOrderDate(placedAt),
		PlacedAt:      placedAt,
		Summary:       summary,
		Lines:         cartState.Lines,
	}, nil
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// formatOrderDate renders the confirmation date the way the storefront
// shows it, e.g. "4 Juli 2025".
func formatOrderDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}
