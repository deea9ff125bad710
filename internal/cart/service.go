package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/keyvalue"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
	"github.com/ecocraftid/ecocraft-backend/pkg/metrics"
	"github.com/ecocraftid/ecocraft-backend/pkg/pricing"
)

// Service owns a client's cart snapshot. All mutations persist before
// returning; reads of an unreadable snapshot yield an empty cart.
type Service interface {
	Get(ctx context.Context, clientID string) (State, error)
	AddItem(ctx context.Context, clientID string, item Item) (State, error)
	RemoveItem(ctx context.Context, clientID, productID string) (State, error)
	UpdateQuantity(ctx context.Context, clientID, productID string, quantity int) (State, error)
	Increment(ctx context.Context, clientID, productID string) (State, error)
	Decrement(ctx context.Context, clientID, productID string) (State, error)
	Clear(ctx context.Context, clientID string) error
	Summary(ctx context.Context, clientID string, method enums.ShippingMethod) (pricing.Summary, error)
}

type service struct {
	store keyvalue.Store
	met   *metrics.StorefrontMetrics
	logg  *logger.Logger

	// Serializes read-modify-write cycles within this process. The store
	// itself is last-write-wins, same as concurrent browser tabs were.
	mu sync.Mutex
}

func NewService(store keyvalue.Store, met *metrics.StorefrontMetrics, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{store: store, met: met, logg: logg}, nil
}

func (s *service) load(ctx context.Context, clientID string) (State, error) {
	var state State
	found, err := s.store.Get(ctx, clientID, keyvalue.KeyCart, &state)
	if err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if !found {
		return State{Lines: []Line{}}, nil
	}
	if state.Lines == nil {
		state.Lines = []Line{}
	}
	return state, nil
}

func (s *service) persist(ctx context.Context, clientID string, state State, op string) (State, error) {
	if err := s.store.Set(ctx, clientID, keyvalue.KeyCart, state); err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	s.met.IncCartMutation(op)
	return state, nil
}

func (s *service) Get(ctx context.Context, clientID string) (State, error) {
	return s.load(ctx, clientID)
}

func (s *service) AddItem(ctx context.Context, clientID string, item Item) (State, error) {
	if item.ProductID == "" {
		return State{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if item.UnitPrice < 0 {
		return State{}, pkgerrors.New(pkgerrors.CodeValidation, "unit price must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx, clientID)
	if err != nil {
		return State{}, err
	}

	if i := state.lineIndex(item.ProductID); i >= 0 {
		state.Lines[i].Quantity++
	} else {
		state.Lines = append(state.Lines, Line{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  1,
			Image:     item.Image,
		})
	}
	state.TotalPrice += item.UnitPrice

	return s.persist(ctx, clientID, state, "add")
}

func (s *service) RemoveItem(ctx context.Context, clientID, productID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx, clientID)
	if err != nil {
		return State{}, err
	}

	i := state.lineIndex(productID)
	if i < 0 {
		// Removing an absent line is a no-op, not an error.
		return state, nil
	}

	line := state.Lines[i]
	state.Lines = append(state.Lines[:i], state.Lines[i+1:]...)
	state.TotalPrice -= line.UnitPrice * int64(line.Quantity)

	return s.persist(ctx, clientID, state, "remove")
}

func (s *service) UpdateQuantity(ctx context.Context, clientID, productID string, quantity int) (State, error) {
	if quantity < 1 {
		return State{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]any{"quantity": quantity})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx, clientID)
	if err != nil {
		return State{}, err
	}

	i := state.lineIndex(productID)
	if i < 0 {
		return State{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found").
			WithDetails(map[string]any{"product_id": productID})
	}

	line := &state.Lines[i]
	delta := quantity - line.Quantity
	line.Quantity = quantity
	state.TotalPrice += line.UnitPrice * int64(delta)

	return s.persist(ctx, clientID, state, "update_quantity")
}

// Increment bumps an existing line by one.
func (s *service) Increment(ctx context.Context, clientID, productID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx, clientID)
	if err != nil {
		return State{}, err
	}

	i := state.lineIndex(productID)
	if i < 0 {
		return State{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found").
			WithDetails(map[string]any{"product_id": productID})
	}

	state.Lines[i].Quantity++
	state.TotalPrice += state.Lines[i].UnitPrice

	return s.persist(ctx, clientID, state, "increment")
}

// Decrement lowers an existing line by one. At quantity 1 the line is
// removed outright; a zero-quantity line is never written.
func (s *service) Decrement(ctx context.Context, clientID, productID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx, clientID)
	if err != nil {
		return State{}, err
	}

	i := state.lineIndex(productID)
	if i < 0 {
		return State{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found").
			WithDetails(map[string]any{"product_id": productID})
	}

	line := &state.Lines[i]
	if line.Quantity <= 1 {
		state.TotalPrice -= line.UnitPrice
		state.Lines = append(state.Lines[:i], state.Lines[i+1:]...)
		return s.persist(ctx, clientID, state, "remove")
	}

	line.Quantity--
	state.TotalPrice -= line.UnitPrice

	return s.persist(ctx, clientID, state, "decrement")
}

func (s *service) Clear(ctx context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.persist(ctx, clientID, State{Lines: []Line{}}, "clear")
	return err
}

// Summary prices the current cart with the chosen shipping tier.
func (s *service) Summary(ctx context.Context, clientID string, method enums.ShippingMethod) (pricing.Summary, error) {
	state, err := s.load(ctx, clientID)
	if err != nil {
		return pricing.Summary{}, err
	}
	return pricing.Quote(state.TotalPrice, method), nil
}
