package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/keyvalue"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
	"github.com/ecocraftid/ecocraft-backend/pkg/metrics"
)

// SavedSession is a persisted mid-flow wizard snapshot.
type SavedSession struct {
	Step           enums.CheckoutStep   `json:"step"`
	Shipping       ShippingInfo         `json:"shipping"`
	Payment        PaymentSelection     `json:"payment"`
	ShippingMethod enums.ShippingMethod `json:"shipping_method"`
	SavedAt        time.Time            `json:"saved_at"`
}

// SessionService persists and restores abandoned checkouts. A session is
// resumable for 24 hours after saving; past that it is purged, never offered.
type SessionService interface {
	Save(ctx context.Context, clientID string, state State) (SavedSession, error)
	// DetectResumable returns the saved session when one exists and has not
	// expired. An expired session is deleted silently and reported as absent.
	DetectResumable(ctx context.Context, clientID string) (*SavedSession, error)
	// Resume restores the wizard and deletes the saved copy. Resume is
	// one-shot: a resumed flow must be re-saved to be resumable again.
	Resume(ctx context.Context, clientID string) (State, error)
	Dismiss(ctx context.Context, clientID string) error
	// ClearOnCompletion removes the session when the order is placed.
	ClearOnCompletion(ctx context.Context, clientID string) error
}

type sessionService struct {
	store keyvalue.Store
	ttl   time.Duration
	met   *metrics.StorefrontMetrics
	logg  *logger.Logger
	now   func() time.Time
}

// NewSessionService builds the save/resume layer. ttl is the resume window.
func NewSessionService(store keyvalue.Store, ttl time.Duration, met *metrics.StorefrontMetrics, logg *logger.Logger) (SessionService, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &sessionService{
		store: store,
		ttl:   ttl,
		met:   met,
		logg:  logg,
		now:   time.Now,
	}, nil
}

func (s *sessionService) Save(ctx context.Context, clientID string, state State) (SavedSession, error) {
	if state.Step == enums.CheckoutStepConfirmation {
		return SavedSession{}, pkgerrors.New(pkgerrors.CodeStateConflict, "completed checkout cannot be saved")
	}

	session := SavedSession{
		Step:           state.Step,
		Shipping:       state.Shipping,
		Payment:        state.Payment,
		ShippingMethod: state.ShippingMethod,
		SavedAt:        s.now().UTC(),
	}
	if err := s.store.Set(ctx, clientID, keyvalue.KeyCheckoutSession, session); err != nil {
		return SavedSession{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist checkout session")
	}

	s.met.IncSessionEvent("saved")
	return session, nil
}

// loadValid reads the saved session, purging it when expired or unreadable.
func (s *sessionService) loadValid(ctx context.Context, clientID string) (*SavedSession, error) {
	var session SavedSession
	found, err := s.store.Get(ctx, clientID, keyvalue.KeyCheckoutSession, &session)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout session")
	}
	if !found {
		return nil, nil
	}

	if s.now().UTC().Sub(session.SavedAt) >= s.ttl {
		if err := s.store.Delete(ctx, clientID, keyvalue.KeyCheckoutSession); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "purge expired session")
		}
		s.met.IncSessionEvent("expired")
		s.logg.Debug(ctx, "checkout.session_expired")
		return nil, nil
	}

	return &session, nil
}

func (s *sessionService) DetectResumable(ctx context.Context, clientID string) (*SavedSession, error) {
	return s.loadValid(ctx, clientID)
}

func (s *sessionService) Resume(ctx context.Context, clientID string) (State, error) {
	session, err := s.loadValid(ctx, clientID)
	if err != nil {
		return State{}, err
	}
	if session == nil {
		return State{}, pkgerrors.New(pkgerrors.CodeNotFound, "no resumable checkout session")
	}

	if err := s.store.Delete(ctx, clientID, keyvalue.KeyCheckoutSession); err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume checkout session")
	}

	s.met.IncSessionEvent("resumed")
	return State{
		Step:           session.Step,
		Shipping:       session.Shipping,
		Payment:        session.Payment,
		ShippingMethod: session.ShippingMethod,
	}, nil
}

func (s *sessionService) Dismiss(ctx context.Context, clientID string) error {
	if err := s.store.Delete(ctx, clientID, keyvalue.KeyCheckoutSession); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dismiss checkout session")
	}
	s.met.IncSessionEvent("dismissed")
	return nil
}

func (s *sessionService) ClearOnCompletion(ctx context.Context, clientID string) error {
	return s.store.Delete(ctx, clientID, keyvalue.KeyCheckoutSession)
}
