package favorites

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/ecocraftid/ecocraft-backend/internal/facts"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/keyvalue"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
)

// Service keeps a client's favorited facts. Two records back it: an id-set
// and the fact payloads. Writes keep both in sync; reads reconcile any drift
// between them so an orphaned entry never surfaces.
type Service interface {
	// Toggle favorites the fact if absent, unfavorites it if present, and
	// reports the resulting favorited state.
	Toggle(ctx context.Context, clientID string, fact facts.Fact) (bool, error)
	List(ctx context.Context, clientID string) ([]facts.Fact, error)
	ClearAll(ctx context.Context, clientID string) error
}

type service struct {
	store keyvalue.Store
	logg  *logger.Logger

	mu sync.Mutex
}

func NewService(store keyvalue.Store, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{store: store, logg: logg}, nil
}

func (s *service) load(ctx context.Context, clientID string) ([]string, []facts.Fact, error) {
	var ids []string
	if _, err := s.store.Get(ctx, clientID, keyvalue.KeyFavoriteIDs, &ids); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favorite ids")
	}
	var payloads []facts.Fact
	if _, err := s.store.Get(ctx, clientID, keyvalue.KeyFavoriteFacts, &payloads); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favorite payloads")
	}
	return ids, payloads, nil
}

func (s *service) persist(ctx context.Context, clientID string, ids []string, payloads []facts.Fact) error {
	err := multierr.Combine(
		s.store.Set(ctx, clientID, keyvalue.KeyFavoriteIDs, ids),
		s.store.Set(ctx, clientID, keyvalue.KeyFavoriteFacts, payloads),
	)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist favorites")
	}
	return nil
}

func (s *service) Toggle(ctx context.Context, clientID string, fact facts.Fact) (bool, error) {
	if fact.ID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "fact id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, payloads, err := s.load(ctx, clientID)
	if err != nil {
		return false, err
	}

	if containsID(ids, fact.ID) {
		ids = removeID(ids, fact.ID)
		payloads = removePayload(payloads, fact.ID)
		if err := s.persist(ctx, clientID, ids, payloads); err != nil {
			return false, err
		}
		return false, nil
	}

	ids = append(ids, fact.ID)
	payloads = append(payloads, fact)
	if err := s.persist(ctx, clientID, ids, payloads); err != nil {
		return false, err
	}
	return true, nil
}

// List returns the favorited facts in toggle order. Payloads whose id is
// missing from the id-set (or the reverse) are dropped and the repaired
// records written back.
func (s *service) List(ctx context.Context, clientID string) ([]facts.Fact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, payloads, err := s.load(ctx, clientID)
	if err != nil {
		return nil, err
	}

	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	reconciled := make([]facts.Fact, 0, len(payloads))
	keptIDs := make([]string, 0, len(ids))
	kept := map[string]bool{}
	for _, p := range payloads {
		if idSet[p.ID] && !kept[p.ID] {
			reconciled = append(reconciled, p)
			keptIDs = append(keptIDs, p.ID)
			kept[p.ID] = true
		}
	}

	if len(reconciled) != len(payloads) || len(keptIDs) != len(ids) {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"ids":      len(ids),
			"payloads": len(payloads),
			"kept":     len(reconciled),
		})
		s.logg.Warn(ctx, "favorites.reconciled_drift")
		if err := s.persist(ctx, clientID, keptIDs, reconciled); err != nil {
			return nil, err
		}
	}

	return reconciled, nil
}

func (s *service) ClearAll(ctx context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, clientID, keyvalue.KeyFavoriteIDs, keyvalue.KeyFavoriteFacts); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear favorites")
	}
	return nil
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

func removePayload(payloads []facts.Fact, id string) []facts.Fact {
	out := payloads[:0]
	for _, p := range payloads {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
