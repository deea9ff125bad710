package orders

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecocraftid/ecocraft-backend/pkg/db/models"
	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
	"github.com/ecocraftid/ecocraft-backend/pkg/pricing"
)

// RecordInput is everything needed to persist a completed checkout.
type RecordInput struct {
	ClientID       string
	DisplayNumber  string
	ShippingMethod enums.ShippingMethod
	PaymentMethod  enums.PaymentMethod
	Summary        pricing.Summary
	Lines          []models.OrderLine
	PlacedAt       time.Time
}

// Service records and reads completed orders.
type Service interface {
	Record(ctx context.Context, input RecordInput) (*models.Order, error)
	GetByID(ctx context.Context, clientID string, id uuid.UUID) (*models.Order, error)
	ListForClient(ctx context.Context, clientID string) ([]models.Order, error)
}

// TxRunner executes fn inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   TxRunner
	logg *logger.Logger
}

func NewService(repo Repository, tx TxRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

func (s *service) Record(ctx context.Context, input RecordInput) (*models.Order, error) {
	if input.ClientID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client id is required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order has no lines")
	}
	if input.PlacedAt.IsZero() {
		input.PlacedAt = time.Now().UTC()
	}

	order := &models.Order{
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
	}

	// The order row and its lines commit or roll back together.
	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		created, err = s.repo.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"order_id":       created.ID,
		"display_number": created.DisplayNumber,
		"total":          created.Total,
	})
	s.logg.Info(ctx, "orders.recorded")

	return created, nil
}

func (s *service) GetByID(ctx context.Context, clientID string, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	// An order is only visible to the client that placed it.
	if order.ClientID != clientID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) ListForClient(ctx context.Context, clientID string) ([]models.Order, error) {
	if clientID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client id is required")
	}
	orders, err := s.repo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}
