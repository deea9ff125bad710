package profile

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/keyvalue"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
)

// Profile is the editable account card shown on the profile page.
type Profile struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Avatar   string `json:"avatar"`
	JoinDate string `json:"join_date"`
	Bio      string `json:"bio"`
}

// DefaultProfile is what a client sees before their first save.
func DefaultProfile() Profile {
	return Profile{
		Name:     "kipasku",
		Email:    "kipas1@gmail.com",
		Phone:    "+62 812-3456-7890",
		Address:  "Jakarta Selatan, Indonesia",
		Avatar:   "/placeholder.svg?height=120&width=120",
		JoinDate: "Januari 2024",
		Bio:      "Pecinta kucing yang senang berbagi fakta menarik tentang hewan kesayangan.",
	}
}

type Service interface {
	Get(ctx context.Context, clientID string) (Profile, error)
	Update(ctx context.Context, clientID string, p Profile) (Profile, error)
}

type service struct {
	store keyvalue.Store
	logg  *logger.Logger
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

// Get returns the saved profile, or the defaults when nothing readable is
// stored.
func (s *service) Get(ctx context.Context, clientID string) (Profile, error) {
	var p Profile
	found, err := s.store.Get(ctx, clientID, keyvalue.KeyProfile, &p)
	if err != nil {
		return Profile{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	if !found {
		return DefaultProfile(), nil
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, clientID string, p Profile) (Profile, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Profile{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return Profile{}, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	if err := s.store.Set(ctx, clientID, keyvalue.KeyProfile, p); err != nil {
		return Profile{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist profile")
	}
	return p, nil
}
