package design

import (
	"context"
	"errors"
	"sort"

	"printdoot/internal/domain"
)

type designRepo interface {
	Save(ctx context.Context, d domain.Design) (string, error)
	Get(ctx context.Context, id string) (*domain.Design, error)
	ByProduct(ctx context.Context, productID string) ([]domain.Design, error)
	All(ctx context.Context) ([]domain.Design, error)
	Clear(ctx context.Context) error
}

// Service exposes the saved-design store. Designs are immutable once
// saved; there is no update path.
type Service struct {
	repo designRepo
}

func New(repo designRepo) *Service {
	return &Service{repo: repo}
}

// Save persists a finished design.
func (s *Service) Save(ctx context.Context, d domain.Design) error {
	if d.ID == "" {
		return errors.New("design id required")
	}
	if d.ProductID == "" {
		return errors.New("product id required")
	}
	_, err := s.repo.Save(ctx, d)
	return err
}

// Get returns one design by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Design, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Design{}, err
	}
	return *d, nil
}

// ForProduct lists the designs saved for a product, newest first.
func (s *Service) ForProduct(ctx context.Context, productID string) ([]domain.Design, error) {
	designs, err := s.repo.ByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(designs)
	return designs, nil
}

// All lists every saved design, newest first.
func (s *Service) All(ctx context.Context) ([]domain.Design, error) {
	designs, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(designs)
	return designs, nil
}

// Clear wipes the design store.
func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func sortNewestFirst(designs []domain.Design) {
	sort.SliceStable(designs, func(i, j int) bool {
		return designs[i].CreatedAt.After(designs[j].CreatedAt)
	})
}
