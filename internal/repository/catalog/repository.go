package catalog

import (
	"context"

	"printdoot/internal/domain"
)

// Repository is the storefront's local snapshot cache of the external
// product catalog. It is populated by the seeder and the CSV importer and
// read by the customizer and cart flows.
type Repository interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, categoryID string) ([]domain.Product, error)
}
