package design

import (
	"context"

	"printdoot/internal/domain"
)

// Repository stores immutable design snapshots keyed by design ID, with a
// secondary index on product ID. Save has upsert semantics; in practice
// IDs embed a random component and never collide.
type Repository interface {
	Save(ctx context.Context, d domain.Design) (string, error)
	Get(ctx context.Context, id string) (*domain.Design, error)
	ByProduct(ctx context.Context, productID string) ([]domain.Design, error)
	All(ctx context.Context) ([]domain.Design, error)
	Clear(ctx context.Context) error
}
