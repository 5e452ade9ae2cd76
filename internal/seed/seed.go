package seed

import (
	"context"
	"fmt"

	"printdoot/internal/domain"
)

type productWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// Apply inserts basic catalog data for manual testing. Fixed IDs make it
// idempotent: rerunning overwrites the same products.
func Apply(ctx context.Context, repo productWriter) error {
	products := []domain.Product{
		{
			ID:          "demo-shirt",
			Name:        "Demo T-Shirt",
			Description: "Soft cotton tee for demo purposes",
			PriceCents:  1999,
			Currency:    "USD",
			CategoryID:  "shirts",
			ImageURLs:   []string{"https://example.com/demo-shirt.png"},
		},
		{
			ID:          "demo-mug",
			Name:        "Demo Mug",
			Description: "Ceramic mug with demo logo",
			PriceCents:  1299,
			Currency:    "USD",
			CategoryID:  "mugs",
			ImageURLs:   []string{"https://example.com/demo-mug.png"},
		},
		{
			ID:          "demo-poster",
			Name:        "Demo Poster",
			Description: "Matte A2 poster print",
			PriceCents:  899,
			Currency:    "USD",
			CategoryID:  "posters",
		},
	}

	for _, p := range products {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}

	return nil
}
