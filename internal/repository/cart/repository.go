package cart

import (
	"context"

	"printdoot/internal/domain"
)

// Repository is the durable backing for the cart: one slot for the item
// list and one for the discount state, both written synchronously after
// every mutation so the cart survives restarts.
type Repository interface {
	Load(ctx context.Context) ([]domain.CartItem, domain.DiscountState, error)
	SaveItems(ctx context.Context, items []domain.CartItem) error
	SaveDiscount(ctx context.Context, d domain.DiscountState) error
	Reset(ctx context.Context) error
}
