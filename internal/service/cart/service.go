package cart

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"printdoot/internal/coupon"
	"printdoot/internal/domain"
	cartrepo "printdoot/internal/repository/cart"

	"github.com/google/uuid"
)

// taxRate is the flat GST rate applied after discounting.
const taxRate = 0.18

// DefaultShippingCents is the flat shipping charge when the caller does
// not configure one.
const DefaultShippingCents int64 = 10000

type couponVerifier interface {
	Verify(ctx context.Context, code, categoryID, productID string) (coupon.Result, error)
}

// Service owns the cart: the authoritative item list, the single active
// discount code, and the derived pricing pipeline. Every mutation is
// persisted synchronously before it returns. Totals are recomputed from
// current state on every read and never cached.
type Service struct {
	mu            sync.Mutex
	repo          cartrepo.Repository
	verifier      couponVerifier
	shippingCents int64

	items    []domain.CartItem
	discount domain.DiscountState
}

// New loads the persisted cart state and returns a ready Service.
func New(ctx context.Context, repo cartrepo.Repository, verifier couponVerifier, shippingCents int64) (*Service, error) {
	items, discount, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if shippingCents <= 0 {
		shippingCents = DefaultShippingCents
	}
	return &Service{
		repo:          repo,
		verifier:      verifier,
		shippingCents: shippingCents,
		items:         items,
		discount:      discount,
	}, nil
}

// AddToCart adds quantity of product. Items without a design merge into
// an existing line for the same product; any item that carries a design
// is always its own line, even for an identical product.
func (s *Service) AddToCart(ctx context.Context, product domain.Product, quantity int, customizations map[string]string, designID, previewPath string) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if strings.TrimSpace(product.ID) == "" {
		return nil, errors.New("product id required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hasDesign := designID != "" || previewPath != ""
	if !hasDesign {
		for i := range s.items {
			if s.items[i].Product.ID == product.ID && s.items[i].UserCustomization == nil {
				s.items[i].Quantity += quantity
				if err := s.repo.SaveItems(ctx, s.items); err != nil {
					s.items[i].Quantity -= quantity
					return nil, err
				}
				item := s.items[i]
				return &item, nil
			}
		}
	}

	item := domain.CartItem{
		ID:                     uuid.NewString(),
		Product:                product,
		Quantity:               quantity,
		SelectedCustomizations: customizations,
		AddedAt:                time.Now().UTC(),
	}
	if hasDesign {
		item.UserCustomization = &domain.UserCustomization{DesignID: designID, PreviewPath: previewPath}
	}

	s.items = append(s.items, item)
	if err := s.repo.SaveItems(ctx, s.items); err != nil {
		s.items = s.items[:len(s.items)-1]
		return nil, err
	}
	return &item, nil
}

// UpdateQuantity sets the quantity of an item; zero or negative removes
// it. An unknown id is a silent no-op.
func (s *Service) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != itemID {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = quantity
		}
		return s.repo.SaveItems(ctx, s.items)
	}
	return nil
}

// Remove deletes an item; unknown ids are a silent no-op.
func (s *Service) Remove(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.repo.SaveItems(ctx, s.items)
		}
	}
	return nil
}

// Clear empties the cart and resets the discount state. It is the only
// operation that touches both.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Reset(ctx); err != nil {
		return err
	}
	s.items = nil
	s.discount = domain.DiscountState{}
	return nil
}

// ApplyDiscount verifies code against the external coupon endpoint and
// stores the result. Any failure rolls the discount state back to its
// zero value; there is no retry. The category and product hints come
// from the cart's first item.
func (s *Service) ApplyDiscount(ctx context.Context, code string) (domain.DiscountState, error) {
	code = strings.TrimSpace(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	if code == "" {
		if err := s.resetDiscountLocked(ctx); err != nil {
			return domain.DiscountState{}, err
		}
		return domain.DiscountState{}, errors.New("discount code required")
	}

	var categoryID, productID string
	if len(s.items) > 0 {
		categoryID = s.items[0].Product.CategoryID
		productID = s.items[0].Product.ID
	}

	res, err := s.verifier.Verify(ctx, code, categoryID, productID)
	if err != nil || !res.Valid {
		if rerr := s.resetDiscountLocked(ctx); rerr != nil {
			return domain.DiscountState{}, rerr
		}
		return domain.DiscountState{}, domain.ErrInvalidCoupon
	}

	next := domain.DiscountState{Code: code, Percentage: res.DiscountPercentage, Valid: true}
	if err := s.repo.SaveDiscount(ctx, next); err != nil {
		return domain.DiscountState{}, err
	}
	s.discount = next
	return next, nil
}

// RemoveDiscount unconditionally resets the discount state.
func (s *Service) RemoveDiscount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetDiscountLocked(ctx)
}

func (s *Service) resetDiscountLocked(ctx context.Context) error {
	if err := s.repo.SaveDiscount(ctx, domain.DiscountState{}); err != nil {
		return err
	}
	s.discount = domain.DiscountState{}
	return nil
}

// Items returns a copy of the current item list.
func (s *Service) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Discount returns the current discount state.
func (s *Service) Discount() domain.DiscountState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discount
}

// Count is the total quantity across all items.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// Subtotal is the undiscounted sum in cents.
func (s *Service) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotalCents(s.items)
}

// Totals recomputes the full pricing pipeline from current state:
// subtotal, discount, 18% tax on the discounted amount, flat shipping.
func (s *Service) Totals() domain.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := subtotalCents(s.items)
	var discountAmt int64
	if s.discount.Valid {
		discountAmt = roundCents(float64(subtotal) * s.discount.Percentage / 100)
	}
	tax := roundCents(float64(subtotal-discountAmt) * taxRate)

	return domain.CartTotals{
		SubtotalCents: subtotal,
		DiscountCents: discountAmt,
		TaxCents:      tax,
		ShippingCents: s.shippingCents,
		TotalCents:    subtotal - discountAmt + tax + s.shippingCents,
	}
}

func subtotalCents(items []domain.CartItem) int64 {
	var sum int64
	for _, item := range items {
		sum += item.Product.PriceCents * int64(item.Quantity)
	}
	return sum
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
