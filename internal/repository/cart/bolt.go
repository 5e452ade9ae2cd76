package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"printdoot/internal/domain"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketCartItems = []byte("cart_items")
	bucketDiscount  = []byte("discount")

	keyItems    = []byte("items")
	keyDiscount = []byte("state")
)

type boltRepo struct {
	db *bolt.DB
}

func NewBolt(db *bolt.DB) Repository {
	return &boltRepo{db: db}
}

func (r *boltRepo) Load(_ context.Context) ([]domain.CartItem, domain.DiscountState, error) {
	var (
		items    []domain.CartItem
		discount domain.DiscountState
	)
	err := r.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(bucketCartItems).Get(keyItems); raw != nil {
			if err := json.Unmarshal(raw, &items); err != nil {
				return fmt.Errorf("unmarshal cart items: %w", err)
			}
		}
		if raw := tx.Bucket(bucketDiscount).Get(keyDiscount); raw != nil {
			if err := json.Unmarshal(raw, &discount); err != nil {
				return fmt.Errorf("unmarshal discount state: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.DiscountState{}, err
	}
	return items, discount, nil
}

func (r *boltRepo) SaveItems(_ context.Context, items []domain.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart items: %w", err)
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCartItems).Put(keyItems, raw)
	})
}

func (r *boltRepo) SaveDiscount(_ context.Context, d domain.DiscountState) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal discount state: %w", err)
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDiscount).Put(keyDiscount, raw)
	})
}

// Reset clears both slots in a single transaction so a crash between the
// two writes can never leave a discount attached to an empty cart.
func (r *boltRepo) Reset(_ context.Context) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketCartItems).Delete(keyItems); err != nil {
			return err
		}
		return tx.Bucket(bucketDiscount).Delete(keyDiscount)
	})
}
