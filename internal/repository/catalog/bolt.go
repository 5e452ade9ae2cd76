package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"printdoot/internal/domain"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketCatalog = []byte("catalog")

type boltRepo struct {
	db *bolt.DB
}

func NewBolt(db *bolt.DB) Repository {
	return &boltRepo{db: db}
}

func (r *boltRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal product %s: %w", p.ID, err)
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCatalog).Put([]byte(p.ID), raw)
	})
	if err != nil {
		return nil, fmt.Errorf("upsert product %s: %w", p.ID, err)
	}
	return &p, nil
}

func (r *boltRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	var out *domain.Product
	err := r.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketCatalog).Get([]byte(id))
		if raw == nil {
			return domain.ErrNotFound
		}
		var p domain.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("unmarshal product %s: %w", id, err)
		}
		out = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns cached products, optionally filtered by category.
func (r *boltRepo) List(_ context.Context, categoryID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCatalog).ForEach(func(id, raw []byte) error {
			var p domain.Product
			if err := json.Unmarshal(raw, &p); err != nil {
				return fmt.Errorf("unmarshal product %s: %w", id, err)
			}
			if categoryID != "" && p.CategoryID != categoryID {
				return nil
			}
			out = append(out, p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
