package design

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"printdoot/internal/domain"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketDesigns          = []byte("designs")
	bucketDesignsByProduct = []byte("designs_by_product")
)

type boltRepo struct {
	db *bolt.DB
}

func NewBolt(db *bolt.DB) Repository {
	return &boltRepo{db: db}
}

// record is the stored form of a design. []byte fields round-trip through
// JSON as base64.
type record struct {
	ID        string        `json:"id"`
	ProductID string        `json:"productId"`
	CreatedAt time.Time     `json:"createdAt"`
	Composite []byte        `json:"composite"`
	Images    []imageRecord `json:"images,omitempty"`
	Texts     []textRecord  `json:"texts,omitempty"`
}

type imageRecord struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	PNG  []byte `json:"png"`
}

type textRecord struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	PNG  []byte `json:"png"`
}

func (r *boltRepo) Save(_ context.Context, d domain.Design) (string, error) {
	raw, err := json.Marshal(toRecord(d))
	if err != nil {
		return "", fmt.Errorf("marshal design %s: %w", d.ID, err)
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketDesigns).Put([]byte(d.ID), raw); err != nil {
			return err
		}
		idx, err := tx.Bucket(bucketDesignsByProduct).CreateBucketIfNotExists([]byte(d.ProductID))
		if err != nil {
			return err
		}
		return idx.Put([]byte(d.ID), nil)
	})
	if err != nil {
		return "", fmt.Errorf("save design %s: %w", d.ID, err)
	}
	return d.ID, nil
}

func (r *boltRepo) Get(_ context.Context, id string) (*domain.Design, error) {
	var out *domain.Design
	err := r.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketDesigns).Get([]byte(id))
		if raw == nil {
			return domain.ErrNotFound
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("unmarshal design %s: %w", id, err)
		}
		d := fromRecord(rec)
		out = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ByProduct returns every design saved for the product, in no particular
// order. Callers sort by CreatedAt when they need the latest.
func (r *boltRepo) ByProduct(_ context.Context, productID string) ([]domain.Design, error) {
	var out []domain.Design
	err := r.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bucketDesignsByProduct).Bucket([]byte(productID))
		if idx == nil {
			return nil
		}
		designs := tx.Bucket(bucketDesigns)
		return idx.ForEach(func(id, _ []byte) error {
			raw := designs.Get(id)
			if raw == nil {
				// Index entry without a record; skip rather than fail.
				return nil
			}
			var rec record
			if err := json.Unmarshal(raw, &rec); err != nil {
				return fmt.Errorf("unmarshal design %s: %w", id, err)
			}
			out = append(out, fromRecord(rec))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *boltRepo) All(_ context.Context) ([]domain.Design, error) {
	var out []domain.Design
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDesigns).ForEach(func(id, raw []byte) error {
			var rec record
			if err := json.Unmarshal(raw, &rec); err != nil {
				return fmt.Errorf("unmarshal design %s: %w", id, err)
			}
			out = append(out, fromRecord(rec))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *boltRepo) Clear(_ context.Context) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketDesigns, bucketDesignsByProduct} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}

func toRecord(d domain.Design) record {
	rec := record{
		ID:        d.ID,
		ProductID: d.ProductID,
		CreatedAt: d.CreatedAt,
		Composite: d.Composite,
	}
	for _, img := range d.Images {
		rec.Images = append(rec.Images, imageRecord{ID: img.ID, Name: img.Name, PNG: img.PNG})
	}
	for _, txt := range d.Texts {
		rec.Texts = append(rec.Texts, textRecord{ID: txt.ID, Text: txt.Text, PNG: txt.PNG})
	}
	return rec
}

func fromRecord(rec record) domain.Design {
	d := domain.Design{
		ID:        rec.ID,
		ProductID: rec.ProductID,
		CreatedAt: rec.CreatedAt,
		Composite: rec.Composite,
	}
	for _, img := range rec.Images {
		d.Images = append(d.Images, domain.ImagePart{ID: img.ID, Name: img.Name, PNG: img.PNG})
	}
	for _, txt := range rec.Texts {
		d.Texts = append(d.Texts, domain.TextPart{ID: txt.ID, Text: txt.Text, PNG: txt.PNG})
	}
	return d
}
