package importer

import (
	"context"
	"strings"
	"testing"

	"printdoot/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,name,description,price_cents,currency,category_id,image_url
prod-1,Classic Mug,Ceramic mug,499,USD,mugs,https://example.com/mug-front.jpg
,,,,,,https://example.com/mug-back.jpg
prod-2,Basic Tee,Cotton tee,1999,USD,shirts,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}
	if len(repo.items) != 2 {
		t.Fatalf("expected 2 products saved, got %d", len(repo.items))
	}

	first := repo.items[0]
	if first.ID != "prod-1" || first.Name != "Classic Mug" || first.PriceCents != 499 || first.Currency != "USD" || first.CategoryID != "mugs" {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if len(first.ImageURLs) != 2 {
		t.Fatalf("expected 2 images on first product, got %v", first.ImageURLs)
	}
	if repo.items[1].CategoryID != "shirts" || len(repo.items[1].ImageURLs) != 0 {
		t.Fatalf("unexpected second product: %+v", repo.items[1])
	}
}

func TestCSVImporter_RejectsIncompleteRow(t *testing.T) {
	csvData := `id,name,description,price_cents,currency,category_id,image_url
,No Price,desc,,USD,mugs,`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for row without price")
	}
}

func TestCSVImporter_SkipsBlankRows(t *testing.T) {
	csvData := `id,name,description,price_cents,currency,category_id,image_url
,,,,,,
prod-1,Mug,desc,499,USD,mugs,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)
	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 1 || len(repo.items) != 1 {
		t.Fatalf("expected single product, got count=%d items=%d", count, len(repo.items))
	}
}
