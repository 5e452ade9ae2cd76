package customizer

import (
	"context"
	"errors"
	"testing"

	"printdoot/internal/canvas"
	"printdoot/internal/domain"
)

type stubCatalog struct {
	product domain.Product
	err     error
}

func (s *stubCatalog) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p := s.product
	return &p, nil
}

type stubDesigns struct {
	saved []domain.Design
	err   error
}

func (s *stubDesigns) Save(_ context.Context, d domain.Design) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, d)
	return nil
}

type stubCart struct {
	lastProduct  domain.Product
	lastQty      int
	lastDesignID string
	lastPreview  string
	calls        int
	err          error
}

func (s *stubCart) AddToCart(_ context.Context, product domain.Product, quantity int, _ map[string]string, designID, previewPath string) (*domain.CartItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.calls++
	s.lastProduct = product
	s.lastQty = quantity
	s.lastDesignID = designID
	s.lastPreview = previewPath
	return &domain.CartItem{ID: "item-1", Product: product, Quantity: quantity}, nil
}

func tshirt() domain.Product {
	return domain.Product{ID: "tee-1", Name: "Tee", PriceCents: 1999, Currency: "USD", CategoryID: "shirts"}
}

func newManager(catalog *stubCatalog, designs *stubDesigns, cart *stubCart) *Manager {
	return NewManager(catalog, designs, cart, nil, 400, 400)
}

func TestOpenCreatesSession(t *testing.T) {
	m := newManager(&stubCatalog{product: tshirt()}, &stubDesigns{}, &stubCart{})

	sess, err := m.Open(context.Background(), "tee-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if sess.ID == "" {
		t.Fatalf("expected session id")
	}
	if sess.Product.ID != "tee-1" {
		t.Fatalf("expected product loaded, got %+v", sess.Product)
	}

	got, err := m.Get(sess.ID)
	if err != nil || got != sess {
		t.Fatalf("expected session retrievable, got %v err %v", got, err)
	}
}

func TestOpenUnknownProduct(t *testing.T) {
	m := newManager(&stubCatalog{err: domain.ErrNotFound}, &stubDesigns{}, &stubCart{})
	if _, err := m.Open(context.Background(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUnknownSession(t *testing.T) {
	m := newManager(&stubCatalog{}, &stubDesigns{}, &stubCart{})
	if _, err := m.Get("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveDesignExportsAndPersists(t *testing.T) {
	designs := &stubDesigns{}
	m := newManager(&stubCatalog{product: tshirt()}, designs, &stubCart{})
	sess, err := m.Open(context.Background(), "tee-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sess.Do(func(e *canvas.Editor) { e.AddText() })

	d, err := m.SaveDesign(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("save design: %v", err)
	}
	if d.ProductID != "tee-1" || len(d.Texts) != 1 {
		t.Fatalf("unexpected design: %+v", d)
	}
	if len(designs.saved) != 1 || designs.saved[0].ID != d.ID {
		t.Fatalf("expected design persisted")
	}
}

func TestAddToCartMintsFreshDesignEachTime(t *testing.T) {
	designs := &stubDesigns{}
	cart := &stubCart{}
	m := newManager(&stubCatalog{product: tshirt()}, designs, cart)
	sess, err := m.Open(context.Background(), "tee-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	first, err := m.AddToCart(context.Background(), sess.ID, 1, map[string]string{"size": "M"})
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if first == nil || cart.lastQty != 1 {
		t.Fatalf("expected cart call with qty 1")
	}
	firstDesign := cart.lastDesignID

	if _, err := m.AddToCart(context.Background(), sess.ID, 2, nil); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if cart.lastDesignID == firstDesign {
		t.Fatalf("expected a fresh design id per add, got %q twice", firstDesign)
	}
	if cart.lastPreview != "/designs/"+cart.lastDesignID+"/preview" {
		t.Fatalf("unexpected preview path %q", cart.lastPreview)
	}
	if len(designs.saved) != 2 {
		t.Fatalf("expected both designs persisted, got %d", len(designs.saved))
	}
}

func TestAddToCartStopsOnSaveFailure(t *testing.T) {
	cart := &stubCart{}
	m := newManager(&stubCatalog{product: tshirt()}, &stubDesigns{err: errors.New("disk full")}, cart)
	sess, err := m.Open(context.Background(), "tee-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := m.AddToCart(context.Background(), sess.ID, 1, nil); err == nil {
		t.Fatalf("expected save error surfaced")
	}
	if cart.calls != 0 {
		t.Fatalf("cart must not be touched when the design save fails")
	}
}

func TestClose(t *testing.T) {
	m := newManager(&stubCatalog{product: tshirt()}, &stubDesigns{}, &stubCart{})
	sess, err := m.Open(context.Background(), "tee-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	m.Close(sess.ID)
	if _, err := m.Get(sess.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected session gone")
	}
	m.Close("already-gone")
}
