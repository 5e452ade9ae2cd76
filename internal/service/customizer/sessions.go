package customizer

import (
	"context"
	"image"
	"sync"

	"printdoot/internal/canvas"
	"printdoot/internal/domain"

	"github.com/google/uuid"
)

type catalogReader interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type designSaver interface {
	Save(ctx context.Context, d domain.Design) error
}

type cartAdder interface {
	AddToCart(ctx context.Context, product domain.Product, quantity int, customizations map[string]string, designID, previewPath string) (*domain.CartItem, error)
}

// BackgroundLoader fetches a product image for use as the canvas
// background. A nil loader means every session starts on a blank canvas.
type BackgroundLoader func(ctx context.Context, url string) (image.Image, error)

// Session is one open customizer, bound to a product. The mutex
// serializes editor access; the editor itself is single-threaded.
type Session struct {
	ID      string
	Product domain.Product

	mu     sync.Mutex
	editor *canvas.Editor
}

// Do runs fn with exclusive access to the session's editor.
func (s *Session) Do(fn func(e *canvas.Editor)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.editor)
}

// Manager holds the open customizer sessions, keyed by session ID.
// Sessions live in memory only; a restart drops them, while their saved
// designs survive in the design store.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	catalog    catalogReader
	designs    designSaver
	cart       cartAdder
	background BackgroundLoader
	baseW      int
	baseH      int
}

func NewManager(catalog catalogReader, designs designSaver, cart cartAdder, background BackgroundLoader, baseW, baseH int) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		catalog:    catalog,
		designs:    designs,
		cart:       cart,
		background: background,
		baseW:      baseW,
		baseH:      baseH,
	}
}

// Open starts a session for the product, loading its first image as the
// canvas background when a loader is configured. A failed background
// fetch falls back to a blank canvas rather than blocking the editor.
func (m *Manager) Open(ctx context.Context, productID string) (*Session, error) {
	product, err := m.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var bg image.Image
	if m.background != nil && len(product.ImageURLs) > 0 {
		if img, err := m.background(ctx, product.ImageURLs[0]); err == nil {
			bg = img
		}
	}

	sess := &Session{
		ID:      uuid.NewString(),
		Product: *product,
		editor:  canvas.New(productID, bg, m.baseW, m.baseH),
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess, nil
}

// Get looks up an open session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

// SaveDesign exports the session's canvas and persists the result.
func (m *Manager) SaveDesign(ctx context.Context, sessionID string) (domain.Design, error) {
	sess, err := m.Get(sessionID)
	if err != nil {
		return domain.Design{}, err
	}

	sess.mu.Lock()
	d, err := sess.editor.Export()
	sess.mu.Unlock()
	if err != nil {
		return domain.Design{}, err
	}

	if err := m.designs.Save(ctx, d); err != nil {
		return domain.Design{}, err
	}
	return d, nil
}

// AddToCart exports the current canvas as a fresh design, persists it,
// and adds a cart line referencing it. Because the design ID is minted
// per export, repeated calls from the same session never merge.
func (m *Manager) AddToCart(ctx context.Context, sessionID string, quantity int, customizations map[string]string) (*domain.CartItem, error) {
	sess, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	d, err := sess.editor.Export()
	sess.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := m.designs.Save(ctx, d); err != nil {
		return nil, err
	}
	return m.cart.AddToCart(ctx, sess.Product, quantity, customizations, d.ID, "/designs/"+d.ID+"/preview")
}

// Close drops a session. Unknown IDs are a no-op.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
