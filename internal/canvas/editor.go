package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/google/uuid"
)

// State is the editing session state. Exactly one element can be selected
// at a time; text editing is only reachable from a selected text element
// and returns to the selected state on exit.
type State int

const (
	StateIdle State = iota
	StateSelected
	StateTextEditing
)

// Kind discriminates the two layer types.
type Kind int

const (
	KindImage Kind = iota
	KindText
)

const (
	defaultText     = "New Text"
	defaultFontSize = 48
)

// Element is one layer on the canvas. Position and size are stored in
// base-resolution coordinates so viewport resizing never affects exports.
// Rotation is degrees clockwise about the element center.
type Element struct {
	ID       string
	Kind     Kind
	X        float64
	Y        float64
	W        float64
	H        float64
	Rotation float64

	// Image layers.
	Source   image.Image
	Original []byte
	Name     string

	// Text layers.
	Text     string
	FontSize float64
	Color    color.RGBA
}

// Attrs is a partial attribute update; nil fields are left unchanged.
type Attrs struct {
	X        *float64
	Y        *float64
	W        *float64
	H        *float64
	Rotation *float64
	Text     *string
	FontSize *float64
	Color    *color.RGBA
}

// Editor composes image and text layers over a fixed product background.
// Elements are addressed by ID through an explicit map; the order slice is
// the paint order, back to front. The editor itself is not safe for
// concurrent use; callers serialize access per session.
type Editor struct {
	productID  string
	baseW      int
	baseH      int
	background image.Image

	elements map[string]*Element
	order    []string

	state      State
	selected   string
	editBuffer string

	viewportW int
	viewportH int
}

// New creates an editor for product productID with the given base design
// resolution. background may be nil for blank-canvas products.
func New(productID string, background image.Image, baseW, baseH int) *Editor {
	return &Editor{
		productID:  productID,
		baseW:      baseW,
		baseH:      baseH,
		background: background,
		elements:   make(map[string]*Element),
		viewportW:  baseW,
		viewportH:  baseH,
	}
}

func (e *Editor) ProductID() string { return e.productID }
func (e *Editor) State() State      { return e.state }

// Selected returns the selected element, or nil in the idle state.
func (e *Editor) Selected() *Element {
	if e.selected == "" {
		return nil
	}
	return e.elements[e.selected]
}

// Element looks up a layer by ID.
func (e *Editor) Element(id string) *Element {
	return e.elements[id]
}

// Elements returns the layers in paint order, back to front.
func (e *Editor) Elements() []*Element {
	out := make([]*Element, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.elements[id])
	}
	return out
}

// UploadImage decodes data (PNG or JPEG), adds it as a new layer centered
// on the canvas and selects it. Images larger than the canvas are scaled
// down to fit; the original bytes are kept untouched for export.
func (e *Editor) UploadImage(name string, data []byte) (*Element, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", name, err)
	}

	w := float64(src.Bounds().Dx())
	h := float64(src.Bounds().Dy())
	if fit := math.Min(float64(e.baseW)/w, float64(e.baseH)/h); fit < 1 {
		w *= fit
		h *= fit
	}

	el := &Element{
		ID:       uuid.NewString(),
		Kind:     KindImage,
		X:        (float64(e.baseW) - w) / 2,
		Y:        (float64(e.baseH) - h) / 2,
		W:        w,
		H:        h,
		Source:   src,
		Original: append([]byte(nil), data...),
		Name:     name,
	}
	e.insert(el)
	e.selectElement(el.ID)
	return el, nil
}

// AddText inserts a default text layer at the canvas center and selects it.
func (e *Editor) AddText() *Element {
	el := &Element{
		ID:       uuid.NewString(),
		Kind:     KindText,
		Text:     defaultText,
		FontSize: defaultFontSize,
		Color:    color.RGBA{A: 255},
	}
	el.W, el.H = measureText(el.Text, el.FontSize)
	el.X = (float64(e.baseW) - el.W) / 2
	el.Y = (float64(e.baseH) - el.H) / 2
	e.insert(el)
	e.selectElement(el.ID)
	return el
}

// Manipulate merges a partial attribute update into the layer with the
// given ID. Unknown IDs are a silent no-op; the same holds for text
// attributes sent to an image layer.
func (e *Editor) Manipulate(id string, attrs Attrs) {
	el, ok := e.elements[id]
	if !ok {
		return
	}
	if attrs.X != nil {
		el.X = *attrs.X
	}
	if attrs.Y != nil {
		el.Y = *attrs.Y
	}
	if attrs.W != nil && *attrs.W > 0 {
		el.W = *attrs.W
	}
	if attrs.H != nil && *attrs.H > 0 {
		el.H = *attrs.H
	}
	if attrs.Rotation != nil {
		el.Rotation = *attrs.Rotation
	}
	if el.Kind == KindText {
		resized := false
		if attrs.Text != nil {
			el.Text = *attrs.Text
			resized = true
		}
		if attrs.FontSize != nil && *attrs.FontSize > 0 {
			el.FontSize = *attrs.FontSize
			resized = true
		}
		if attrs.Color != nil {
			el.Color = *attrs.Color
		}
		if resized {
			el.W, el.H = measureText(el.Text, el.FontSize)
		}
	}
}

// Select makes the element with the given ID the current selection.
// Unknown IDs are ignored. Selecting while text editing commits the edit
// first, mirroring the blur-commits behavior of the overlay input.
func (e *Editor) Select(id string) {
	if _, ok := e.elements[id]; !ok {
		return
	}
	if e.state == StateTextEditing {
		e.CommitText()
	}
	e.selectElement(id)
}

// Deselect returns the editor to the idle state (click on empty canvas).
func (e *Editor) Deselect() {
	if e.state == StateTextEditing {
		e.CommitText()
	}
	e.selected = ""
	e.state = StateIdle
}

// DeleteSelected removes the selected layer and clears the selection.
func (e *Editor) DeleteSelected() {
	if e.selected == "" {
		return
	}
	id := e.selected
	delete(e.elements, id)
	for i, other := range e.order {
		if other == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	e.selected = ""
	e.state = StateIdle
}

// ChangeLayerOrder moves the selected layer one step forward (+1) or
// backward (-1) in the paint order. No-op without a selection or at the
// ends of the stack.
func (e *Editor) ChangeLayerOrder(direction int) {
	if e.selected == "" || direction == 0 {
		return
	}
	idx := -1
	for i, id := range e.order {
		if id == e.selected {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	swap := idx + 1
	if direction < 0 {
		swap = idx - 1
	}
	if swap < 0 || swap >= len(e.order) {
		return
	}
	e.order[idx], e.order[swap] = e.order[swap], e.order[idx]
}

// StartTextEdit enters the text editing state for the selected text
// element (double-click). The current string is kept for Escape-revert.
func (e *Editor) StartTextEdit() error {
	el := e.Selected()
	if el == nil || el.Kind != KindText {
		return errors.New("no text element selected")
	}
	e.state = StateTextEditing
	e.editBuffer = el.Text
	return nil
}

// SetText replaces the in-progress text while editing.
func (e *Editor) SetText(text string) {
	if e.state != StateTextEditing {
		return
	}
	el := e.Selected()
	el.Text = text
	el.W, el.H = measureText(el.Text, el.FontSize)
}

// CommitText leaves the text editing state keeping the current string
// (Enter or blur).
func (e *Editor) CommitText() {
	if e.state != StateTextEditing {
		return
	}
	e.editBuffer = ""
	e.state = StateSelected
}

// CancelText leaves the text editing state reverting to the string from
// before the edit (Escape).
func (e *Editor) CancelText() {
	if e.state != StateTextEditing {
		return
	}
	el := e.Selected()
	el.Text = e.editBuffer
	el.W, el.H = measureText(el.Text, el.FontSize)
	e.editBuffer = ""
	e.state = StateSelected
}

// SetViewport records the container size. Only the content scale factor
// changes; element geometry stays in base coordinates.
func (e *Editor) SetViewport(w, h int) {
	if w > 0 {
		e.viewportW = w
	}
	if h > 0 {
		e.viewportH = h
	}
}

// Scale is the content scale factor fitting the base resolution into the
// current viewport.
func (e *Editor) Scale() float64 {
	return math.Min(float64(e.viewportW)/float64(e.baseW), float64(e.viewportH)/float64(e.baseH))
}

// ToBase converts viewport coordinates to base-resolution coordinates.
func (e *Editor) ToBase(x, y float64) (float64, float64) {
	s := e.Scale()
	return x / s, y / s
}

// ElementAt returns the top-most element containing the base-resolution
// point, or nil. Rotation is honored by inverse-rotating the point about
// the element center.
func (e *Editor) ElementAt(x, y float64) *Element {
	for i := len(e.order) - 1; i >= 0; i-- {
		el := e.elements[e.order[i]]
		cx := el.X + el.W/2
		cy := el.Y + el.H/2
		rad := -el.Rotation * math.Pi / 180
		dx := x - cx
		dy := y - cy
		lx := dx*math.Cos(rad) - dy*math.Sin(rad)
		ly := dx*math.Sin(rad) + dy*math.Cos(rad)
		if math.Abs(lx) <= el.W/2 && math.Abs(ly) <= el.H/2 {
			return el
		}
	}
	return nil
}

func (e *Editor) insert(el *Element) {
	e.elements[el.ID] = el
	e.order = append(e.order, el.ID)
}

func (e *Editor) selectElement(id string) {
	e.selected = id
	e.state = StateSelected
}
