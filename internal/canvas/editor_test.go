package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func newEditor() *Editor {
	return New("prod-1", nil, 400, 400)
}

func pngBytes(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadImageCentersAndSelects(t *testing.T) {
	e := newEditor()
	el, err := e.UploadImage("logo.png", pngBytes(t, 100, 50, color.RGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if el.W != 100 || el.H != 50 {
		t.Fatalf("expected natural size 100x50, got %gx%g", el.W, el.H)
	}
	if el.X != 150 || el.Y != 175 {
		t.Fatalf("expected centered at (150,175), got (%g,%g)", el.X, el.Y)
	}
	if e.State() != StateSelected || e.Selected() != el {
		t.Fatalf("expected new element selected")
	}
}

func TestUploadImageScalesDownToFit(t *testing.T) {
	e := newEditor()
	el, err := e.UploadImage("big.png", pngBytes(t, 800, 800, color.RGBA{A: 255}))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if el.W != 400 || el.H != 400 {
		t.Fatalf("expected fit to 400x400, got %gx%g", el.W, el.H)
	}
}

func TestUploadImageRejectsGarbage(t *testing.T) {
	e := newEditor()
	if _, err := e.UploadImage("bad.png", []byte("not an image")); err == nil {
		t.Fatalf("expected decode error")
	}
	if len(e.Elements()) != 0 {
		t.Fatalf("expected no element on failed upload")
	}
}

func TestAddTextDefaults(t *testing.T) {
	e := newEditor()
	el := e.AddText()
	if el.Text != "New Text" {
		t.Fatalf("expected default text, got %q", el.Text)
	}
	if el.FontSize != 48 {
		t.Fatalf("expected default font size 48, got %g", el.FontSize)
	}
	if el.W <= 0 || el.H <= 0 {
		t.Fatalf("expected measured size, got %gx%g", el.W, el.H)
	}
	if e.State() != StateSelected {
		t.Fatalf("expected selected state after add")
	}
}

func TestManipulateUnknownIDIsNoOp(t *testing.T) {
	e := newEditor()
	x := 10.0
	e.Manipulate("missing", Attrs{X: &x})
	if len(e.Elements()) != 0 {
		t.Fatalf("expected untouched editor")
	}
}

func TestManipulateMovesAndRotates(t *testing.T) {
	e := newEditor()
	el := e.AddText()
	x, y, rot := 10.0, 20.0, 45.0
	e.Manipulate(el.ID, Attrs{X: &x, Y: &y, Rotation: &rot})
	if el.X != 10 || el.Y != 20 || el.Rotation != 45 {
		t.Fatalf("attrs not applied: %+v", el)
	}
}

func TestManipulateRemeasuresTextOnFontChange(t *testing.T) {
	e := newEditor()
	el := e.AddText()
	before := el.W
	size := 96.0
	e.Manipulate(el.ID, Attrs{FontSize: &size})
	if el.W <= before {
		t.Fatalf("expected wider text after doubling font size: %g -> %g", before, el.W)
	}
}

func TestSelectAndDeselect(t *testing.T) {
	e := newEditor()
	a := e.AddText()
	b := e.AddText()
	if e.Selected() != b {
		t.Fatalf("expected last added selected")
	}
	e.Select(a.ID)
	if e.Selected() != a {
		t.Fatalf("expected explicit selection")
	}
	e.Select("missing")
	if e.Selected() != a {
		t.Fatalf("unknown id must not change selection")
	}
	e.Deselect()
	if e.State() != StateIdle || e.Selected() != nil {
		t.Fatalf("expected idle after deselect")
	}
}

func TestDeleteSelected(t *testing.T) {
	e := newEditor()
	el := e.AddText()
	e.DeleteSelected()
	if e.Element(el.ID) != nil {
		t.Fatalf("expected element removed")
	}
	if e.State() != StateIdle {
		t.Fatalf("expected idle after delete")
	}
	e.DeleteSelected()
}

func TestChangeLayerOrder(t *testing.T) {
	e := newEditor()
	a := e.AddText()
	b := e.AddText()
	e.Select(a.ID)

	e.ChangeLayerOrder(1)
	if got := e.Elements(); got[0] != b || got[1] != a {
		t.Fatalf("expected a moved forward")
	}
	e.ChangeLayerOrder(1)
	if got := e.Elements(); got[1] != a {
		t.Fatalf("expected no-op at top of stack")
	}
	e.ChangeLayerOrder(-1)
	if got := e.Elements(); got[0] != a {
		t.Fatalf("expected a moved back")
	}
	e.ChangeLayerOrder(-1)
	if got := e.Elements(); got[0] != a {
		t.Fatalf("expected no-op at bottom of stack")
	}
}

func TestTextEditCommitKeepsNewText(t *testing.T) {
	e := newEditor()
	el := e.AddText()
	if err := e.StartTextEdit(); err != nil {
		t.Fatalf("start edit: %v", err)
	}
	if e.State() != StateTextEditing {
		t.Fatalf("expected text editing state")
	}
	e.SetText("Hello")
	e.CommitText()
	if e.State() != StateSelected {
		t.Fatalf("expected selected state after commit")
	}
	if el.Text != "Hello" {
		t.Fatalf("expected committed text, got %q", el.Text)
	}
}

func TestTextEditCancelReverts(t *testing.T) {
	e := newEditor()
	el := e.AddText()
	if err := e.StartTextEdit(); err != nil {
		t.Fatalf("start edit: %v", err)
	}
	e.SetText("scratch that")
	e.CancelText()
	if el.Text != "New Text" {
		t.Fatalf("expected original text restored, got %q", el.Text)
	}
	if e.State() != StateSelected {
		t.Fatalf("expected selected state after cancel")
	}
}

func TestStartTextEditRequiresTextSelection(t *testing.T) {
	e := newEditor()
	if err := e.StartTextEdit(); err == nil {
		t.Fatalf("expected error with no selection")
	}
	if _, err := e.UploadImage("a.png", pngBytes(t, 10, 10, color.RGBA{A: 255})); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := e.StartTextEdit(); err == nil {
		t.Fatalf("expected error for image selection")
	}
}

func TestSelectDuringEditCommits(t *testing.T) {
	e := newEditor()
	a := e.AddText()
	b := e.AddText()
	e.Select(a.ID)
	if err := e.StartTextEdit(); err != nil {
		t.Fatalf("start edit: %v", err)
	}
	e.SetText("kept")
	e.Select(b.ID)
	if a.Text != "kept" {
		t.Fatalf("expected blur to commit, got %q", a.Text)
	}
	if e.Selected() != b || e.State() != StateSelected {
		t.Fatalf("expected selection moved to b")
	}
}

func TestElementAtHonorsPaintOrder(t *testing.T) {
	e := newEditor()
	a := e.AddText()
	b := e.AddText()
	// Both centered, so the center hits the top-most layer.
	if got := e.ElementAt(200, 200); got != b {
		t.Fatalf("expected top-most element")
	}
	e.Select(a.ID)
	e.ChangeLayerOrder(1)
	if got := e.ElementAt(200, 200); got != a {
		t.Fatalf("expected reordered top-most element")
	}
	if got := e.ElementAt(-5, -5); got != nil {
		t.Fatalf("expected no hit outside all layers, got %v", got)
	}
}

func TestToBaseUsesViewportScale(t *testing.T) {
	e := newEditor()
	e.SetViewport(200, 200)
	if s := e.Scale(); s != 0.5 {
		t.Fatalf("expected scale 0.5, got %g", s)
	}
	x, y := e.ToBase(100, 50)
	if x != 200 || y != 100 {
		t.Fatalf("expected base (200,100), got (%g,%g)", x, y)
	}
}
