package canvas

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestMeasureTextGrowsWithFontSize(t *testing.T) {
	w1, h1 := measureText("hello", 24)
	w2, h2 := measureText("hello", 48)
	if w2 <= w1 || h2 <= h1 {
		t.Fatalf("expected larger raster at larger size: %gx%g vs %gx%g", w1, h1, w2, h2)
	}
	if w, _ := measureText("", 24); w < 1 {
		t.Fatalf("expected minimum width 1 for empty string, got %g", w)
	}
}

func TestFlattenPaintsLayerOverBackground(t *testing.T) {
	e := newEditor()
	if _, err := e.UploadImage("red.png", pngBytes(t, 50, 50, color.RGBA{R: 255, A: 255})); err != nil {
		t.Fatalf("upload: %v", err)
	}

	out := e.Flatten()
	if got := out.Bounds(); got.Dx() != 400 || got.Dy() != 400 {
		t.Fatalf("expected 400x400 composite, got %v", got)
	}
	// The layer sits centered; its middle pixel must be the layer color.
	if r, _, _, a := out.At(200, 200).RGBA(); r>>8 != 255 || a>>8 != 255 {
		t.Fatalf("expected red at canvas center, got r=%d a=%d", r>>8, a>>8)
	}
	// Outside the layer the white background shows through.
	if r, g, b, _ := out.At(5, 5).RGBA(); r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Fatalf("expected white background corner")
	}
}

func TestExportMintsFreshIDs(t *testing.T) {
	e := newEditor()
	first, err := e.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	second, err := e.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, both %q", first.ID)
	}
	if !strings.HasPrefix(first.ID, "prod-1_") {
		t.Fatalf("expected product-prefixed id, got %q", first.ID)
	}
	if first.ProductID != "prod-1" {
		t.Fatalf("expected product id carried, got %q", first.ProductID)
	}
}

func TestExportDimensionsIgnoreViewport(t *testing.T) {
	e := newEditor()
	e.AddText()

	before, err := e.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	e.SetViewport(120, 90)
	after, err := e.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	for _, d := range [][]byte{before.Composite, after.Composite} {
		cfg, err := png.DecodeConfig(bytes.NewReader(d))
		if err != nil {
			t.Fatalf("decode composite: %v", err)
		}
		if cfg.Width != 400 || cfg.Height != 400 {
			t.Fatalf("expected base 400x400 export, got %dx%d", cfg.Width, cfg.Height)
		}
	}
}

func TestExportPackagesLayers(t *testing.T) {
	e := newEditor()
	original := pngBytes(t, 20, 20, color.RGBA{B: 255, A: 255})
	if _, err := e.UploadImage("art.png", original); err != nil {
		t.Fatalf("upload: %v", err)
	}
	txt := e.AddText()
	e.Manipulate(txt.ID, Attrs{Text: strptr("Printdoot")})

	d, err := e.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if len(d.Images) != 1 {
		t.Fatalf("expected 1 image part, got %d", len(d.Images))
	}
	if d.Images[0].Name != "art.png" || !bytes.Equal(d.Images[0].PNG, original) {
		t.Fatalf("expected original upload bytes preserved")
	}

	if len(d.Texts) != 1 {
		t.Fatalf("expected 1 text part, got %d", len(d.Texts))
	}
	if d.Texts[0].Text != "Printdoot" {
		t.Fatalf("expected text string carried, got %q", d.Texts[0].Text)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(d.Texts[0].PNG))
	if err != nil {
		t.Fatalf("decode text raster: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 400 {
		t.Fatalf("expected isolated raster at base resolution, got %dx%d", cfg.Width, cfg.Height)
	}

	if len(d.Composite) == 0 {
		t.Fatalf("expected composite bytes")
	}
	if e.State() != StateIdle {
		t.Fatalf("expected deselect before capture")
	}
}

func strptr(s string) *string { return &s }
