package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

var (
	textFont *opentype.Font

	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	textFont = f
}

func faceFor(size float64) font.Face {
	facesMu.Lock()
	defer facesMu.Unlock()
	if face, ok := faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(textFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	faces[size] = face
	return face
}

// measureText returns the natural raster size of a string at the given
// font size.
func measureText(text string, size float64) (float64, float64) {
	face := faceFor(size)
	d := &font.Drawer{Face: face}
	w := d.MeasureString(text).Ceil()
	if w < 1 {
		w = 1
	}
	metrics := face.Metrics()
	h := metrics.Ascent.Ceil() + metrics.Descent.Ceil()
	return float64(w), float64(h)
}

// renderTextRaster draws the element's string at its natural size in its
// color. Transform is applied later, like any image layer.
func renderTextRaster(el *Element) *image.RGBA {
	face := faceFor(el.FontSize)
	d := &font.Drawer{Face: face}
	w := d.MeasureString(el.Text).Ceil()
	if w < 1 {
		w = 1
	}
	metrics := face.Metrics()
	h := metrics.Ascent.Ceil() + metrics.Descent.Ceil()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d.Dst = img
	d.Src = image.NewUniform(el.Color)
	d.Dot = fixed.P(0, metrics.Ascent.Ceil())
	d.DrawString(el.Text)
	return img
}

// Flatten composes background and all layers into one raster at the base
// design resolution. The viewport scale never enters this path.
func (e *Editor) Flatten() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, e.baseW, e.baseH))
	if e.background != nil {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), e.background, e.background.Bounds(), draw.Src, nil)
	} else {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	}
	for _, id := range e.order {
		drawElement(dst, e.elements[id])
	}
	return dst
}

// renderIsolated draws a single layer onto a transparent base-resolution
// raster, preserving its transform and style but excluding all others.
func (e *Editor) renderIsolated(el *Element) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, e.baseW, e.baseH))
	drawElement(dst, el)
	return dst
}

// drawElement maps the layer raster through scale, rotation about the
// element center, and translation to its canvas position.
func drawElement(dst *image.RGBA, el *Element) {
	src := el.Source
	if el.Kind == KindText {
		src = renderTextRaster(el)
	}
	if src == nil || el.W <= 0 || el.H <= 0 {
		return
	}

	srcW := float64(src.Bounds().Dx())
	srcH := float64(src.Bounds().Dy())
	if srcW == 0 || srcH == 0 {
		return
	}

	sx := el.W / srcW
	sy := el.H / srcH
	rad := el.Rotation * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	cx := el.X + el.W/2
	cy := el.Y + el.H/2

	m := f64.Aff3{
		cos * sx, -sin * sy, cx - cos*el.W/2 + sin*el.H/2,
		sin * sx, cos * sy, cy - sin*el.W/2 - cos*el.H/2,
	}
	xdraw.CatmullRom.Transform(dst, m, src, src.Bounds(), draw.Over, nil)
}
