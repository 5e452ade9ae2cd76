package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	"printdoot/internal/domain"

	"github.com/google/uuid"
)

// NewDesignID mints a design identifier embedding the product, the
// creation time and a random suffix. Uniqueness comes from the suffix, so
// repeated exports of identical canvas state never collide.
func NewDesignID(productID string) string {
	return fmt.Sprintf("%s_%d_%s", productID, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Export deselects (so no transform handles leak into the capture),
// flattens the canvas, and packages the composite together with each
// uploaded image's original bytes and each text layer rendered in
// isolation. A fresh design ID is minted on every call; editor state is
// left intact on failure.
func (e *Editor) Export() (domain.Design, error) {
	e.Deselect()

	composite, err := encodePNG(e.Flatten())
	if err != nil {
		return domain.Design{}, fmt.Errorf("encode composite: %w", err)
	}

	d := domain.Design{
		ID:        NewDesignID(e.productID),
		ProductID: e.productID,
		CreatedAt: time.Now().UTC(),
		Composite: composite,
	}

	for _, id := range e.order {
		el := e.elements[id]
		switch el.Kind {
		case KindImage:
			d.Images = append(d.Images, domain.ImagePart{
				ID:   el.ID,
				Name: el.Name,
				PNG:  el.Original,
			})
		case KindText:
			raster, err := encodePNG(e.renderIsolated(el))
			if err != nil {
				return domain.Design{}, fmt.Errorf("encode text layer %s: %w", el.ID, err)
			}
			d.Texts = append(d.Texts, domain.TextPart{
				ID:   el.ID,
				Text: el.Text,
				PNG:  raster,
			})
		}
	}
	return d, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
