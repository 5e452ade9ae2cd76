package domain

import "time"

// Design is a persisted snapshot of a customizer session: the flattened
// composite plus the per-layer rasters it was composed from. Designs are
// immutable; a re-save mints a new ID.
type Design struct {
	ID        string      `json:"id"`
	ProductID string      `json:"productId"`
	CreatedAt time.Time   `json:"createdAt"`
	Composite []byte      `json:"-"`
	Images    []ImagePart `json:"images,omitempty"`
	Texts     []TextPart  `json:"texts,omitempty"`
}

// ImagePart keeps the original uploaded raster untouched by any canvas
// transform.
type ImagePart struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	PNG  []byte `json:"-"`
}

// TextPart is a text layer rendered to its own isolated raster, with the
// source string preserved for reference.
type TextPart struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	PNG  []byte `json:"-"`
}
