package domain

import "time"

// CartItem is one line entry in the cart. Product is a snapshot copied at
// add time, not a live reference into the catalog.
type CartItem struct {
	ID                     string             `json:"id"`
	Product                Product            `json:"product"`
	Quantity               int                `json:"quantity"`
	SelectedCustomizations map[string]string  `json:"selectedCustomizations,omitempty"`
	UserCustomization      *UserCustomization `json:"userCustomization,omitempty"`
	AddedAt                time.Time          `json:"addedAt"`
}

// UserCustomization links an item to a saved canvas design. An item that
// carries one is never quantity-merged with another item.
type UserCustomization struct {
	DesignID    string `json:"designId"`
	PreviewPath string `json:"previewPath,omitempty"`
}

// DiscountState is the single active discount code. The zero value means
// no discount applied.
type DiscountState struct {
	Code       string  `json:"code"`
	Percentage float64 `json:"discountPercentage"`
	Valid      bool    `json:"isValid"`
}

// CartTotals is derived from the current items and discount state on every
// read. It is never stored.
type CartTotals struct {
	SubtotalCents int64 `json:"subtotalCents"`
	DiscountCents int64 `json:"discountCents"`
	TaxCents      int64 `json:"taxCents"`
	ShippingCents int64 `json:"shippingCents"`
	TotalCents    int64 `json:"totalCents"`
}
