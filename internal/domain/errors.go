package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCoupon indicates the coupon code was rejected by the
	// verification endpoint or could not be verified at all.
	ErrInvalidCoupon = errors.New("invalid coupon")
)
