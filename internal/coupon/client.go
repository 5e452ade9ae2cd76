package coupon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client calls the external coupon verification endpoint. Transport
// failures, non-2xx responses and valid:false all mean the same thing to
// callers: the code is not applicable. There is no retry; a failed
// attempt is terminal.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type verifyRequest struct {
	Code       string `json:"code"`
	CategoryID string `json:"category_id,omitempty"`
	ProductID  string `json:"product_id,omitempty"`
}

// Result is the verification outcome for a coupon code.
type Result struct {
	Valid              bool    `json:"valid"`
	DiscountPercentage float64 `json:"discount_percentage"`
	Message            string  `json:"message"`
}

// Verify checks code against the cart context. The category and product
// hints may be empty.
func (c *Client) Verify(ctx context.Context, code, categoryID, productID string) (Result, error) {
	body, err := json.Marshal(verifyRequest{Code: code, CategoryID: categoryID, ProductID: productID})
	if err != nil {
		return Result{}, fmt.Errorf("marshal verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/coupons/verify", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("verify coupon: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("verify coupon: unexpected status %d", resp.StatusCode)
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("decode verify response: %w", err)
	}
	return out, nil
}
