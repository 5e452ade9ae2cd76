package httpserver

import (
	"errors"
	"net/http"

	"printdoot/internal/domain"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID      string            `json:"productId" binding:"required"`
	Quantity       int               `json:"quantity" binding:"required"`
	Customizations map[string]string `json:"customizations"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type discountRequest struct {
	Code string `json:"code"`
}

type cartResponse struct {
	Items    []domain.CartItem    `json:"items"`
	Count    int                  `json:"count"`
	Discount domain.DiscountState `json:"discount"`
	Totals   domain.CartTotals    `json:"totals"`
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := svc.Items()
		if items == nil {
			items = []domain.CartItem{}
		}
		c.JSON(http.StatusOK, cartResponse{
			Items:    items,
			Count:    svc.Count(),
			Discount: svc.Discount(),
			Totals:   svc.Totals(),
		})
	}
}

func addCartItemHandler(svc cartService, catalog catalogRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product, err := catalog.GetByID(c.Request.Context(), req.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load product"})
			return
		}

		item, err := svc.AddToCart(c.Request.Context(), *product, req.Quantity, req.Customizations, "", "")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func updateCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		if err := svc.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update item"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func removeCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Remove(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "remove item"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func clearCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "clear cart"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func applyDiscountHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req discountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		state, err := svc.ApplyDiscount(c.Request.Context(), req.Code)
		if errors.Is(err, domain.ErrInvalidCoupon) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid discount code"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func removeDiscountHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RemoveDiscount(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "remove discount"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
