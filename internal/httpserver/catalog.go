package httpserver

import (
	"errors"
	"net/http"

	"printdoot/internal/domain"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(catalog catalogRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.List(c.Request.Context(), c.Query("category_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list products"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
	}
}

func getProductHandler(catalog catalogRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.GetByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
