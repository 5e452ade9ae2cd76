package httpserver

import (
	"errors"
	"net/http"
	"time"

	"printdoot/internal/domain"

	"github.com/gin-gonic/gin"
)

type designSummary struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	CreatedAt  time.Time `json:"createdAt"`
	ImageCount int       `json:"imageCount"`
	Texts      []string  `json:"texts"`
	PreviewURL string    `json:"previewUrl"`
}

func toDesignSummary(d domain.Design) designSummary {
	texts := make([]string, 0, len(d.Texts))
	for _, t := range d.Texts {
		texts = append(texts, t.Text)
	}
	return designSummary{
		ID:         d.ID,
		ProductID:  d.ProductID,
		CreatedAt:  d.CreatedAt,
		ImageCount: len(d.Images),
		Texts:      texts,
		PreviewURL: "/designs/" + d.ID + "/preview",
	}
}

func listDesignsHandler(svc designService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			designs []domain.Design
			err     error
		)
		if productID := c.Query("product_id"); productID != "" {
			designs, err = svc.ForProduct(c.Request.Context(), productID)
		} else {
			designs, err = svc.All(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list designs"})
			return
		}

		summaries := make([]designSummary, 0, len(designs))
		for _, d := range designs {
			summaries = append(summaries, toDesignSummary(d))
		}
		c.JSON(http.StatusOK, gin.H{"designs": summaries, "total": len(summaries)})
	}
}

func getDesignHandler(svc designService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := svc.Get(c.Request.Context(), c.Param("id"))
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "design not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load design"})
			return
		}
		c.JSON(http.StatusOK, toDesignSummary(d))
	}
}

func designPreviewHandler(svc designService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := svc.Get(c.Request.Context(), c.Param("id"))
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "design not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load design"})
			return
		}
		c.Data(http.StatusOK, "image/png", d.Composite)
	}
}

func clearDesignsHandler(svc designService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "clear designs"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
