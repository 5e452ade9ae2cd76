package httpserver

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"net/http"
	"strconv"

	"printdoot/internal/canvas"
	"printdoot/internal/domain"
	"printdoot/internal/service/customizer"

	"github.com/gin-gonic/gin"
)

type openSessionRequest struct {
	ProductID string `json:"productId" binding:"required"`
	ViewportW int    `json:"viewportW"`
	ViewportH int    `json:"viewportH"`
}

type addTextRequest struct {
	Text     *string  `json:"text"`
	FontSize *float64 `json:"fontSize"`
	Color    *string  `json:"color"`
}

type manipulateRequest struct {
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	W        *float64 `json:"w"`
	H        *float64 `json:"h"`
	Rotation *float64 `json:"rotation"`
	Text     *string  `json:"text"`
	FontSize *float64 `json:"fontSize"`
	Color    *string  `json:"color"`
}

type orderRequest struct {
	Direction int `json:"direction" binding:"required"`
}

type sessionCartRequest struct {
	Quantity       int               `json:"quantity" binding:"required"`
	Customizations map[string]string `json:"customizations"`
}

type elementResponse struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Rotation float64 `json:"rotation"`
	Name     string  `json:"name,omitempty"`
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	Color    string  `json:"color,omitempty"`
}

func toElementResponse(el *canvas.Element) elementResponse {
	resp := elementResponse{
		ID:       el.ID,
		X:        el.X,
		Y:        el.Y,
		W:        el.W,
		H:        el.H,
		Rotation: el.Rotation,
	}
	switch el.Kind {
	case canvas.KindImage:
		resp.Kind = "image"
		resp.Name = el.Name
	case canvas.KindText:
		resp.Kind = "text"
		resp.Text = el.Text
		resp.FontSize = el.FontSize
		resp.Color = fmt.Sprintf("#%02x%02x%02x%02x", el.Color.R, el.Color.G, el.Color.B, el.Color.A)
	}
	return resp
}

// parseHexColor accepts #RRGGBB and #RRGGBBAA.
func parseHexColor(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' || (len(s) != 7 && len(s) != 9) {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 64)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(s) == 7 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func sessionOr404(c *gin.Context, mgr customizerManager) (*customizer.Session, bool) {
	sess, err := mgr.Get(c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load session"})
		return nil, false
	}
	return sess, true
}

func openSessionHandler(mgr customizerManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req openSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sess, err := mgr.Open(c.Request.Context(), req.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "open session"})
			return
		}

		var scale float64
		sess.Do(func(e *canvas.Editor) {
			if req.ViewportW > 0 && req.ViewportH > 0 {
				e.SetViewport(req.ViewportW, req.ViewportH)
			}
			scale = e.Scale()
		})

		c.JSON(http.StatusCreated, gin.H{
			"sessionId": sess.ID,
			"product":   sess.Product,
			"scale":     scale,
		})
	}
}

func closeSessionHandler(mgr customizerManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		mgr.Close(c.Param("id"))
		c.Status(http.StatusNoContent)
	}
}

func uploadImageHandler(mgr customizerManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOr404(c, mgr)
		if !ok {
			return
		}

		header, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
			return
		}
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "read image"})
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "read image"})
			return
		}

		var (
			el     *canvas.Element
			addErr error
		)
		sess.Do(func(e *canvas.Editor) {
			el, addErr = e.UploadImage(header.Filename, data)
		})
		if addErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": addErr.Error()})
			return
		}
		c.JSON(http.StatusCreated, toElementResponse(el))
	}
}

func addTextHandler(mgr customizerManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOr404(c, mgr)
		if !ok {
			return
		}

		var req addTextRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		attrs := canvas.Attrs{Text: req.Text, FontSize: req.FontSize}
		if req.Color != nil {
			col, err := parseHexColor(*req.Color)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			attrs.Color = &col
		}

		var el *canvas.Element
		sess.Do(func(e *canvas.Editor) {
			el = e.AddText()
			e.Manipulate(el.ID, attrs)
		})
		c.JSON(http.StatusCreated, toElementResponse(el))
	}
}

func manipulateElementHandler(mgr customizerManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOr404(c, mgr)
		if !ok {
			return
		}

		var req manipulateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		attrs := canvas.Attrs{
			X:        req.X,
			Y:        req.Y,
			W:        req.W,
			H:        req.H,
			Rotation: req.Rotation,
			Text:     req.Text,
			FontSize: req.FontSize,
		}
		if req.Color != nil {
			col, err := parseHexColor(*req.Color)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			attrs.Color = &col
		}

		var el *canvas.Element
		sess.Do(func(e *canvas.Editor) {
			if el = e.Element(c.Param("elementID")); el == nil {
				return
			}
			e.Manipulate(el.ID, attrs)
		})
		if el == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "element not found"})
			return
		}
		c.JSON(http.StatusOK, toElementResponse(el))
	}
}

func orderElementHandler(mgr customizerManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOr404(c, mgr)
		if !ok {
			return
		}

		var req orderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		found := false
		sess.Do(func(e *canvas.Editor) {
			if e.Element(c.Param("elementID")) == nil {
				return
			}
			found = true
			e.Select(c.Param("elementID"))
			e.ChangeLayerOrder(req.Direction)
		})
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "element not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func deleteElementHandler(mgr customizerManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOr404(c, mgr)
		if !ok {
			return
		}

		found := false
		sess.Do(func(e *canvas.Editor) {
			if e.Element(c.Param("elementID")) == nil {
				return
			}
			found = true
			e.Select(c.Param("elementID"))
			e.DeleteSelected()
		})
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "element not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func saveDesignHandler(mgr customizerManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := mgr.SaveDesign(c.Request.Context(), c.Param("id"))
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save design"})
			return
		}
		c.JSON(http.StatusCreated, toDesignSummary(d))
	}
}

func sessionCartHandler(mgr customizerManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sessionCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item, err := mgr.AddToCart(c.Request.Context(), c.Param("id"), req.Quantity, req.Customizations)
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}
