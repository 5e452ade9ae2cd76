package httpserver

import (
	"context"
	"log"

	"printdoot/internal/domain"
	"printdoot/internal/service/customizer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	bolt "go.etcd.io/bbolt"
)

type cartService interface {
	AddToCart(ctx context.Context, product domain.Product, quantity int, customizations map[string]string, designID, previewPath string) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	Remove(ctx context.Context, itemID string) error
	Clear(ctx context.Context) error
	ApplyDiscount(ctx context.Context, code string) (domain.DiscountState, error)
	RemoveDiscount(ctx context.Context) error
	Items() []domain.CartItem
	Discount() domain.DiscountState
	Count() int
	Totals() domain.CartTotals
}

type catalogRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, categoryID string) ([]domain.Product, error)
}

type designService interface {
	Get(ctx context.Context, id string) (domain.Design, error)
	ForProduct(ctx context.Context, productID string) ([]domain.Design, error)
	All(ctx context.Context) ([]domain.Design, error)
	Clear(ctx context.Context) error
}

type customizerManager interface {
	Open(ctx context.Context, productID string) (*customizer.Session, error)
	Get(id string) (*customizer.Session, error)
	SaveDesign(ctx context.Context, sessionID string) (domain.Design, error)
	AddToCart(ctx context.Context, sessionID string, quantity int, customizations map[string]string) (*domain.CartItem, error)
	Close(id string)
}

// Deps carries the wired services into the router.
type Deps struct {
	CartSvc       cartService
	Catalog       catalogRepo
	DesignSvc     designService
	CustomizerMgr customizerManager
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *bolt.DB, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/products", listProductsHandler(deps.Catalog))
	router.GET("/products/:id", getProductHandler(deps.Catalog))

	router.GET("/cart", getCartHandler(deps.CartSvc))
	router.POST("/cart/items", addCartItemHandler(deps.CartSvc, deps.Catalog))
	router.PATCH("/cart/items/:id", updateCartItemHandler(deps.CartSvc))
	router.DELETE("/cart/items/:id", removeCartItemHandler(deps.CartSvc))
	router.DELETE("/cart", clearCartHandler(deps.CartSvc))
	router.POST("/cart/discount", applyDiscountHandler(deps.CartSvc))
	router.DELETE("/cart/discount", removeDiscountHandler(deps.CartSvc))

	router.GET("/designs", listDesignsHandler(deps.DesignSvc))
	router.GET("/designs/:id", getDesignHandler(deps.DesignSvc))
	router.GET("/designs/:id/preview", designPreviewHandler(deps.DesignSvc))
	router.DELETE("/designs", clearDesignsHandler(deps.DesignSvc))

	sessions := router.Group("/customizer/sessions")
	sessions.POST("", openSessionHandler(deps.CustomizerMgr))
	sessions.DELETE("/:id", closeSessionHandler(deps.CustomizerMgr))
	sessions.POST("/:id/images", uploadImageHandler(deps.CustomizerMgr))
	sessions.POST("/:id/text", addTextHandler(deps.CustomizerMgr))
	sessions.PATCH("/:id/elements/:elementID", manipulateElementHandler(deps.CustomizerMgr))
	sessions.POST("/:id/elements/:elementID/order", orderElementHandler(deps.CustomizerMgr))
	sessions.DELETE("/:id/elements/:elementID", deleteElementHandler(deps.CustomizerMgr))
	sessions.POST("/:id/save", saveDesignHandler(deps.CustomizerMgr))
	sessions.POST("/:id/cart", sessionCartHandler(deps.CustomizerMgr))

	return router
}
