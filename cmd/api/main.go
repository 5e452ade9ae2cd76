package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printdoot/internal/config"
	"printdoot/internal/coupon"
	"printdoot/internal/httpserver"
	"printdoot/internal/migrate"
	cartrepo "printdoot/internal/repository/cart"
	catalogrepo "printdoot/internal/repository/catalog"
	designrepo "printdoot/internal/repository/design"
	cartsvc "printdoot/internal/service/cart"
	customizersvc "printdoot/internal/service/customizer"
	designsvc "printdoot/internal/service/design"
	"printdoot/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	db, err := store.Open(cfg.StorePath)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer db.Close()

	if err := migrate.Apply(db); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	catalogRepo := catalogrepo.NewBolt(db)
	designRepo := designrepo.NewBolt(db)
	cartRepo := cartrepo.NewBolt(db)

	couponClient := coupon.New(cfg.CouponAPIBaseURL)
	cartService, err := cartsvc.New(ctx, cartRepo, couponClient, cfg.ShippingCents)
	if err != nil {
		logger.Fatalf("init cart: %v", err)
	}
	designService := designsvc.New(designRepo)
	customizerMgr := customizersvc.NewManager(
		catalogRepo, designService, cartService,
		fetchImage, cfg.CanvasBaseWidth, cfg.CanvasBaseHeight,
	)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, db, httpserver.Deps{
		CartSvc:       cartService,
		Catalog:       catalogRepo,
		DesignSvc:     designService,
		CustomizerMgr: customizerMgr,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// fetchImage downloads a product image for use as a canvas background.
func fetchImage(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	return img, err
}
