package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr         string
	StorePath        string
	CouponAPIBaseURL string
	ShutdownTimeout  time.Duration
	CanvasBaseWidth  int
	CanvasBaseHeight int
	ShippingCents    int64
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:         envOrDefault("HTTP_ADDR", ":8080"),
		StorePath:        envOrDefault("STORE_PATH", "printdoot.db"),
		CouponAPIBaseURL: envOrDefault("COUPON_API_BASE_URL", "http://localhost:9090"),
		ShutdownTimeout:  envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		CanvasBaseWidth:  envInt("CANVAS_BASE_WIDTH", 1024),
		CanvasBaseHeight: envInt("CANVAS_BASE_HEIGHT", 1024),
		ShippingCents:    int64(envInt("SHIPPING_CENTS", 10000)),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n > 0 {
			return n
		}
	}
	return def
}
