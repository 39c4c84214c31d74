package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string

	// BackendURL is the base of the remote REST API, path prefix included.
	BackendURL string

	SessionSecret []byte

	// RedisAddr switches the session store to Redis when non-empty.
	RedisAddr string

	// AttachBearer makes the backend client attach the stored bearer token to
	// every request. Off by default: the observed backend authenticates by
	// other means and the token is only kept for explicit use.
	AttachBearer bool

	// PaymentDelay is how long the stubbed payment gateway pretends to work.
	PaymentDelay time.Duration

	LogLevel string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env not found, using system environment: %v", err)
	}

	return &Config{
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
		BackendURL:    getenv("BACKEND_URL", "http://localhost:8000/api"),
		SessionSecret: []byte(must(os.Getenv("SESSION_SECRET"), "SESSION_SECRET")),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		AttachBearer:  getbool("ATTACH_BEARER", false),
		PaymentDelay:  getdur("PAYMENT_STUB_DELAY", 1500*time.Millisecond),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getdur(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func must(v, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}
