package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"bookrec/internal/httpx"
	"bookrec/internal/platform/googlebooks"
	"bookrec/internal/recommend"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	apiKey := mustGetEnv("GOOGLE_BOOKS_API_KEY")
	baseURL := getEnv("GOOGLE_BOOKS_BASE_URL", "")
	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"))
	rateLimitRPS := getEnvFloat("RATE_LIMIT_RPS", 10)
	rateLimitBurst := getEnvInt("RATE_LIMIT_BURST", 20)

	client := googlebooks.NewClient(apiKey, baseURL, 5)
	service := recommend.NewService(client)
	handler := recommend.NewHTTPHandler(service)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.HandleFunc("POST /recommend", handler.Recommend)
	router.HandleFunc("GET /search/authors", handler.SearchAuthors)
	router.HandleFunc("GET /search/books", handler.SearchTitles)

	rateLimiter := httpx.NewRateLimitMiddleware(rateLimitRPS, rateLimitBurst)

	var chain http.Handler = router
	chain = httpx.RequestSizeLimitMiddleware(1 << 20)(chain)
	chain = rateLimiter.Middleware(chain)
	chain = httpx.CORSMiddleware(corsOrigins)(chain)
	chain = httpx.SecurityHeadersMiddleware(chain)
	chain = httpx.RecoveryMiddleware(chain)
	chain = httpx.AccessLogMiddleware(chain)
	chain = httpx.RequestIDMiddleware(chain)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      chain,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", serverAddress)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustGetEnv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	log.Fatalf("missing required environment variable: %s", key)
	return ""
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
