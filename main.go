package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tiket/internal/cache"
	intconfig "tiket/internal/config"
	api "tiket/internal/http"
	"tiket/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	intconfig.ConnectDB()
	defer intconfig.CloseDB()

	if err := (repositories.ArtifactRepository{}).EnsureSchema(); err != nil {
		log.Fatalf("Gagal menyiapkan schema artifact: %v", err)
	}

	dedup := buildResendWindow(env)

	// Router (Gin engine)
	r := api.NewRouter(env, dedup)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}

// buildResendWindow memilih backing dedup: Redis kalau dikonfigurasi,
// in-memory kalau tidak.
func buildResendWindow(env intconfig.Env) cache.ResendWindow {
	if env.RedisAddr == "" {
		return cache.NewMemoryResendWindow(env.ResendWindow)
	}

	client := redis.NewClient(&redis.Options{Addr: env.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis %s tidak terjangkau (%v), dedup resend pakai memori", env.RedisAddr, err)
		return cache.NewMemoryResendWindow(env.ResendWindow)
	}

	log.Printf("Dedup resend memakai Redis %s", env.RedisAddr)
	return cache.RedisResendWindow{Client: client, TTL: env.ResendWindow}
}
