//	@title			TG-Drop API
//	@version		1.0
//	@description	Content and media hosting over tiered storage: an S3-compatible blob store and Telegram used as an ad-hoc object store.
//
//	@host		localhost:8080
//	@BasePath	/

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/Inrrs/TG-Drop/internal/config"
	"github.com/Inrrs/TG-Drop/internal/content"
	"github.com/Inrrs/TG-Drop/internal/db"
	appMiddleware "github.com/Inrrs/TG-Drop/internal/middleware"
	"github.com/Inrrs/TG-Drop/internal/proxy"
	"github.com/Inrrs/TG-Drop/internal/storage"
	"github.com/Inrrs/TG-Drop/internal/telegram"
	"github.com/Inrrs/TG-Drop/internal/upload"
	"github.com/Inrrs/TG-Drop/internal/vars"

	_ "github.com/Inrrs/TG-Drop/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	blobs, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	relay := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramChatID)

	// Wire dependencies: repository → service → handler
	contentRepo := content.NewRepository(pool)
	contentSvc := content.NewService(contentRepo, relay)
	contentHandler := content.NewHandler(contentSvc, cfg.StorageType)

	uploadSvc := upload.NewService(blobs, relay)
	uploadHandler := upload.NewHandler(uploadSvc, blobs, cfg.StorageType)

	proxyHandler := proxy.NewHandler(relay)
	varsHandler := vars.NewHandler(cfg)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Range", "X-Storage-Type"},
		MaxAge:         86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/contents", contentHandler.List)
	r.Post("/contents", contentHandler.Create)

	r.Post("/images", uploadHandler.UploadImage)
	r.Get("/images/proxy", proxyHandler.Serve)
	r.Get("/images/{filename}", uploadHandler.GetImage)

	r.Post("/files/upload", uploadHandler.UploadFile)
	r.Get("/files/{filename}", uploadHandler.GetFile)

	r.Get("/vars/{name}", varsHandler.Get)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
		// Write timeout must cover proxied media downloads and relay
		// uploads, which buffer up to 50MB.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
