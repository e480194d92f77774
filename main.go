package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"specialist-app/config"
	"specialist-app/database"
	specialistapi "specialist-app/internal/api/specialist"
	routes "specialist-app/internal/app/http"
	"specialist-app/internal/platform/logger"
	"specialist-app/internal/specialist"
	"specialist-app/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.Connect(config.DB_URL)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer database.Close(db)

	gateway, err := storage.NewMinioGateway(
		config.MINIO_ENDPOINT,
		config.MINIO_ACCESS_KEY,
		config.MINIO_SECRET_KEY,
		config.MINIO_BUCKET,
		config.MINIO_USE_SSL,
		log,
	)
	if err != nil {
		log.Fatal("storage gateway init failed", zap.Error(err))
	}

	svc := specialist.NewService(db, gateway, log)
	handler := specialistapi.NewHandler(svc, log)

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, handler)

	srv := &http.Server{
		Addr:    ":" + config.PORT,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", zap.String("port", config.PORT))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
