package main

import (
	"errors"
	"net/http"

	_ "blog/docs"
	"blog/internal/app"
	"blog/internal/config"
	"blog/internal/logger"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Blog API
// @version 1.0
// @description Read-only API over published blog posts, tags and comments.
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("config: " + err.Error())
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	warnings, err := cfg.Validate()
	if err != nil {
		logger.Log.Fatal("invalid config", zap.Error(err))
	}
	for _, w := range warnings {
		logger.Log.Warn("config", zap.String("warning", w))
	}

	router, cleanup, err := app.InitApp(cfg)
	if err != nil {
		logger.Log.Fatal("app init failed", zap.Error(err))
	}
	defer cleanup()

	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         86400,
	})

	logger.Log.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := http.ListenAndServe(":"+cfg.Port, corsMiddleware.Handler(router)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatal("server failed", zap.Error(err))
	}
}
