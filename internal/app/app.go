package app

import (
	"blog/internal/config"
	"blog/internal/db"
	"blog/internal/handlers"
	"blog/internal/logger"
	"blog/internal/repository"
	"blog/internal/routes"
	"blog/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// InitApp wires storage, services and routes. The returned func closes the pool.
func InitApp(cfg *config.Config) (*mux.Router, func(), error) {
	if cfg.AutoMigrate {
		logger.Log.Info("applying migrations")
		if err := db.MigrateUp(cfg.GetMigrateURL()); err != nil {
			return nil, nil, err
		}
	}

	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Log.Info("database connected", zap.String("dsn", cfg.GetDSNSafe()))

	// Repositories
	postRepo := repository.NewPostRepo(conn)
	commentRepo := repository.NewCommentRepo(conn)
	tagRepo := repository.NewTagRepo(conn)

	// Services
	postSvc := services.NewPostService(postRepo, tagRepo)
	commentSvc := services.NewCommentService(commentRepo, postRepo)

	router := mux.NewRouter()
	resolver := routes.NewResolver(router)

	// Handlers
	postH := handlers.NewPostHandler(postSvc, resolver, cfg.PageSize)
	commentH := handlers.NewCommentHandler(commentSvc, postSvc)

	routes.InitRoutes(router, postH, commentH)

	return router, conn.Close, nil
}
