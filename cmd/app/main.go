package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dbadapter "postboard/internal/adapters/database"
	"postboard/internal/adapters/httpapi"
	redisadapter "postboard/internal/adapters/redis"
	"postboard/internal/config"
	commentapp "postboard/internal/core/comment/service"
	postapp "postboard/internal/core/post/service"
	userapp "postboard/internal/core/user/service"
	userPort "postboard/internal/ports/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("Database connection failed", zap.Error(err))
	}

	if err := dbadapter.Migrate(db); err != nil {
		logger.Fatal("Error during migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed")

	ctx := context.Background()
	redisClient, err := config.InitRedis(ctx, cfg)
	if err != nil {
		logger.Fatal("Redis connection failed", zap.Error(err))
	}

	defer closeResources(logger, db, redisClient)

	var nameCache userPort.NameCache
	if redisClient != nil {
		nameCache = redisadapter.NewUserNameCacheRedis(redisClient, cfg.UserNameCacheTTL)
		logger.Info("User name cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)

	userSvc := userapp.NewUserService(userRepo, nameCache, logger)
	postSvc := postapp.NewPostService(postRepo, userRepo, logger)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo, userRepo, nameCache, logger)

	gin.SetMode(cfg.GinMode)
	r := httpapi.SetupRoutes(cfg.APIPrefix, logger, userSvc, postSvc, commentSvc)

	logger.Info("App is running", zap.String("port", cfg.AppPort), zap.String("prefix", cfg.APIPrefix))
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}

// closeResources closes the Redis client (if any) and the database pool.
func closeResources(logger *zap.Logger, db *gorm.DB, redisClient *redis.Client) {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
