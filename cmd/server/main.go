package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Daina40/KadenaPrdn/internal/config"
	"github.com/Daina40/KadenaPrdn/internal/middleware"
	"github.com/Daina40/KadenaPrdn/internal/style/entity"
	"github.com/Daina40/KadenaPrdn/internal/style/handler"
	"github.com/Daina40/KadenaPrdn/internal/style/repository"
	"github.com/Daina40/KadenaPrdn/internal/style/service"
	"github.com/Daina40/KadenaPrdn/internal/style/storage"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting style tracking service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.Customer{},
		&entity.Style{},
		&entity.Description{},
		&entity.Comment{},
		&entity.Image{},
	); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}

	// Early deployments kept a single description and a single comment as
	// text columns directly on styles. Move those into the child tables
	// before dropping the columns.
	migrationSQL := []string{
		`INSERT INTO descriptions (id, style_id, text, created_at)
			SELECT substr(md5(random()::text || s.id), 1, 32), s.id, s.style_description, NOW()
			FROM styles s
			WHERE s.style_description IS NOT NULL AND s.style_description <> ''
			AND NOT EXISTS (SELECT 1 FROM descriptions d WHERE d.style_id = s.id AND d.text = s.style_description)`,
		`INSERT INTO comments (id, style_id, description_id, process, responsible, text, created_at, updated_at)
			SELECT substr(md5(random()::text || s.id), 1, 32), s.id, NULL, 'Others', 'APM', s.comments, NOW(), NOW()
			FROM styles s
			WHERE s.comments IS NOT NULL AND s.comments <> ''
			AND NOT EXISTS (SELECT 1 FROM comments c WHERE c.style_id = s.id AND c.description_id IS NULL AND c.process = 'Others')`,
		"ALTER TABLE styles DROP COLUMN IF EXISTS style_description",
		"ALTER TABLE styles DROP COLUMN IF EXISTS comments",
	}
	for _, sql := range migrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			zapLogger.Warn("Migration SQL warning (may already exist)", zap.String("sql", sql), zap.Error(err))
		}
	}
	zapLogger.Info("Database migration completed")

	rdb := initRedis(cfg.Redis)

	var store storage.ObjectStore
	if cfg.MinIO.Endpoint != "" {
		minioStore, err := storage.NewMinioStore(cfg.MinIO)
		if err != nil {
			zapLogger.Fatal("Failed to connect to object storage", zap.Error(err))
		}
		store = minioStore
	} else {
		zapLogger.Warn("Object storage not configured, image uploads disabled")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, rdb, store)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		styles := authorized.Group("/styles")
		{
			styles.POST("", h.Style.Create)
			styles.GET("/overview", h.Style.Overview)
			styles.GET("/detail", h.Style.ListDetail)
			styles.GET("/filters", h.Style.Filters)
			styles.GET("/:id", h.Style.Get)
			styles.PUT("/:id", h.Style.Update)
			styles.DELETE("/:id", h.Style.Delete)
			styles.POST("/:id/promote", h.Style.Promote)
			styles.POST("/:id/descriptions", h.Style.AddDescription)
			styles.GET("/:id/comments", h.Comment.Index)
			styles.POST("/:id/comments", h.Comment.Save)
			styles.DELETE("/:id/comments", h.Comment.Delete)
			styles.GET("/:id/export", h.Export.ExportStyle)
			styles.GET("/:id/images", h.Image.List)
			styles.POST("/:id/images", h.Image.Upload)
		}

		authorized.DELETE("/descriptions/:id", h.Style.DeleteDescription)
		authorized.DELETE("/images/:id", h.Image.Delete)
	}
}
