// Package app wires configuration, storage and services into one
// embeddable unit. There is no HTTP surface here; callers embed App
// behind whatever transport they run.
package app

import (
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inkwell-press/inkwell-backend/internal/config"
	"github.com/inkwell-press/inkwell-backend/internal/migration"
	"github.com/inkwell-press/inkwell-backend/internal/repository"
	"github.com/inkwell-press/inkwell-backend/internal/service"
	pkgcache "github.com/inkwell-press/inkwell-backend/pkg/cache"
	"github.com/inkwell-press/inkwell-backend/pkg/logger"
	pkgredis "github.com/inkwell-press/inkwell-backend/pkg/redis"
)

// App is the assembled content backend.
type App struct {
	Config *config.Config
	DB     *gorm.DB

	Articles   service.ArticleService
	Categories service.CategoryService
	Comments   service.CommentService
	Ratings    service.RatingService
}

// New loads configuration, connects storage and assembles the service
// graph. Redis is optional: when it is disabled or unreachable the app
// runs uncached.
func New(configPath string) (*App, error) {
	dotenvFiles := config.LoadDotEnv()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.InitStructured(cfg.App.Env)
	logger.Info("env=%s, loaded env files: %v", cfg.App.Env, dotenvFiles)
	config.LogResolved(cfg)

	db, err := initDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := migration.Run(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var cacheService pkgcache.Service
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if err != nil {
			logger.Warn("redis unavailable, running uncached: %v", err)
		} else {
			cacheService = pkgcache.NewService(redisClient)
			logger.Info("cache service initialized")
		}
	}

	categoryRepo := repository.NewCategoryRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	revisionRepo := repository.NewRevisionRepository(db)

	allocator := service.NewSlugAllocator()

	return &App{
		Config:     cfg,
		DB:         db,
		Articles:   service.NewArticleService(articleRepo, categoryRepo, revisionRepo, allocator, cfg.Content),
		Categories: service.NewCategoryService(categoryRepo, allocator, cacheService),
		Comments:   service.NewCommentService(commentRepo, articleRepo),
		Ratings:    service.NewRatingService(ratingRepo, articleRepo, cacheService),
	}, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}

	// TranslateError maps driver duplicate-key errors onto
	// gorm.ErrDuplicatedKey; the slug and vote paths depend on that.
	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}
