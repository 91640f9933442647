package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Leonard1379/MyDjangoProject/config"
	"github.com/Leonard1379/MyDjangoProject/internal/api"
	"github.com/Leonard1379/MyDjangoProject/internal/memory"
	"github.com/Leonard1379/MyDjangoProject/internal/polls"
	"github.com/Leonard1379/MyDjangoProject/internal/postgres"
	"github.com/Leonard1379/MyDjangoProject/internal/redis"
	redishandler "github.com/Leonard1379/MyDjangoProject/internal/redisHandler"
	"github.com/Leonard1379/MyDjangoProject/internal/repository"
	"github.com/Leonard1379/MyDjangoProject/internal/sqlite"
)

type App struct {
	Config config.Config
	Repo   repository.QuestionRepository
	Polls  *polls.Service
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	repo, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	return &App{
		Config: cfg,
		Repo:   repo,
		Polls:  polls.New(repo, cfg.PageSize),
	}, nil
}

// OpenStore connects the backend named by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg config.Config) (repository.QuestionRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		rdb, err := redis.InitRedis(ctx, redis.Options{
			Addr:     cfg.RedisURI,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return redishandler.NewQuestionRepo(rdb), nil
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewQuestionRepo(pool), nil
	case config.DriverSQLite:
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.DriverMemory:
		return memory.NewQuestionRepo(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Migrate creates the schema when the backend has one.
func (a *App) Migrate(ctx context.Context) error {
	m, ok := a.Repo.(repository.Migrator)
	if !ok {
		log.Printf("%s store needs no migration", a.Config.StoreDriver)
		return nil
	}
	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (a *App) Router() (*gin.Engine, error) {
	if a.Config.GinMode != "" {
		gin.SetMode(a.Config.GinMode)
	}
	if a.Config.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET is not set, /login and /api are disabled")
	}
	return api.NewRouter(a.Polls, a.Config.JWTSecret)
}

func (a *App) Close() error {
	return a.Repo.Close()
}
