package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/docukit/docgraph-backend/internal/bus"
	"github.com/docukit/docgraph-backend/internal/db"
	"github.com/docukit/docgraph-backend/internal/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	publisher bus.Publisher
	listener  *bus.DeletionListener
	cancel    context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	publisher, err := bus.NewRedisPublisher(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init redis publisher: %w", err)
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, publisher)
	handlerset := wireHandlers(serviceset)
	router := wireRouter(log, handlerset)

	a := &App{
		Log:       log,
		DB:        theDB,
		Router:    router,
		Cfg:       cfg,
		Repos:     reposet,
		Services:  serviceset,
		publisher: publisher,
	}
	if cfg.ConsumeDeletions {
		listener, err := bus.NewDeletionListener(log, cfg.DeletionChannel, serviceset.Author)
		if err != nil {
			publisher.Close()
			log.Sync()
			return nil, fmt.Errorf("init deletion listener: %w", err)
		}
		a.listener = listener
	}
	return a, nil
}

func (a *App) Start() error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.listener != nil {
		if err := a.listener.Start(ctx); err != nil {
			return fmt.Errorf("start deletion listener: %w", err)
		}
	}
	return nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.listener != nil {
		a.listener.Close()
	}
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
