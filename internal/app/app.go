package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
)

type App struct {
	Log      *logger.Logger
	Router   *gin.Engine
	Cfg      Config
	Clients  Clients
	Services Services
}

func New(ctx context.Context) (*App, error) {
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

	clientset, err := wireClients(ctx, cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	serviceset := wireServices(cfg, clientset, log)
	handlerset := wireHandlers(cfg, serviceset, log)
	router := wireRouter(cfg, handlerset, log)

	return &App{
		Log:      log,
		Router:   router,
		Cfg:      cfg,
		Clients:  clientset,
		Services: serviceset,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port, "mode", a.Cfg.AppEnv)
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
