package app

import (
	"context"
	"watchlist/config"
	"watchlist/internal/controllers"
	"watchlist/internal/database"
	"watchlist/internal/events"
	"watchlist/internal/handlers/middleware"
	"watchlist/internal/jobs"
	"watchlist/internal/logger"
	"watchlist/internal/repositories"
	"watchlist/internal/services"
	"watchlist/internal/websockets"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	Services     services.Service
	Repositories repositories.Repository
	Controllers  controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	repos := repositories.New(db)

	srvs, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	websocket, err := websockets.New(db, eventBus, config, repos)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	middleware := middleware.New(db, eventBus, config, repos)
	ctrls := controllers.New(srvs, repos, eventBus, config, db)

	if config.SchedulerEnabled {
		refreshJob := jobs.NewCatalogRefreshJob(repos.Show, srvs.Ingest, srvs.IngestMemo)
		if err := srvs.Scheduler.AddJob(refreshJob); err != nil {
			return &App{}, log.Err("failed to register catalog refresh job", err)
		}
		log.Info("Registered catalog refresh job with scheduler")
	}

	app := &App{
		Database:     db,
		Config:       config,
		Middleware:   middleware,
		Websocket:    websocket,
		EventBus:     eventBus,
		Services:     srvs,
		Repositories: repos,
		Controllers:  ctrls,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services.TMDB,
		a.Services.Ingest,
		a.Services.IngestMemo,
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Controllers.Auth,
		a.Controllers.Show,
		a.Controllers.User,
		a.Controllers.Admin,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.IngestMemo != nil {
		a.Services.IngestMemo.Stop()
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
