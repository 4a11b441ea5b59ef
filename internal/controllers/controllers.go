package controllers

import (
	"watchlist/config"
	"watchlist/internal/database"
	"watchlist/internal/events"
	"watchlist/internal/repositories"
	"watchlist/internal/services"

	adminController "watchlist/internal/controllers/admin"
	authController "watchlist/internal/controllers/auth"
	showController "watchlist/internal/controllers/shows"
	userController "watchlist/internal/controllers/users"
)

type Controllers struct {
	Auth  authController.AuthControllerInterface
	Show  showController.ShowControllerInterface
	User  userController.UserControllerInterface
	Admin adminController.AdminControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:  authController.New(repos.User, config),
		Show:  showController.New(repos, services, eventBus),
		User:  userController.New(repos, services, eventBus),
		Admin: adminController.New(repos, services),
	}
}
