package handlers

import (
	"errors"
	"watchlist/internal/app"
	"watchlist/internal/logger"

	adminController "watchlist/internal/controllers/admin"
	authController "watchlist/internal/controllers/auth"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	admin adminController.AdminControllerInterface
	auth  authController.AuthControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		admin: app.Controllers.Admin,
		auth:  app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin",
		h.middleware.RequireAuth(h.auth),
		h.middleware.RequireAdmin(),
	)

	admin.Get("/userlist", h.listUsers)
	admin.Post("/adduser", h.addUser)
	admin.Post("/edituser", h.editUser)
	admin.Post("/deleteuser", h.deleteUser)
	admin.Post("/preload-shows", h.preloadShows)
	admin.Post("/removeallshows", h.removeAllShows)
}

func (h *AdminHandler) listUsers(c *fiber.Ctx) error {
	log := h.log.Function("listUsers")

	users, err := h.admin.ListUsers(c.UserContext())
	if err != nil {
		log.Er("failed to list users", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list users",
		})
	}

	return c.JSON(fiber.Map{"users": users})
}

func (h *AdminHandler) addUser(c *fiber.Ctx) error {
	log := h.log.Function("addUser")

	var req adminController.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	profile, err := h.admin.CreateUser(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, adminController.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid user input",
			})
		}
		log.Er("failed to create user", err, "username", req.Username)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

type editUserRequest struct {
	UserID int `json:"userId"`
	adminController.UpdateUserRequest
}

func (h *AdminHandler) editUser(c *fiber.Ctx) error {
	log := h.log.Function("editUser")

	var req editUserRequest
	if err := c.BodyParser(&req); err != nil || req.UserID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId is required",
		})
	}

	profile, err := h.admin.UpdateUser(c.UserContext(), req.UserID, req.UpdateUserRequest)
	if err != nil {
		switch {
		case errors.Is(err, adminController.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		case errors.Is(err, adminController.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid user input",
			})
		default:
			log.Er("failed to update user", err, "userID", req.UserID)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update user",
			})
		}
	}

	return c.JSON(profile)
}

type deleteUserRequest struct {
	UserID int `json:"userId"`
}

func (h *AdminHandler) deleteUser(c *fiber.Ctx) error {
	log := h.log.Function("deleteUser")

	var req deleteUserRequest
	if err := c.BodyParser(&req); err != nil || req.UserID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId is required",
		})
	}

	if err := h.admin.DeleteUser(c.UserContext(), req.UserID); err != nil {
		if errors.Is(err, adminController.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Er("failed to delete user", err, "userID", req.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete user",
		})
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}

func (h *AdminHandler) preloadShows(c *fiber.Ctx) error {
	log := h.log.Function("preloadShows")

	result, err := h.admin.PreloadShows(c.UserContext())
	if err != nil {
		log.Er("failed to preload shows", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to preload shows",
		})
	}

	return c.JSON(result)
}

func (h *AdminHandler) removeAllShows(c *fiber.Ctx) error {
	log := h.log.Function("removeAllShows")

	if err := h.admin.PurgeShows(c.UserContext()); err != nil {
		log.Er("failed to purge shows", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove shows",
		})
	}

	return c.JSON(fiber.Map{"message": "All shows removed"})
}
