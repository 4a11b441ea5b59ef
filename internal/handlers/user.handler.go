package handlers

import (
	"errors"
	"watchlist/internal/app"
	"watchlist/internal/handlers/middleware"
	"watchlist/internal/logger"
	"watchlist/internal/models"

	authController "watchlist/internal/controllers/auth"
	userController "watchlist/internal/controllers/users"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	users userController.UserControllerInterface
	auth  authController.AuthControllerInterface
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		users: app.Controllers.User,
		auth:  app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/user")

	users.Get("/info", h.getInfo)
	users.Get("/statistics", h.getStatistics)
	users.Get("/show-list", h.getShowList)

	protected := users.Group("/", h.middleware.RequireAuth(h.auth))
	protected.Get("/activity", h.getActivity)
	protected.Delete("/delete-activity", h.deleteActivity)
	protected.Post("/follow", h.follow)
	protected.Delete("/follow", h.unfollow)
	protected.Get("/follows", h.checkFollows)
	protected.Get("/friends", h.getFriends)
	protected.Post("/increment-show", h.incrementShow)
}

func (h *UserHandler) getInfo(c *fiber.Ctx) error {
	log := h.log.Function("getInfo")

	username := c.Query("username")
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username is required",
		})
	}

	profile, err := h.users.GetProfile(c.UserContext(), username)
	if err != nil {
		if errors.Is(err, userController.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Er("failed to get profile", err, "username", username)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profile",
		})
	}

	return c.JSON(profile)
}

func (h *UserHandler) getStatistics(c *fiber.Ctx) error {
	log := h.log.Function("getStatistics")

	username := c.Query("username")
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username is required",
		})
	}

	stats, err := h.users.GetStatistics(c.UserContext(), username)
	if err != nil {
		if errors.Is(err, userController.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Er("failed to get statistics", err, "username", username)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load statistics",
		})
	}

	return c.JSON(stats)
}

func (h *UserHandler) getShowList(c *fiber.Ctx) error {
	log := h.log.Function("getShowList")

	username := c.Query("username")
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username is required",
		})
	}

	var listType *models.ListType
	if raw := c.Query("list_type"); raw != "" {
		value := models.ListType(raw)
		if !models.ValidListType(value) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid list type",
			})
		}
		listType = &value
	}

	entries, err := h.users.GetShowList(c.UserContext(), username, listType)
	if err != nil {
		if errors.Is(err, userController.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Er("failed to get show list", err, "username", username)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load show list",
		})
	}

	return c.JSON(fiber.Map{"shows": entries})
}

func (h *UserHandler) getActivity(c *fiber.Ctx) error {
	log := h.log.Function("getActivity")

	entries, err := h.users.GetActivityFeed(
		c.UserContext(), middleware.GetUserID(c), c.QueryInt("limit"),
	)
	if err != nil {
		log.Er("failed to get activity feed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load activity",
		})
	}

	return c.JSON(fiber.Map{"activity": entries})
}

func (h *UserHandler) deleteActivity(c *fiber.Ctx) error {
	log := h.log.Function("deleteActivity")

	activityID := int64(c.QueryInt("activity_id"))
	if activityID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "activity_id is required",
		})
	}

	err := h.users.DeleteActivity(c.UserContext(), activityID, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, userController.ErrActivityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Activity entry not found",
			})
		}
		log.Er("failed to delete activity", err, "activityID", activityID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete activity",
		})
	}

	return c.JSON(fiber.Map{"message": "Activity deleted"})
}

type followRequest struct {
	Username string `json:"username"`
	Follow   bool   `json:"follow"`
}

func (h *UserHandler) follow(c *fiber.Ctx) error {
	log := h.log.Function("follow")

	var req followRequest
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username is required",
		})
	}

	userID := middleware.GetUserID(c)
	var err error
	if req.Follow {
		err = h.users.Follow(c.UserContext(), userID, req.Username)
	} else {
		err = h.users.Unfollow(c.UserContext(), userID, req.Username)
	}
	if err != nil {
		switch {
		case errors.Is(err, userController.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		case errors.Is(err, userController.ErrSelfFollow):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot follow yourself",
			})
		default:
			log.Er("failed to update follow", err, "username", req.Username)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update follow",
			})
		}
	}

	return c.JSON(fiber.Map{"message": "Follow updated"})
}

func (h *UserHandler) unfollow(c *fiber.Ctx) error {
	log := h.log.Function("unfollow")

	username := c.Query("username")
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username is required",
		})
	}

	err := h.users.Unfollow(c.UserContext(), middleware.GetUserID(c), username)
	if err != nil {
		if errors.Is(err, userController.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Er("failed to unfollow", err, "username", username)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to unfollow",
		})
	}

	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

func (h *UserHandler) checkFollows(c *fiber.Ctx) error {
	log := h.log.Function("checkFollows")

	username := c.Query("username")
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username is required",
		})
	}

	follows, err := h.users.IsFollowing(c.UserContext(), middleware.GetUserID(c), username)
	if err != nil {
		if errors.Is(err, userController.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Er("failed to check follow", err, "username", username)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check follow",
		})
	}

	return c.JSON(fiber.Map{"follows": follows})
}

func (h *UserHandler) getFriends(c *fiber.Ctx) error {
	log := h.log.Function("getFriends")

	friends, err := h.users.ListFriends(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		log.Er("failed to list friends", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load friends",
		})
	}

	return c.JSON(fiber.Map{"friends": friends})
}

type incrementShowRequest struct {
	ShowID int    `json:"showId"`
	Type   string `json:"type"`
}

func (h *UserHandler) incrementShow(c *fiber.Ctx) error {
	log := h.log.Function("incrementShow")

	var req incrementShowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.ShowID <= 0 || (req.Type != "movie" && req.Type != "tv") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "showId and type are required",
		})
	}

	entry, err := h.users.IncrementShow(
		c.UserContext(), middleware.GetUserID(c), req.ShowID, req.Type == "movie",
	)
	if err != nil {
		if errors.Is(err, userController.ErrNotWatching) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Show is not on your list",
			})
		}
		log.Er("failed to increment show", err, "showID", req.ShowID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update progress",
		})
	}

	return c.JSON(entry)
}
