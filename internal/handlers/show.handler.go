package handlers

import (
	"errors"
	"watchlist/internal/app"
	"watchlist/internal/handlers/middleware"
	"watchlist/internal/logger"

	authController "watchlist/internal/controllers/auth"
	showController "watchlist/internal/controllers/shows"

	"github.com/gofiber/fiber/v2"
)

type ShowHandler struct {
	Handler
	shows showController.ShowControllerInterface
	auth  authController.AuthControllerInterface
}

func NewShowHandler(app app.App, router fiber.Router) *ShowHandler {
	log := logger.New("handlers").File("show_handler")
	return &ShowHandler{
		shows: app.Controllers.Show,
		auth:  app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ShowHandler) Register() {
	shows := h.router.Group("/show")

	shows.Get("/info", h.getShowInfo)
	shows.Get("/search", h.search)
	shows.Get("/comments", h.listComments)

	protected := shows.Group("/", h.middleware.RequireAuth(h.auth))
	protected.Post("/list", h.setUserShow)
	protected.Get("/listget", h.getUserShow)
	protected.Post("/make-comment", h.makeComment)
	protected.Delete("/delete-comment", h.deleteComment)
}

// showKey parses the show_id and type query parameters shared by most show
// routes.
func showKey(c *fiber.Ctx) (showID int, isMovie bool, ok bool) {
	showID = c.QueryInt("show_id")
	mediaType := c.Query("type")
	if showID <= 0 || (mediaType != "movie" && mediaType != "tv") {
		return 0, false, false
	}
	return showID, mediaType == "movie", true
}

func (h *ShowHandler) getShowInfo(c *fiber.Ctx) error {
	log := h.log.Function("getShowInfo")

	showID, isMovie, ok := showKey(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Type and ID are required",
		})
	}

	info, err := h.shows.GetShowInfo(c.UserContext(), showID, isMovie)
	if err != nil {
		if errors.Is(err, showController.ErrShowNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Show not found",
			})
		}
		log.Er("failed to get show info", err, "showID", showID, "isMovie", isMovie)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load show",
		})
	}

	return c.JSON(info)
}

func (h *ShowHandler) search(c *fiber.Ctx) error {
	log := h.log.Function("search")

	query := c.Query("query")
	mediaType := c.Query("type")
	if query == "" || (mediaType != "movie" && mediaType != "tv") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query and type are required",
		})
	}

	results, err := h.shows.Search(c.UserContext(), query, mediaType == "movie", c.QueryInt("page", 1))
	if err != nil {
		log.Er("search failed", err, "query", query)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	return c.JSON(results)
}

func (h *ShowHandler) setUserShow(c *fiber.Ctx) error {
	log := h.log.Function("setUserShow")

	var req showController.SetUserShowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	req.UserID = middleware.GetUserID(c)

	entry, err := h.shows.SetUserShow(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, showController.ErrInvalidEntry):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid list entry",
			})
		case errors.Is(err, showController.ErrShowNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Show not found",
			})
		default:
			log.Er("failed to set user show", err, "userID", req.UserID)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update list",
			})
		}
	}

	return c.JSON(entry)
}

func (h *ShowHandler) getUserShow(c *fiber.Ctx) error {
	log := h.log.Function("getUserShow")

	showID, isMovie, ok := showKey(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Type and ID are required",
		})
	}

	entry, err := h.shows.GetUserShow(c.UserContext(), middleware.GetUserID(c), showID, isMovie)
	if err != nil {
		if errors.Is(err, showController.ErrEntryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "List entry not found",
			})
		}
		log.Er("failed to get user show", err, "showID", showID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load list entry",
		})
	}

	return c.JSON(entry)
}

func (h *ShowHandler) listComments(c *fiber.Ctx) error {
	log := h.log.Function("listComments")

	showID, isMovie, ok := showKey(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Type and ID are required",
		})
	}

	comments, err := h.shows.ListComments(c.UserContext(), showID, isMovie)
	if err != nil {
		log.Er("failed to list comments", err, "showID", showID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load comments",
		})
	}

	return c.JSON(fiber.Map{"comments": comments})
}

func (h *ShowHandler) makeComment(c *fiber.Ctx) error {
	log := h.log.Function("makeComment")

	var req showController.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	req.UserID = middleware.GetUserID(c)

	comment, err := h.shows.AddComment(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, showController.ErrInvalidComment):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid comment",
			})
		case errors.Is(err, showController.ErrShowNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Show not found",
			})
		default:
			log.Er("failed to make comment", err, "userID", req.UserID)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to make comment",
			})
		}
	}

	return c.JSON(fiber.Map{"commentId": comment.CommentID})
}

func (h *ShowHandler) deleteComment(c *fiber.Ctx) error {
	log := h.log.Function("deleteComment")

	commentID := c.QueryInt("comment_id")
	if commentID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "comment_id is required",
		})
	}

	err := h.shows.DeleteComment(c.UserContext(), commentID, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, showController.ErrCommentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Comment not found",
			})
		}
		log.Er("failed to delete comment", err, "commentID", commentID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete comment",
		})
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
