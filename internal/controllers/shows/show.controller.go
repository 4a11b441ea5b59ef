package showController

import (
	"context"
	"errors"
	"watchlist/internal/events"
	"watchlist/internal/logger"
	"watchlist/internal/models"
	"watchlist/internal/repositories"
	"watchlist/internal/services"

	"gorm.io/gorm"
)

var (
	ErrShowNotFound    = errors.New("show not found")
	ErrEntryNotFound   = errors.New("list entry not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidEntry    = errors.New("invalid list entry")
	ErrInvalidComment  = errors.New("invalid comment")
)

// ShowController serves catalog detail pages and per-user list state.
type ShowController struct {
	repos    repositories.Repository
	services services.Service
	eventBus *events.EventBus
	log      logger.Logger
}

type ShowControllerInterface interface {
	GetShowInfo(ctx context.Context, showID int, isMovie bool) (*ShowInfo, error)
	Search(ctx context.Context, query string, isMovie bool, page int) (*services.TMDBSearchResponse, error)
	GetUserShow(ctx context.Context, userID, showID int, isMovie bool) (*models.UserShow, error)
	SetUserShow(ctx context.Context, req SetUserShowRequest) (*models.UserShow, error)
	AddComment(ctx context.Context, req AddCommentRequest) (*models.ShowComment, error)
	DeleteComment(ctx context.Context, commentID, userID int) error
	ListComments(ctx context.Context, showID int, isMovie bool) ([]*models.CommentEntry, error)
}

// ShowInfo is the full detail-page payload: the show row with its genres,
// comments, and seasons, episodes nested under their seasons.
type ShowInfo struct {
	models.Show
	Genres   []*models.Genre        `json:"genres"`
	Comments []*models.CommentEntry `json:"comments"`
}

type SetUserShowRequest struct {
	UserID        int              `json:"-"`
	ShowID        int              `json:"showId"`
	IsMovie       bool             `json:"isMovie"`
	ListType      *models.ListType `json:"listType"`
	SeasonNumber  *int             `json:"seasonNumber"`
	EpisodeNumber *int             `json:"episodeNumber"`
	Score         *int             `json:"score"`
}

type AddCommentRequest struct {
	UserID  int    `json:"-"`
	ShowID  int    `json:"showId"`
	IsMovie bool   `json:"isMovie"`
	Comment string `json:"comment"`
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
) ShowControllerInterface {
	return &ShowController{
		repos:    repos,
		services: services,
		eventBus: eventBus,
		log:      logger.New("showController"),
	}
}

// GetShowInfo refreshes the show from the catalog provider, then reads the
// stored tree. A provider miss or fetch failure still serves stored data when
// any exists, so a flaky provider never blanks a detail page.
func (c *ShowController) GetShowInfo(ctx context.Context, showID int, isMovie bool) (*ShowInfo, error) {
	log := c.log.Function("GetShowInfo")

	if err := c.services.Ingest.IngestShow(ctx, showID, isMovie); err != nil {
		if !errors.Is(err, services.ErrCatalogNotFound) {
			log.Warn("ingest failed, serving stored data",
				"showID", showID, "isMovie", isMovie, "error", err)
		}
	}

	show, err := c.repos.Show.GetWithSeasons(ctx, showID, isMovie)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}

	genres, err := c.repos.Genre.ListForShow(ctx, showID, isMovie)
	if err != nil {
		return nil, err
	}

	comments, err := c.repos.Comment.ListForShow(ctx, showID, isMovie)
	if err != nil {
		return nil, err
	}

	if !isMovie {
		episodes, err := c.repos.Episode.ListForShow(ctx, showID, isMovie)
		if err != nil {
			return nil, err
		}
		attachEpisodes(show, episodes)
	}

	return &ShowInfo{Show: *show, Genres: genres, Comments: comments}, nil
}

// attachEpisodes nests flat episode rows under their seasons.
func attachEpisodes(show *models.Show, episodes []*models.Episode) {
	bySeason := make(map[int][]models.Episode)
	for _, episode := range episodes {
		bySeason[episode.SeasonNumber] = append(bySeason[episode.SeasonNumber], *episode)
	}
	for i := range show.Seasons {
		show.Seasons[i].Episodes = bySeason[show.Seasons[i].SeasonNumber]
	}
}

func (c *ShowController) Search(
	ctx context.Context,
	query string,
	isMovie bool,
	page int,
) (*services.TMDBSearchResponse, error) {
	return c.services.TMDB.Search(ctx, query, isMovie, page)
}

func (c *ShowController) GetUserShow(
	ctx context.Context,
	userID, showID int,
	isMovie bool,
) (*models.UserShow, error) {
	entry, err := c.repos.UserShow.Get(ctx, userID, showID, isMovie)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// SetUserShow writes the caller's list entry for a show. The show must exist
// locally first; an activity row is appended by a database trigger, and the
// fresh entry is announced on the event bus.
func (c *ShowController) SetUserShow(
	ctx context.Context,
	req SetUserShowRequest,
) (*models.UserShow, error) {
	log := c.log.Function("SetUserShow")

	if req.ListType != nil && !models.ValidListType(*req.ListType) {
		return nil, ErrInvalidEntry
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 10) {
		return nil, ErrInvalidEntry
	}

	exists, err := c.repos.Show.Exists(ctx, req.ShowID, req.IsMovie)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrShowNotFound
	}

	entry := &models.UserShow{
		UserID:        req.UserID,
		ShowID:        req.ShowID,
		IsMovie:       req.IsMovie,
		ListType:      req.ListType,
		SeasonNumber:  req.SeasonNumber,
		EpisodeNumber: req.EpisodeNumber,
		Score:         req.Score,
	}

	if err := c.repos.UserShow.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	c.repos.User.InvalidateStatistics(ctx, req.UserID)

	if err := c.eventBus.PublishActivity(req.UserID, entry); err != nil {
		log.Warn("failed to publish activity event", "userID", req.UserID, "error", err)
	}

	return entry, nil
}

func (c *ShowController) AddComment(
	ctx context.Context,
	req AddCommentRequest,
) (*models.ShowComment, error) {
	if req.Comment == "" || len(req.Comment) > models.MaxCommentLength {
		return nil, ErrInvalidComment
	}

	exists, err := c.repos.Show.Exists(ctx, req.ShowID, req.IsMovie)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrShowNotFound
	}

	return c.repos.Comment.Create(ctx, &models.ShowComment{
		ShowID:  req.ShowID,
		IsMovie: req.IsMovie,
		UserID:  req.UserID,
		Comment: req.Comment,
	})
}

func (c *ShowController) DeleteComment(ctx context.Context, commentID, userID int) error {
	deleted, err := c.repos.Comment.Delete(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCommentNotFound
	}
	return nil
}

func (c *ShowController) ListComments(
	ctx context.Context,
	showID int,
	isMovie bool,
) ([]*models.CommentEntry, error) {
	return c.repos.Comment.ListForShow(ctx, showID, isMovie)
}
