package showController

import (
	"context"
	"strings"
	"testing"
	"watchlist/internal/models"
	"watchlist/internal/repositories"
	"watchlist/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockShowRepository struct {
	mock.Mock
}

func (m *MockShowRepository) Upsert(ctx context.Context, tx *gorm.DB, show *models.Show) error {
	args := m.Called(ctx, tx, show)
	return args.Error(0)
}

func (m *MockShowRepository) GetByKey(ctx context.Context, showID int, isMovie bool) (*models.Show, error) {
	args := m.Called(ctx, showID, isMovie)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Show), args.Error(1)
}

func (m *MockShowRepository) GetWithSeasons(ctx context.Context, showID int, isMovie bool) (*models.Show, error) {
	args := m.Called(ctx, showID, isMovie)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Show), args.Error(1)
}

func (m *MockShowRepository) Exists(ctx context.Context, showID int, isMovie bool) (bool, error) {
	args := m.Called(ctx, showID, isMovie)
	return args.Bool(0), args.Error(1)
}

func (m *MockShowRepository) ListInProduction(ctx context.Context) ([]*models.Show, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Show), args.Error(1)
}

func (m *MockShowRepository) Search(ctx context.Context, query string, limit int) ([]*models.Show, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Show), args.Error(1)
}

func (m *MockShowRepository) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.ShowComment) (*models.ShowComment, error) {
	args := m.Called(ctx, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShowComment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID, userID int) (bool, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) ListForShow(ctx context.Context, showID int, isMovie bool) ([]*models.CommentEntry, error) {
	args := m.Called(ctx, showID, isMovie)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CommentEntry), args.Error(1)
}

type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) UpsertBatch(ctx context.Context, tx *gorm.DB, genres []*models.Genre) error {
	args := m.Called(ctx, tx, genres)
	return args.Error(0)
}

func (m *MockGenreRepository) LinkToShow(ctx context.Context, tx *gorm.DB, showID int, isMovie bool, genreIDs []int) error {
	args := m.Called(ctx, tx, showID, isMovie, genreIDs)
	return args.Error(0)
}

func (m *MockGenreRepository) ListForShow(ctx context.Context, showID int, isMovie bool) ([]*models.Genre, error) {
	args := m.Called(ctx, showID, isMovie)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Genre), args.Error(1)
}

func newTestController(repos repositories.Repository) ShowControllerInterface {
	return New(repos, services.Service{}, nil)
}

// newDetailController wires an ingest service whose memo already holds the
// show, so GetShowInfo serves stored data without reaching the provider.
func newDetailController(t *testing.T, repos repositories.Repository, showID int, isMovie bool) ShowControllerInterface {
	memo := services.NewIngestMemoService()
	t.Cleanup(memo.Stop)
	memo.Record(showID, isMovie)
	ingest := services.NewIngestService(nil, memo, repositories.Repository{}, nil)
	return New(repos, services.Service{Ingest: ingest}, nil)
}

func TestShowController_GetShowInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles genres and comments", func(t *testing.T) {
		showRepo := new(MockShowRepository)
		genreRepo := new(MockGenreRepository)
		commentRepo := new(MockCommentRepository)

		showRepo.On("GetWithSeasons", ctx, 949, true).
			Return(&models.Show{ShowID: 949, IsMovie: true}, nil)
		genreRepo.On("ListForShow", ctx, 949, true).
			Return([]*models.Genre{{ID: 18, Name: "Drama"}}, nil)
		commentRepo.On("ListForShow", ctx, 949, true).
			Return([]*models.CommentEntry{
				{CommentID: 4, Comment: "still holds up", Username: "ada"},
			}, nil)

		controller := newDetailController(t, repositories.Repository{
			Show:    showRepo,
			Genre:   genreRepo,
			Comment: commentRepo,
		}, 949, true)

		info, err := controller.GetShowInfo(ctx, 949, true)

		require.NoError(t, err)
		assert.Equal(t, 949, info.ShowID)
		require.Len(t, info.Genres, 1)
		assert.Equal(t, "Drama", info.Genres[0].Name)
		require.Len(t, info.Comments, 1)
		assert.Equal(t, "ada", info.Comments[0].Username)
		showRepo.AssertExpectations(t)
	})

	t.Run("unknown show", func(t *testing.T) {
		showRepo := new(MockShowRepository)
		showRepo.On("GetWithSeasons", ctx, 42, true).Return(nil, gorm.ErrRecordNotFound)

		controller := newDetailController(t, repositories.Repository{Show: showRepo}, 42, true)

		_, err := controller.GetShowInfo(ctx, 42, true)

		assert.ErrorIs(t, err, ErrShowNotFound)
	})
}

func TestShowController_SetUserShow(t *testing.T) {
	ctx := context.Background()

	badType := models.ListType("Binging")
	badScore := 11

	t.Run("rejects unknown list type", func(t *testing.T) {
		controller := newTestController(repositories.Repository{})

		_, err := controller.SetUserShow(ctx, SetUserShowRequest{
			UserID: 3, ShowID: 1396, ListType: &badType,
		})

		assert.ErrorIs(t, err, ErrInvalidEntry)
	})

	t.Run("rejects out-of-range score", func(t *testing.T) {
		controller := newTestController(repositories.Repository{})

		_, err := controller.SetUserShow(ctx, SetUserShowRequest{
			UserID: 3, ShowID: 1396, Score: &badScore,
		})

		assert.ErrorIs(t, err, ErrInvalidEntry)
	})

	t.Run("show must exist locally", func(t *testing.T) {
		showRepo := new(MockShowRepository)
		showRepo.On("Exists", ctx, 1396, false).Return(false, nil)

		controller := newTestController(repositories.Repository{Show: showRepo})
		watching := models.ListWatching

		_, err := controller.SetUserShow(ctx, SetUserShowRequest{
			UserID: 3, ShowID: 1396, ListType: &watching,
		})

		assert.ErrorIs(t, err, ErrShowNotFound)
	})
}

func TestShowController_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty comment", func(t *testing.T) {
		controller := newTestController(repositories.Repository{})

		_, err := controller.AddComment(ctx, AddCommentRequest{UserID: 3, ShowID: 1396})

		assert.ErrorIs(t, err, ErrInvalidComment)
	})

	t.Run("rejects oversized comment", func(t *testing.T) {
		controller := newTestController(repositories.Repository{})

		_, err := controller.AddComment(ctx, AddCommentRequest{
			UserID:  3,
			ShowID:  1396,
			Comment: strings.Repeat("a", models.MaxCommentLength+1),
		})

		assert.ErrorIs(t, err, ErrInvalidComment)
	})

	t.Run("creates a comment on an existing show", func(t *testing.T) {
		showRepo := new(MockShowRepository)
		commentRepo := new(MockCommentRepository)
		showRepo.On("Exists", ctx, 1396, false).Return(true, nil)
		commentRepo.On("Create", ctx, mock.MatchedBy(func(comment *models.ShowComment) bool {
			return comment.UserID == 3 && comment.ShowID == 1396 && comment.Comment == "great pilot"
		})).Return(&models.ShowComment{
			CommentID: 1,
			UserID:    3,
			ShowID:    1396,
			Comment:   "great pilot",
		}, nil)

		controller := newTestController(repositories.Repository{Show: showRepo, Comment: commentRepo})
		comment, err := controller.AddComment(ctx, AddCommentRequest{
			UserID: 3, ShowID: 1396, Comment: "great pilot",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, comment.CommentID)
		commentRepo.AssertExpectations(t)
	})
}

func TestShowController_DeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("someone else's comment reports not found", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		commentRepo.On("Delete", ctx, 9, 3).Return(false, nil)

		controller := newTestController(repositories.Repository{Comment: commentRepo})
		err := controller.DeleteComment(ctx, 9, 3)

		assert.ErrorIs(t, err, ErrCommentNotFound)
	})

	t.Run("own comment deletes", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		commentRepo.On("Delete", ctx, 9, 3).Return(true, nil)

		controller := newTestController(repositories.Repository{Comment: commentRepo})
		err := controller.DeleteComment(ctx, 9, 3)

		assert.NoError(t, err)
	})
}

func TestAttachEpisodes(t *testing.T) {
	show := &models.Show{
		Seasons: []models.Season{
			{SeasonNumber: 1},
			{SeasonNumber: 2},
		},
	}
	episodes := []*models.Episode{
		{SeasonNumber: 1, EpisodeNumber: 1},
		{SeasonNumber: 1, EpisodeNumber: 2},
		{SeasonNumber: 2, EpisodeNumber: 1},
	}

	attachEpisodes(show, episodes)

	require.Len(t, show.Seasons[0].Episodes, 2)
	require.Len(t, show.Seasons[1].Episodes, 1)
	assert.Equal(t, 2, show.Seasons[0].Episodes[1].EpisodeNumber)
}
