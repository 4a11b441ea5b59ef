package jobs

import (
	"context"
	"errors"
	"testing"
	"watchlist/internal/models"
	"watchlist/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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

type MockIngester struct {
	mock.Mock
}

func (m *MockIngester) IngestShow(ctx context.Context, showID int, isMovie bool) error {
	args := m.Called(ctx, showID, isMovie)
	return args.Error(0)
}

func inProductionShows() []*models.Show {
	return []*models.Show{
		{ShowID: 1396, IsMovie: false},
		{ShowID: 1438, IsMovie: false},
	}
}

func TestCatalogRefreshJob_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("refreshes every in-production show", func(t *testing.T) {
		showRepo := new(MockShowRepository)
		ingester := new(MockIngester)
		memo := services.NewIngestMemoService()
		defer memo.Stop()

		memo.Record(1396, false)

		showRepo.On("ListInProduction", ctx).Return(inProductionShows(), nil)
		ingester.On("IngestShow", ctx, 1396, false).Return(nil)
		ingester.On("IngestShow", ctx, 1438, false).Return(nil)

		job := NewCatalogRefreshJob(showRepo, ingester, memo)
		err := job.Execute(ctx)

		assert.NoError(t, err)
		assert.False(t, memo.Seen(1396, false), "memo entry dropped before refresh")
		showRepo.AssertExpectations(t)
		ingester.AssertExpectations(t)
	})

	t.Run("nothing to refresh", func(t *testing.T) {
		showRepo := new(MockShowRepository)
		ingester := new(MockIngester)
		memo := services.NewIngestMemoService()
		defer memo.Stop()

		showRepo.On("ListInProduction", ctx).Return([]*models.Show{}, nil)

		job := NewCatalogRefreshJob(showRepo, ingester, memo)
		err := job.Execute(ctx)

		assert.NoError(t, err)
		ingester.AssertNotCalled(t, "IngestShow", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("list failure aborts the run", func(t *testing.T) {
		showRepo := new(MockShowRepository)
		ingester := new(MockIngester)
		memo := services.NewIngestMemoService()
		defer memo.Stop()

		showRepo.On("ListInProduction", ctx).Return(nil, errors.New("db down"))

		job := NewCatalogRefreshJob(showRepo, ingester, memo)
		err := job.Execute(ctx)

		assert.Error(t, err)
	})

	t.Run("one failing show does not stop the rest", func(t *testing.T) {
		showRepo := new(MockShowRepository)
		ingester := new(MockIngester)
		memo := services.NewIngestMemoService()
		defer memo.Stop()

		showRepo.On("ListInProduction", ctx).Return(inProductionShows(), nil)
		ingester.On("IngestShow", ctx, 1396, false).Return(errors.New("provider timeout"))
		ingester.On("IngestShow", ctx, 1438, false).Return(nil)

		job := NewCatalogRefreshJob(showRepo, ingester, memo)
		err := job.Execute(ctx)

		assert.NoError(t, err)
		ingester.AssertExpectations(t)
	})

	t.Run("vanished show is skipped quietly", func(t *testing.T) {
		showRepo := new(MockShowRepository)
		ingester := new(MockIngester)
		memo := services.NewIngestMemoService()
		defer memo.Stop()

		showRepo.On("ListInProduction", ctx).Return(inProductionShows(), nil)
		ingester.On("IngestShow", ctx, 1396, false).Return(services.ErrCatalogNotFound)
		ingester.On("IngestShow", ctx, 1438, false).Return(nil)

		job := NewCatalogRefreshJob(showRepo, ingester, memo)
		err := job.Execute(ctx)

		assert.NoError(t, err)
		ingester.AssertExpectations(t)
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		showRepo := new(MockShowRepository)
		ingester := new(MockIngester)
		memo := services.NewIngestMemoService()
		defer memo.Stop()

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		showRepo.On("ListInProduction", cancelled).Return(inProductionShows(), nil)

		job := NewCatalogRefreshJob(showRepo, ingester, memo)
		err := job.Execute(cancelled)

		assert.Error(t, err)
		ingester.AssertNotCalled(t, "IngestShow", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCatalogRefreshJob_Metadata(t *testing.T) {
	job := NewCatalogRefreshJob(new(MockShowRepository), new(MockIngester), services.NewIngestMemoService())

	assert.Equal(t, "CatalogRefresh", job.Name())
	assert.Equal(t, services.Daily, job.Schedule())
}
