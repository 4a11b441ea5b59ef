package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"watchlist/internal/logger"
	. "watchlist/internal/models"
	"watchlist/internal/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const tmdbDateLayout = "2006-01-02"

// CatalogClient is the slice of the provider API the ingest engine needs.
type CatalogClient interface {
	GetShow(ctx context.Context, showID int, isMovie bool) (*TMDBShow, error)
	GetSeason(ctx context.Context, showID, seasonNumber int) (*TMDBSeasonDetail, error)
}

// IngestService pulls one catalog entry from the provider and writes it to
// the local tables. All writes for a single show happen in one transaction,
// so readers never observe a show without its genres or seasons.
type IngestService struct {
	catalog     CatalogClient
	memo        *IngestMemoService
	repos       repositories.Repository
	transaction *TransactionService
	log         logger.Logger
}

func NewIngestService(
	catalog CatalogClient,
	memo *IngestMemoService,
	repos repositories.Repository,
	transaction *TransactionService,
) *IngestService {
	return &IngestService{
		catalog:     catalog,
		memo:        memo,
		repos:       repos,
		transaction: transaction,
		log:         logger.New("IngestService"),
	}
}

// IngestShow fetches and upserts a show, its genres, seasons, and the
// episodes of the seasons that need refreshing. Returns ErrCatalogNotFound
// when the provider has no such entry; a memo hit is a silent no-op.
func (s *IngestService) IngestShow(ctx context.Context, showID int, isMovie bool) error {
	log := s.log.Function("IngestShow")

	if s.memo.Seen(showID, isMovie) {
		log.Debug("show in memo window, skipping", "showID", showID, "isMovie", isMovie)
		return nil
	}

	payload, err := s.catalog.GetShow(ctx, showID, isMovie)
	if err != nil {
		if errors.Is(err, ErrCatalogNotFound) {
			log.Warn("show not found in catalog", "showID", showID, "isMovie", isMovie)
			return ErrCatalogNotFound
		}
		return log.Err("failed to fetch show", err, "showID", showID, "isMovie", isMovie)
	}

	show := normalizeShow(payload, showID, isMovie)
	seasons := normalizeSeasons(payload.Seasons, showID, isMovie)

	// Which seasons need episode refetching is decided and fetched before
	// the transaction opens, so no network call runs inside it.
	episodes, err := s.fetchEpisodes(ctx, showID, isMovie, payload.Seasons)
	if err != nil {
		return err
	}

	err = s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := s.repos.Show.Upsert(ctx, tx, show); err != nil {
			return err
		}

		if len(payload.Genres) > 0 {
			genres := make([]*Genre, len(payload.Genres))
			genreIDs := make([]int, len(payload.Genres))
			for i, genre := range payload.Genres {
				genres[i] = &Genre{ID: genre.ID, Name: genre.Name}
				genreIDs[i] = genre.ID
			}
			if err := s.repos.Genre.UpsertBatch(ctx, tx, genres); err != nil {
				return err
			}
			if err := s.repos.Genre.LinkToShow(ctx, tx, showID, isMovie, genreIDs); err != nil {
				return err
			}
		}

		if len(seasons) > 0 {
			if err := s.repos.Season.UpsertBatch(ctx, tx, seasons); err != nil {
				return err
			}
		}

		if len(episodes) > 0 {
			if err := s.repos.Episode.UpsertBatch(ctx, tx, episodes); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return log.Err("failed to ingest show", err, "showID", showID, "isMovie", isMovie)
	}

	s.memo.Record(showID, isMovie)
	log.Info("show ingested", "showID", showID, "isMovie", isMovie,
		"seasons", len(seasons), "episodes", len(episodes))

	return nil
}

// fetchEpisodes pulls episode lists for the seasons selected by
// seasonsToRefresh. A season the provider no longer knows is skipped.
func (s *IngestService) fetchEpisodes(
	ctx context.Context,
	showID int,
	isMovie bool,
	seasons []TMDBSeason,
) ([]*Episode, error) {
	log := s.log.Function("fetchEpisodes")

	if isMovie || len(seasons) == 0 {
		return nil, nil
	}

	storedCount, err := s.repos.Season.CountForShow(ctx, showID, isMovie)
	if err != nil {
		return nil, err
	}

	var episodes []*Episode
	for _, seasonNumber := range seasonsToRefresh(storedCount, seasons) {
		detail, err := s.catalog.GetSeason(ctx, showID, seasonNumber)
		if err != nil {
			if errors.Is(err, ErrCatalogNotFound) {
				log.Warn("season not found in catalog",
					"showID", showID, "seasonNumber", seasonNumber)
				continue
			}
			return nil, log.Err("failed to fetch season", err,
				"showID", showID, "seasonNumber", seasonNumber)
		}
		if len(detail.Episodes) == 0 {
			log.Warn("season has no episodes",
				"showID", showID, "seasonNumber", seasonNumber)
			continue
		}
		episodes = append(episodes, normalizeEpisodes(detail.Episodes, showID, isMovie, seasonNumber)...)
	}

	return episodes, nil
}

// seasonsToRefresh picks which seasons get their episodes refetched. When
// every fetched season already has a stored row, only the newest season can
// have changed, so just that one is refreshed. Otherwise all of them are.
func seasonsToRefresh(storedCount int64, seasons []TMDBSeason) []int {
	if len(seasons) == 0 {
		return nil
	}

	if storedCount == int64(len(seasons)) {
		last := seasons[0].SeasonNumber
		for _, season := range seasons[1:] {
			if season.SeasonNumber > last {
				last = season.SeasonNumber
			}
		}
		return []int{last}
	}

	numbers := make([]int, len(seasons))
	for i, season := range seasons {
		numbers[i] = season.SeasonNumber
	}
	return numbers
}

// normalizeShow maps a provider payload onto a catalog row. Movie and TV
// payloads disagree on field names, so the first populated variant wins.
func normalizeShow(payload *TMDBShow, showID int, isMovie bool) *Show {
	return &Show{
		ShowID:           showID,
		IsMovie:          isMovie,
		Adult:            payload.Adult,
		BackdropPath:     payload.BackdropPath,
		OriginCountry:    joinCountries(payload.OriginCountry),
		OriginalLanguage: payload.OriginalLanguage,
		OriginalTitle:    firstNonEmpty(payload.OriginalTitle, payload.OriginalName),
		Overview:         payload.Overview,
		Popularity:       payload.Popularity,
		PosterPath:       payload.PosterPath,
		ReleaseDate:      parseDate(firstNonEmpty(payload.ReleaseDate, payload.FirstAirDate)),
		Runtime:          payload.Runtime,
		Status:           payload.Status,
		Tagline:          payload.Tagline,
		Title:            firstNonEmpty(payload.Title, payload.Name),
		VoteAverage:      payload.VoteAverage,
		VoteCount:        payload.VoteCount,
		EpisodeRunTime:   datatypes.NewJSONSlice(payload.EpisodeRunTime),
		InProduction:     payload.InProduction,
		NumberOfEpisodes: payload.NumberOfEpisodes,
		NumberOfSeasons:  payload.NumberOfSeasons,
	}
}

func normalizeSeasons(payload []TMDBSeason, showID int, isMovie bool) []*Season {
	if isMovie || len(payload) == 0 {
		return nil
	}

	seasons := make([]*Season, len(payload))
	for i, season := range payload {
		seasons[i] = &Season{
			ShowID:       showID,
			IsMovie:      isMovie,
			SeasonNumber: season.SeasonNumber,
			AirDate:      parseDate(season.AirDate),
			EpisodeCount: season.EpisodeCount,
			Name:         season.Name,
			Overview:     emptyToNil(season.Overview),
			PosterPath:   season.PosterPath,
			VoteAverage:  season.VoteAverage,
		}
	}
	return seasons
}

func normalizeEpisodes(
	payload []TMDBEpisode,
	showID int,
	isMovie bool,
	seasonNumber int,
) []*Episode {
	episodes := make([]*Episode, len(payload))
	for i, episode := range payload {
		episodes[i] = &Episode{
			ShowID:        showID,
			IsMovie:       isMovie,
			SeasonNumber:  seasonNumber,
			EpisodeNumber: episode.EpisodeNumber,
			Name:          episode.Name,
			Overview:      emptyToNil(episode.Overview),
			VoteAverage:   episode.VoteAverage,
			VoteCount:     episode.VoteCount,
			AirDate:       parseDate(episode.AirDate),
			Runtime:       episode.Runtime,
			StillPath:     episode.StillPath,
		}
	}
	return episodes
}

// firstNonEmpty returns the first pointer holding a non-empty string.
func firstNonEmpty(values ...*string) *string {
	for _, value := range values {
		if value != nil && *value != "" {
			return value
		}
	}
	return nil
}

func emptyToNil(value *string) *string {
	if value != nil && *value == "" {
		return nil
	}
	return value
}

func parseDate(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	parsed, err := time.Parse(tmdbDateLayout, *value)
	if err != nil {
		return nil
	}
	return &parsed
}

func joinCountries(countries []string) *string {
	if len(countries) == 0 {
		return nil
	}
	joined := strings.Join(countries, ",")
	return &joined
}
