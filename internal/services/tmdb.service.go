package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"watchlist/config"
	"watchlist/internal/logger"
)

// ErrCatalogNotFound is returned when the catalog provider has no entry for
// the requested id. Callers treat it as a soft miss, not a failure.
var ErrCatalogNotFound = errors.New("catalog entry not found")

type TMDBService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     logger.Logger
}

type TMDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type TMDBSeason struct {
	AirDate      *string  `json:"air_date"`
	EpisodeCount *int     `json:"episode_count"`
	Name         *string  `json:"name"`
	Overview     *string  `json:"overview"`
	PosterPath   *string  `json:"poster_path"`
	SeasonNumber int      `json:"season_number"`
	VoteAverage  *float64 `json:"vote_average"`
}

type TMDBEpisode struct {
	AirDate       *string  `json:"air_date"`
	EpisodeNumber int      `json:"episode_number"`
	Name          *string  `json:"name"`
	Overview      *string  `json:"overview"`
	Runtime       *int     `json:"runtime"`
	StillPath     *string  `json:"still_path"`
	VoteAverage   *float64 `json:"vote_average"`
	VoteCount     *int     `json:"vote_count"`
}

// TMDBShow covers both movie and TV payloads. Movies carry title and
// release_date, series carry name and first_air_date; normalization picks
// whichever is present.
type TMDBShow struct {
	ID               int          `json:"id"`
	Adult            *bool        `json:"adult"`
	BackdropPath     *string      `json:"backdrop_path"`
	OriginCountry    []string     `json:"origin_country"`
	OriginalLanguage *string      `json:"original_language"`
	OriginalTitle    *string      `json:"original_title"`
	OriginalName     *string      `json:"original_name"`
	Overview         *string      `json:"overview"`
	Popularity       *float64     `json:"popularity"`
	PosterPath       *string      `json:"poster_path"`
	ReleaseDate      *string      `json:"release_date"`
	FirstAirDate     *string      `json:"first_air_date"`
	Runtime          *int         `json:"runtime"`
	Status           *string      `json:"status"`
	Tagline          *string      `json:"tagline"`
	Title            *string      `json:"title"`
	Name             *string      `json:"name"`
	VoteAverage      *float64     `json:"vote_average"`
	VoteCount        *int         `json:"vote_count"`
	EpisodeRunTime   []int        `json:"episode_run_time"`
	InProduction     *bool        `json:"in_production"`
	NumberOfEpisodes *int         `json:"number_of_episodes"`
	NumberOfSeasons  *int         `json:"number_of_seasons"`
	Genres           []TMDBGenre  `json:"genres"`
	Seasons          []TMDBSeason `json:"seasons"`
}

type TMDBSeasonDetail struct {
	SeasonNumber int           `json:"season_number"`
	Episodes     []TMDBEpisode `json:"episodes"`
}

type TMDBSearchResult struct {
	ID           int      `json:"id"`
	Title        *string  `json:"title"`
	Name         *string  `json:"name"`
	Overview     *string  `json:"overview"`
	PosterPath   *string  `json:"poster_path"`
	ReleaseDate  *string  `json:"release_date"`
	FirstAirDate *string  `json:"first_air_date"`
	Popularity   *float64 `json:"popularity"`
	VoteAverage  *float64 `json:"vote_average"`
}

type TMDBSearchResponse struct {
	Page         int                `json:"page"`
	Results      []TMDBSearchResult `json:"results"`
	TotalPages   int                `json:"total_pages"`
	TotalResults int                `json:"total_results"`
}

func NewTMDBService(config config.Config) *TMDBService {
	return &TMDBService{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: config.TMDBBaseURL,
		apiKey:  config.TMDBAPIKey,
		log:     logger.New("TMDBService"),
	}
}

func mediaPath(isMovie bool) string {
	if isMovie {
		return "movie"
	}
	return "tv"
}

func (t *TMDBService) get(ctx context.Context, path string, params url.Values, out any) error {
	log := t.log.Function("get")

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", t.apiKey)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, t.baseURL+path+"?"+params.Encode(), nil,
	)
	if err != nil {
		return log.Err("failed to create request", err, "path", path)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return log.Err("failed to make request", err, "path", path)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return ErrCatalogNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return log.ErrMsg(fmt.Sprintf("unexpected status %d for %s", resp.StatusCode, path))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return log.Err("failed to decode response", err, "path", path)
	}

	return nil
}

// GetShow fetches the full detail payload for one movie or series.
func (t *TMDBService) GetShow(ctx context.Context, showID int, isMovie bool) (*TMDBShow, error) {
	var show TMDBShow
	path := fmt.Sprintf("/%s/%d", mediaPath(isMovie), showID)
	if err := t.get(ctx, path, nil, &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// GetSeason fetches the episode list for one season of a series.
func (t *TMDBService) GetSeason(
	ctx context.Context,
	showID, seasonNumber int,
) (*TMDBSeasonDetail, error) {
	var season TMDBSeasonDetail
	path := fmt.Sprintf("/tv/%d/season/%d", showID, seasonNumber)
	if err := t.get(ctx, path, nil, &season); err != nil {
		return nil, err
	}
	return &season, nil
}

// Search queries the provider's title search for the given media type.
func (t *TMDBService) Search(
	ctx context.Context,
	query string,
	isMovie bool,
	page int,
) (*TMDBSearchResponse, error) {
	if page <= 0 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var result TMDBSearchResponse
	if err := t.get(ctx, "/search/"+mediaPath(isMovie), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Discover returns popular entries for preloading the catalog.
func (t *TMDBService) Discover(
	ctx context.Context,
	isMovie bool,
	page int,
) (*TMDBSearchResponse, error) {
	if page <= 0 {
		page = 1
	}

	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))

	var result TMDBSearchResponse
	if err := t.get(ctx, "/discover/"+mediaPath(isMovie), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
