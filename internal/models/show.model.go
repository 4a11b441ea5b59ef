package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Show is one catalog entry. The same numeric TMDB id can name both a movie
// and a TV series, so the primary key is the composite (is_movie, show_id).
type Show struct {
	ShowID           int                      `gorm:"primaryKey;autoIncrement:false;column:show_id" json:"showId"`
	IsMovie          bool                     `gorm:"primaryKey;column:is_movie"                    json:"isMovie"`
	Adult            *bool                    `gorm:"type:bool"                                     json:"adult,omitempty"`
	BackdropPath     *string                  `gorm:"type:text"                                     json:"backdropPath,omitempty"`
	OriginCountry    *string                  `gorm:"type:text"                                     json:"originCountry,omitempty"`
	OriginalLanguage *string                  `gorm:"type:text"                                     json:"originalLanguage,omitempty"`
	OriginalTitle    *string                  `gorm:"type:text"                                     json:"originalTitle,omitempty"`
	Overview         *string                  `gorm:"type:text"                                     json:"overview,omitempty"`
	Popularity       *float64                 `gorm:"type:float8"                                   json:"popularity,omitempty"`
	PosterPath       *string                  `gorm:"type:text"                                     json:"posterPath,omitempty"`
	ReleaseDate      *time.Time               `gorm:"type:date"                                     json:"releaseDate,omitempty"`
	Runtime          *int                     `gorm:"type:int"                                      json:"runtime,omitempty"`
	Status           *string                  `gorm:"type:text"                                     json:"status,omitempty"`
	Tagline          *string                  `gorm:"type:text"                                     json:"tagline,omitempty"`
	Title            *string                  `gorm:"type:text;index:idx_shows_title"               json:"title,omitempty"`
	VoteAverage      *float64                 `gorm:"type:float8"                                   json:"voteAverage,omitempty"`
	VoteCount        *int                     `gorm:"type:int"                                      json:"voteCount,omitempty"`
	EpisodeRunTime   datatypes.JSONSlice[int] `gorm:"column:episode_run_time"                       json:"episodeRunTime,omitempty"`
	InProduction     *bool                    `gorm:"type:bool"                                     json:"inProduction,omitempty"`
	NumberOfEpisodes *int                     `gorm:"type:int"                                      json:"numberOfEpisodes,omitempty"`
	NumberOfSeasons  *int                     `gorm:"type:int"                                      json:"numberOfSeasons,omitempty"`
	Timestamps

	Seasons []Season `gorm:"foreignKey:ShowID,IsMovie;references:ShowID,IsMovie;constraint:OnDelete:CASCADE" json:"seasons,omitempty"`
}

func (s *Show) BeforeCreate(tx *gorm.DB) error {
	if s.ShowID == 0 {
		return gorm.ErrInvalidValue
	}
	return nil
}

// ShowUpsertColumns lists every scalar column overwritten on conflict. Unlike
// seasons and episodes, a show row always reflects the latest fetch.
func ShowUpsertColumns() []string {
	return []string{
		"adult", "backdrop_path", "origin_country", "original_language",
		"original_title", "overview", "popularity", "poster_path",
		"release_date", "runtime", "status", "tagline", "title",
		"vote_average", "vote_count", "episode_run_time", "in_production",
		"number_of_episodes", "number_of_seasons", "updated_at",
	}
}
