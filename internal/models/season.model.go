package models

import (
	"time"
)

// Season belongs to a show; episode_count is what the ingest engine compares
// against stored rows to decide whether episode refetching is needed.
type Season struct {
	ShowID       int        `gorm:"primaryKey;autoIncrement:false;column:show_id" json:"showId"`
	IsMovie      bool       `gorm:"primaryKey;column:is_movie"                    json:"isMovie"`
	SeasonNumber int        `gorm:"primaryKey;autoIncrement:false;column:season_number" json:"seasonNumber"`
	AirDate      *time.Time `gorm:"type:date"   json:"airDate,omitempty"`
	EpisodeCount *int       `gorm:"type:int"    json:"episodeCount,omitempty"`
	Name         *string    `gorm:"type:text"   json:"name,omitempty"`
	Overview     *string    `gorm:"type:text"   json:"overview,omitempty"`
	PosterPath   *string    `gorm:"type:text"   json:"posterPath,omitempty"`
	VoteAverage  *float64   `gorm:"type:float8" json:"voteAverage,omitempty"`
	Timestamps

	Episodes []Episode `gorm:"-" json:"episodes,omitempty"`
}

// SeasonCoalesceColumns are the columns updated with coalesce-with-existing
// semantics: a null incoming value never clobbers a stored one.
func SeasonCoalesceColumns() []string {
	return []string{
		"air_date", "episode_count", "name", "overview", "poster_path",
		"vote_average",
	}
}
