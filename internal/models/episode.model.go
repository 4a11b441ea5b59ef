package models

import (
	"time"
)

type Episode struct {
	ShowID        int        `gorm:"primaryKey;autoIncrement:false;column:show_id"         json:"showId"`
	IsMovie       bool       `gorm:"primaryKey;column:is_movie"                            json:"isMovie"`
	SeasonNumber  int        `gorm:"primaryKey;autoIncrement:false;column:season_number"   json:"seasonNumber"`
	EpisodeNumber int        `gorm:"primaryKey;autoIncrement:false;column:episode_number"  json:"episodeNumber"`
	Name          *string    `gorm:"type:text"   json:"name,omitempty"`
	Overview      *string    `gorm:"type:text"   json:"overview,omitempty"`
	VoteAverage   *float64   `gorm:"type:float8" json:"voteAverage,omitempty"`
	VoteCount     *int       `gorm:"type:int"    json:"voteCount,omitempty"`
	AirDate       *time.Time `gorm:"type:date"   json:"airDate,omitempty"`
	Runtime       *int       `gorm:"type:int"    json:"runtime,omitempty"`
	StillPath     *string    `gorm:"type:text"   json:"stillPath,omitempty"`
	Timestamps

	Show Show `gorm:"foreignKey:ShowID,IsMovie;references:ShowID,IsMovie;constraint:OnDelete:CASCADE" json:"-"`
}

func EpisodeCoalesceColumns() []string {
	return []string{
		"name", "overview", "vote_average", "vote_count", "air_date",
		"runtime", "still_path",
	}
}
