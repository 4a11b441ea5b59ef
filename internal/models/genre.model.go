package models

import (
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

// Genre ids come from the upstream catalog, not a local sequence. A genre is
// created on first sight and its name is never rewritten afterwards.
type Genre struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"type:text;not null"             json:"name"`
	Timestamps
}

func (g *Genre) BeforeSave(tx *gorm.DB) error {
	if !utf8.ValidString(g.Name) || strings.Contains(g.Name, "\x00") {
		g.Name = strings.ToValidUTF8(strings.ReplaceAll(g.Name, "\x00", ""), "")
	}
	return nil
}

// ShowGenre joins a show to a genre. Modeled explicitly because the show side
// of the join is a composite key.
type ShowGenre struct {
	ShowID  int  `gorm:"primaryKey;autoIncrement:false;column:show_id" json:"showId"`
	IsMovie bool `gorm:"primaryKey;column:is_movie"                    json:"isMovie"`
	GenreID int  `gorm:"primaryKey;autoIncrement:false;column:genre_id" json:"genreId"`

	Show  Show  `gorm:"foreignKey:ShowID,IsMovie;references:ShowID,IsMovie;constraint:OnDelete:CASCADE" json:"-"`
	Genre Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE"                                  json:"-"`
}

func (ShowGenre) TableName() string {
	return "show_genres"
}
