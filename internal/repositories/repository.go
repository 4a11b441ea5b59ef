package repositories

import (
	"watchlist/internal/database"
)

type Repository struct {
	Show         ShowRepository
	Genre        GenreRepository
	Season       SeasonRepository
	Episode      EpisodeRepository
	User         UserRepository
	UserShow     UserShowRepository
	UserActivity UserActivityRepository
	UserFollow   UserFollowRepository
	Comment      CommentRepository
}

func New(db database.DB) Repository {
	return Repository{
		Show:         NewShowRepository(db),
		Genre:        NewGenreRepository(db),
		Season:       NewSeasonRepository(db),
		Episode:      NewEpisodeRepository(db),
		User:         NewUserRepository(db),
		UserShow:     NewUserShowRepository(db),
		UserActivity: NewUserActivityRepository(db),
		UserFollow:   NewUserFollowRepository(db),
		Comment:      NewCommentRepository(db),
	}
}
