package repositories

import (
	"context"
	"watchlist/internal/database"
	"watchlist/internal/logger"
	. "watchlist/internal/models"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *ShowComment) (*ShowComment, error)
	Delete(ctx context.Context, commentID, userID int) (bool, error)
	ListForShow(ctx context.Context, showID int, isMovie bool) ([]*CommentEntry, error)
}

type commentRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCommentRepository(db database.DB) CommentRepository {
	return &commentRepository{
		db:  db,
		log: logger.New("commentRepository"),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *ShowComment) (*ShowComment, error) {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(comment).Error; err != nil {
		return nil, log.Err("failed to create comment", err,
			"userID", comment.UserID, "showID", comment.ShowID)
	}

	return comment, nil
}

// Delete removes a comment when it belongs to userID. Returns whether a row
// was deleted.
func (r *commentRepository) Delete(ctx context.Context, commentID, userID int) (bool, error) {
	log := r.log.Function("Delete")

	result := r.db.SQLWithContext(ctx).
		Delete(&ShowComment{}, "comment_id = ? AND user_id = ?", commentID, userID)
	if result.Error != nil {
		return false, log.Err("failed to delete comment", result.Error,
			"commentID", commentID, "userID", userID)
	}

	return result.RowsAffected > 0, nil
}

func (r *commentRepository) ListForShow(
	ctx context.Context,
	showID int,
	isMovie bool,
) ([]*CommentEntry, error) {
	log := r.log.Function("ListForShow")

	var comments []*CommentEntry
	err := r.db.SQLWithContext(ctx).
		Table("show_comments").
		Select("show_comments.comment_id, show_comments.comment, show_comments.date, users.username").
		Joins("JOIN users ON users.id = show_comments.user_id").
		Where("show_comments.show_id = ? AND show_comments.is_movie = ?", showID, isMovie).
		Order("show_comments.date DESC").
		Scan(&comments).Error
	if err != nil {
		return nil, log.Err("failed to list comments", err, "showID", showID, "isMovie", isMovie)
	}

	return comments, nil
}
