package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plaintext/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment and fills in its insertion sequence, which
// breaks ties between comments sharing a timestamp.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}

	query := `
		INSERT INTO comments (comment_id, post_id, account_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq
	`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &comment.Seq, query,
		comment.CommentID, comment.PostID, comment.AccountID, comment.Content, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	comments := []models.Comment{}

	query := `
		SELECT c.comment_id, c.seq, c.post_id, c.account_id, a.username AS author_username,
			c.content, c.created_at
		FROM comments c JOIN accounts a ON a.account_id = c.account_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.seq ASC
	`

	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, nil
}
