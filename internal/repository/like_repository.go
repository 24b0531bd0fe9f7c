package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, accountID, postID string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM post_likes WHERE account_id = $1 AND post_id = $2)`

	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, query, accountID, postID); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return exists, nil
}

// Insert fails on a duplicate (account, post) pair; the primary key backs
// the post row lock taken by the caller.
func (r *likeRepository) Insert(ctx context.Context, accountID, postID string, at time.Time) error {
	query := `INSERT INTO post_likes (account_id, post_id, created_at) VALUES ($1, $2, $3)`

	if _, err := executor(ctx, r.db).ExecContext(ctx, query, accountID, postID, at); err != nil {
		return fmt.Errorf("failed to insert like: %w", err)
	}

	return nil
}

func (r *likeRepository) Delete(ctx context.Context, accountID, postID string) (bool, error) {
	query := `DELETE FROM post_likes WHERE account_id = $1 AND post_id = $2`

	result, err := executor(ctx, r.db).ExecContext(ctx, query, accountID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

// LikedPostIDs returns the subset of postIDs liked by accountID.
func (r *likeRepository) LikedPostIDs(ctx context.Context, accountID string, postIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if len(postIDs) == 0 {
		return liked, nil
	}

	var ids []string

	query := `SELECT post_id FROM post_likes WHERE account_id = $1 AND post_id = ANY($2)`

	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &ids, query, accountID, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("failed to get liked posts: %w", err)
	}

	for _, id := range ids {
		liked[id] = true
	}

	return liked, nil
}
