package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Insert reports whether a new row was written; an existing follow is
// left untouched.
func (r *followRepository) Insert(ctx context.Context, followerID, followingID string, at time.Time) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, following_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`

	result, err := executor(ctx, r.db).ExecContext(ctx, query, followerID, followingID, at)
	if err != nil {
		return false, fmt.Errorf("failed to insert follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check inserted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) (bool, error) {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`

	result, err := executor(ctx, r.db).ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`

	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, query, followerID, followingID); err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return exists, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, accountID string) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM follows WHERE following_id = $1`

	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &count, query, accountID); err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}

	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, accountID string) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM follows WHERE follower_id = $1`

	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &count, query, accountID); err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}

	return count, nil
}
