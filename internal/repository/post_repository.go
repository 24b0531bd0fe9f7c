package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plaintext/internal/apperror"
	"plaintext/internal/models"
)

const postColumns = `p.post_id, p.author_id, a.username AS author_username, p.content, p.image_url,
	p.likes_count, p.comments_count, p.moderation_score, p.moderation_status, p.created_at, p.updated_at`

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts post with the CreatedAt chosen by the caller, so the
// cooldown check and the stored timestamp agree.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.ModerationStatus == "" {
		post.ModerationStatus = "PENDING"
	}
	post.UpdatedAt = post.CreatedAt

	query := `
		INSERT INTO posts (post_id, author_id, content, image_url, likes_count, comments_count,
			moderation_score, moderation_status, created_at, updated_at)
		VALUES (:post_id, :author_id, :content, :image_url, :likes_count, :comments_count,
			:moderation_score, :moderation_status, :created_at, :updated_at)
	`

	if _, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT ` + postColumns + `
		FROM posts p JOIN accounts a ON a.account_id = p.author_id
		WHERE p.post_id = $1`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound("post", postID)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// LockByID reads the post and holds its row lock until the surrounding
// transaction ends. Every counter change on a post goes through this lock.
func (r *postRepository) LockByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT ` + postColumns + `
		FROM posts p JOIN accounts a ON a.account_id = p.author_id
		WHERE p.post_id = $1
		FOR UPDATE OF p`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound("post", postID)
		}
		return nil, fmt.Errorf("failed to lock post: %w", err)
	}

	return &post, nil
}

// LatestByAuthor returns nil, nil when the author has no posts.
func (r *postRepository) LatestByAuthor(ctx context.Context, authorID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT ` + postColumns + `
		FROM posts p JOIN accounts a ON a.account_id = p.author_id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC
		LIMIT 1`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &post, query, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest post: %w", err)
	}

	return &post, nil
}

func (r *postRepository) AdjustLikesCount(ctx context.Context, postID string, delta int) (int, error) {
	var count int

	query := `
		UPDATE posts SET likes_count = likes_count + $1
		WHERE post_id = $2
		RETURNING likes_count
	`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &count, query, delta, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperror.NewNotFound("post", postID)
		}
		return 0, fmt.Errorf("failed to update likes count: %w", err)
	}

	return count, nil
}

func (r *postRepository) IncrementCommentsCount(ctx context.Context, postID string) (int, error) {
	var count int

	query := `
		UPDATE posts SET comments_count = comments_count + 1
		WHERE post_id = $1
		RETURNING comments_count
	`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &count, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperror.NewNotFound("post", postID)
		}
		return 0, fmt.Errorf("failed to update comments count: %w", err)
	}

	return count, nil
}

func (r *postRepository) Feed(ctx context.Context, limit, offset int) ([]models.Post, error) {
	posts := []models.Post{}

	query := `SELECT ` + postColumns + `
		FROM posts p JOIN accounts a ON a.account_id = p.author_id
		ORDER BY p.created_at DESC, p.post_id
		LIMIT $1 OFFSET $2`

	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &posts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}

	return posts, nil
}

func (r *postRepository) ByAuthorUsername(ctx context.Context, username string, limit, offset int) ([]models.Post, error) {
	posts := []models.Post{}

	query := `SELECT ` + postColumns + `
		FROM posts p JOIN accounts a ON a.account_id = p.author_id
		WHERE a.username = $1
		ORDER BY p.created_at DESC, p.post_id
		LIMIT $2 OFFSET $3`

	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &posts, query, username, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get posts of %s: %w", username, err)
	}

	return posts, nil
}
