package service

import (
	"context"
	"database/sql"
	"time"

	"plaintext/internal/apperror"
	"plaintext/internal/logger"
	"plaintext/internal/models"
	"plaintext/internal/repository"
)

// PostCooldown is the minimum gap between two posts by the same author.
const PostCooldown = 5 * time.Minute

type PostService interface {
	CreatePost(ctx context.Context, identity *models.Identity, req CreatePostRequest) (*PostView, error)
	GetFeed(ctx context.Context, identity *models.Identity, page Page) ([]PostView, error)
	GetUserPosts(ctx context.Context, identity *models.Identity, username string, page Page) ([]PostView, error)
}

type postService struct {
	tx          repository.TxManager
	accountRepo repository.AccountRepository
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	now         func() time.Time
}

func NewPostService(
	tx repository.TxManager,
	accountRepo repository.AccountRepository,
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	now func() time.Time,
) PostService {
	return &postService{
		tx:          tx,
		accountRepo: accountRepo,
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		now:         now,
	}
}

// CreatePost enforces the author cooldown and stores the post. The author
// row lock serialises concurrent posts by one author, so two requests can
// not both pass the check.
func (p *postService) CreatePost(ctx context.Context, identity *models.Identity, req CreatePostRequest) (*PostView, error) {
	var post *models.Post

	err := p.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := p.accountRepo.LockByID(ctx, identity.AccountID); err != nil {
			return err
		}

		now := storedTime(p.now())

		latest, err := p.postRepo.LatestByAuthor(ctx, identity.AccountID)
		if err != nil {
			return err
		}
		if latest != nil {
			if elapsed := now.Sub(latest.CreatedAt); elapsed < PostCooldown {
				return &apperror.RateLimitError{RetryAfter: PostCooldown - elapsed}
			}
		}

		post = &models.Post{
			AuthorID:         identity.AccountID,
			AuthorUsername:   identity.Username,
			Content:          req.Content,
			ImageURL:         sql.NullString{String: req.ImageURL, Valid: req.ImageURL != ""},
			ModerationStatus: "PENDING",
			CreatedAt:        now,
		}

		return p.postRepo.Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	logger.Debugf("post %s created by %s", post.PostID, identity.Username)
	view := newPostView(*post, false)
	return &view, nil
}

func (p *postService) GetFeed(ctx context.Context, identity *models.Identity, page Page) ([]PostView, error) {
	limit, offset := page.normalize()

	posts, err := p.postRepo.Feed(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return p.views(ctx, identity, posts)
}

func (p *postService) GetUserPosts(ctx context.Context, identity *models.Identity, username string, page Page) ([]PostView, error) {
	if _, err := p.accountRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	}

	limit, offset := page.normalize()

	posts, err := p.postRepo.ByAuthorUsername(ctx, username, limit, offset)
	if err != nil {
		return nil, err
	}

	return p.views(ctx, identity, posts)
}

func (p *postService) views(ctx context.Context, identity *models.Identity, posts []models.Post) ([]PostView, error) {
	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.PostID)
	}

	liked, err := p.likeRepo.LikedPostIDs(ctx, identity.AccountID, ids)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, newPostView(post, liked[post.PostID]))
	}

	return views, nil
}
