package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"plaintext/internal/models"
)

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	LockByID(ctx context.Context, accountID string) error
	UpdatePolicyVersion(ctx context.Context, accountID, version string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	LockByID(ctx context.Context, postID string) (*models.Post, error)
	LatestByAuthor(ctx context.Context, authorID string) (*models.Post, error)
	AdjustLikesCount(ctx context.Context, postID string, delta int) (int, error)
	IncrementCommentsCount(ctx context.Context, postID string) (int, error)
	Feed(ctx context.Context, limit, offset int) ([]models.Post, error)
	ByAuthorUsername(ctx context.Context, username string, limit, offset int) ([]models.Post, error)
}

type LikeRepository interface {
	Exists(ctx context.Context, accountID, postID string) (bool, error)
	Insert(ctx context.Context, accountID, postID string, at time.Time) error
	Delete(ctx context.Context, accountID, postID string) (bool, error)
	LikedPostIDs(ctx context.Context, accountID string, postIDs []string) (map[string]bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
}

type FollowRepository interface {
	Insert(ctx context.Context, followerID, followingID string, at time.Time) (bool, error)
	Delete(ctx context.Context, followerID, followingID string) (bool, error)
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	CountFollowers(ctx context.Context, accountID string) (int, error)
	CountFollowing(ctx context.Context, accountID string) (int, error)
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	Tx      TxManager
	Account AccountRepository
	Post    PostRepository
	Like    LikeRepository
	Comment CommentRepository
	Follow  FollowRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Tx:      NewTxManager(db),
		Account: NewAccountRepository(db),
		Post:    NewPostRepository(db),
		Like:    NewLikeRepository(db),
		Comment: NewCommentRepository(db),
		Follow:  NewFollowRepository(db),
		Tables:  NewTablesRepository(db),
	}
}
