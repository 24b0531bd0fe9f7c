package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"plaintext/internal/apperror"
	"plaintext/internal/logger"
	"plaintext/internal/models"
	"plaintext/internal/repository"
)

// InteractionService keeps likes, comments and follows together with the
// counters derived from them.
type InteractionService interface {
	ToggleLike(ctx context.Context, username, postID string) (*LikeState, error)
	AddComment(ctx context.Context, username, postID, text string) (*CommentView, error)
	GetComments(ctx context.Context, postID string) ([]CommentView, error)
	FollowUser(ctx context.Context, followerUsername, followingUsername string) error
	UnfollowUser(ctx context.Context, followerUsername, followingUsername string) error
}

type interactionService struct {
	tx          repository.TxManager
	accountRepo repository.AccountRepository
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	now         func() time.Time
}

func NewInteractionService(
	tx repository.TxManager,
	accountRepo repository.AccountRepository,
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	now func() time.Time,
) InteractionService {
	return &interactionService{
		tx:          tx,
		accountRepo: accountRepo,
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		now:         now,
	}
}

// ToggleLike flips the caller's like on a post. The post row lock is held
// from the existence check to the counter update, so concurrent toggles on
// one post are applied one after another.
func (s *interactionService) ToggleLike(ctx context.Context, username, postID string) (*LikeState, error) {
	if err := checkPostID(postID); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	state := &LikeState{}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.postRepo.LockByID(ctx, postID); err != nil {
			return err
		}

		liked, err := s.likeRepo.Exists(ctx, account.AccountID, postID)
		if err != nil {
			return err
		}

		delta := 1
		if liked {
			if _, err := s.likeRepo.Delete(ctx, account.AccountID, postID); err != nil {
				return err
			}
			delta = -1
		} else if err := s.likeRepo.Insert(ctx, account.AccountID, postID, storedTime(s.now())); err != nil {
			return err
		}

		count, err := s.postRepo.AdjustLikesCount(ctx, postID, delta)
		if err != nil {
			return err
		}

		state.Liked = !liked
		state.LikesCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	return state, nil
}

func (s *interactionService) AddComment(ctx context.Context, username, postID, text string) (*CommentView, error) {
	if err := checkPostID(postID); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:         postID,
		AccountID:      account.AccountID,
		AuthorUsername: account.Username,
		Content:        text,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.postRepo.LockByID(ctx, postID); err != nil {
			return err
		}

		comment.CreatedAt = storedTime(s.now())
		if err := s.commentRepo.Create(ctx, comment); err != nil {
			return err
		}

		_, err := s.postRepo.IncrementCommentsCount(ctx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	view := newCommentView(*comment)
	return &view, nil
}

func (s *interactionService) GetComments(ctx context.Context, postID string) ([]CommentView, error) {
	if err := checkPostID(postID); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, newCommentView(comment))
	}

	return views, nil
}

func (s *interactionService) FollowUser(ctx context.Context, followerUsername, followingUsername string) error {
	if followerUsername == followingUsername {
		return apperror.ErrSelfFollow
	}

	follower, following, err := s.resolvePair(ctx, followerUsername, followingUsername)
	if err != nil {
		return err
	}

	created, err := s.followRepo.Insert(ctx, follower.AccountID, following.AccountID, storedTime(s.now()))
	if err != nil {
		return err
	}
	if created {
		logger.Debugf("%s now follows %s", follower.Username, following.Username)
	}

	return nil
}

func (s *interactionService) UnfollowUser(ctx context.Context, followerUsername, followingUsername string) error {
	follower, following, err := s.resolvePair(ctx, followerUsername, followingUsername)
	if err != nil {
		return err
	}

	_, err = s.followRepo.Delete(ctx, follower.AccountID, following.AccountID)
	return err
}

func (s *interactionService) resolvePair(ctx context.Context, followerUsername, followingUsername string) (*models.Account, *models.Account, error) {
	follower, err := s.accountRepo.GetByUsername(ctx, followerUsername)
	if err != nil {
		return nil, nil, err
	}

	following, err := s.accountRepo.GetByUsername(ctx, followingUsername)
	if err != nil {
		return nil, nil, err
	}

	return follower, following, nil
}

// checkPostID rejects ids that cannot name a stored post before they reach
// the uuid column.
func checkPostID(postID string) error {
	if _, err := uuid.Parse(postID); err != nil {
		return apperror.NewNotFound("post", postID)
	}
	return nil
}
