package service

import (
	"context"

	"plaintext/internal/models"
	"plaintext/internal/repository"
)

type UserService interface {
	GetProfile(ctx context.Context, identity *models.Identity, username string) (*ProfileView, error)
}

type userService struct {
	accountRepo repository.AccountRepository
	followRepo  repository.FollowRepository
}

func NewUserService(accountRepo repository.AccountRepository, followRepo repository.FollowRepository) UserService {
	return &userService{
		accountRepo: accountRepo,
		followRepo:  followRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, identity *models.Identity, username string) (*ProfileView, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, account.AccountID)
	if err != nil {
		return nil, err
	}

	following, err := s.followRepo.CountFollowing(ctx, account.AccountID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if identity != nil && identity.AccountID != account.AccountID {
		isFollowing, err = s.followRepo.Exists(ctx, identity.AccountID, account.AccountID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileView{
		Username:       account.Username,
		Bio:            account.Bio,
		Role:           string(account.Role),
		FollowersCount: followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
		CreatedAt:      account.CreatedAt,
	}, nil
}
