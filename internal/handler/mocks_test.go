package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"plaintext/internal/models"
	"plaintext/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req service.SignupRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) AcceptPolicy(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

func (m *MockAuthService) Policy() service.PolicyDocument {
	args := m.Called()
	return args.Get(0).(service.PolicyDocument)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, identity *models.Identity, req service.CreatePostRequest) (*service.PostView, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostView), args.Error(1)
}

func (m *MockPostService) GetFeed(ctx context.Context, identity *models.Identity, page service.Page) ([]service.PostView, error) {
	args := m.Called(ctx, identity, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PostView), args.Error(1)
}

func (m *MockPostService) GetUserPosts(ctx context.Context, identity *models.Identity, username string, page service.Page) ([]service.PostView, error) {
	args := m.Called(ctx, identity, username, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PostView), args.Error(1)
}

type MockInteractionService struct {
	mock.Mock
}

func (m *MockInteractionService) ToggleLike(ctx context.Context, username, postID string) (*service.LikeState, error) {
	args := m.Called(ctx, username, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LikeState), args.Error(1)
}

func (m *MockInteractionService) AddComment(ctx context.Context, username, postID, text string) (*service.CommentView, error) {
	args := m.Called(ctx, username, postID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CommentView), args.Error(1)
}

func (m *MockInteractionService) GetComments(ctx context.Context, postID string) ([]service.CommentView, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CommentView), args.Error(1)
}

func (m *MockInteractionService) FollowUser(ctx context.Context, followerUsername, followingUsername string) error {
	args := m.Called(ctx, followerUsername, followingUsername)
	return args.Error(0)
}

func (m *MockInteractionService) UnfollowUser(ctx context.Context, followerUsername, followingUsername string) error {
	args := m.Called(ctx, followerUsername, followingUsername)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, identity *models.Identity, username string) (*service.ProfileView, error) {
	args := m.Called(ctx, identity, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProfileView), args.Error(1)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) GetCountTablesDB(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
