package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"plaintext/internal/apperror"
	"plaintext/internal/logger"
	"plaintext/internal/models"
	"plaintext/internal/repository"
)

const policyContent = `By using plaintext you agree to post only content you have the right to share,
to not harass, threaten or impersonate other people, and to accept that posts, likes,
comments and follows are public. Accounts that break these terms may be suspended.`

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) error
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	AcceptPolicy(ctx context.Context, username string) error
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
	Policy() PolicyDocument
}

type authService struct {
	accountRepo   repository.AccountRepository
	hasher        PasswordHasher
	tokens        TokenService
	policyVersion string
	dummyHash     string
}

func NewAuthService(accountRepo repository.AccountRepository, hasher PasswordHasher, tokens TokenService, policyVersion string) AuthService {
	// Compared against on unknown usernames so that path costs one hash
	// check like a real one.
	dummyHash, err := hasher.Hash("plaintext-unknown-account")
	if err != nil {
		logger.Warningf("failed to prepare dummy password hash: %v", err)
	}

	return &authService{
		accountRepo:   accountRepo,
		hasher:        hasher,
		tokens:        tokens,
		policyVersion: policyVersion,
		dummyHash:     dummyHash,
	}
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) error {
	exists, err := s.accountRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if exists {
		return apperror.ErrUsernameTaken
	}

	exists, err = s.accountRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return apperror.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return &apperror.ValidationError{Message: "password must be at most 72 bytes"}
		}
		return err
	}

	account := &models.Account{
		Username:                  req.Username,
		Email:                     req.Email,
		PasswordHash:              hash,
		Bio:                       req.Bio,
		Role:                      models.RoleUser,
		Status:                    models.StatusActive,
		LastAcceptedPolicyVersion: sql.NullString{String: s.policyVersion, Valid: true},
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return err
	}

	logger.Infof("account %s signed up", account.Username)
	return nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		Token:                    token,
		Username:                 account.Username,
		Email:                    account.Email,
		Role:                     account.Role,
		RequiresPolicyAcceptance: account.LastAcceptedPolicyVersion.String != s.policyVersion,
	}, nil
}

func (s *authService) AcceptPolicy(ctx context.Context, username string) error {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.accountRepo.UpdatePolicyVersion(ctx, account.AccountID, s.policyVersion)
}

// Authenticate resolves a bearer token to the account it names. Token
// errors are returned unchanged so callers can tell their kind apart.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	username, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	return &models.Identity{
		AccountID: account.AccountID,
		Username:  account.Username,
		Email:     account.Email,
		Role:      account.Role,
	}, nil
}

func (s *authService) Policy() PolicyDocument {
	return PolicyDocument{Version: s.policyVersion, Content: policyContent}
}
