package service

import (
	"context"
	"time"

	"plaintext/internal/config"
	"plaintext/internal/models"
	"plaintext/internal/repository"
)

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenService issues and checks bearer tokens.
type TokenService interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

type Service struct {
	Auth        AuthService
	Post        PostService
	Interaction InteractionService
	User        UserService
	Tables      TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, hasher PasswordHasher, tokens TokenService) *Service {
	return &Service{
		Auth:        NewAuthService(rep.Account, hasher, tokens, cfg.PolicyVersion),
		Post:        NewPostService(rep.Tx, rep.Account, rep.Post, rep.Like, time.Now),
		Interaction: NewInteractionService(rep.Tx, rep.Account, rep.Post, rep.Like, rep.Comment, rep.Follow, time.Now),
		User:        NewUserService(rep.Account, rep.Follow),
		Tables:      NewTablesService(rep.Tables),
	}
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the authenticated caller.
func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the caller stored by WithIdentity, if any.
func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*models.Identity)
	return identity, ok && identity != nil
}

// storedTime rounds t to what a TIMESTAMPTZ column keeps, so a value
// returned on write matches the one read back later.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
