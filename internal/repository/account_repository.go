package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plaintext/internal/apperror"
	"plaintext/internal/models"
)

const accountColumns = `account_id, username, email, password_hash, bio, role, status,
	last_accepted_policy_version, created_at, updated_at`

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts the account. The unique indexes on username and email are
// the final word on duplicates; a violation maps to the matching conflict.
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if account.AccountID == "" {
		account.AccountID = uuid.New().String()
	}
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = account.CreatedAt

	query := `
		INSERT INTO accounts (account_id, username, email, password_hash, bio, role, status,
			last_accepted_policy_version, created_at, updated_at)
		VALUES (:account_id, :username, :email, :password_hash, :bio, :role, :status,
			:last_accepted_policy_version, :created_at, :updated_at)
	`

	_, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, account)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			switch constraint {
			case "accounts_username_key":
				return apperror.ErrUsernameTaken
			case "accounts_email_key":
				return apperror.ErrEmailTaken
			}
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &account, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound("account", username)
		}
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}

	return &account, nil
}

func (r *accountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`

	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, query, username); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}

	return exists, nil
}

func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`

	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, query, email); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

// LockByID takes a row lock on the account until the surrounding
// transaction ends.
func (r *accountRepository) LockByID(ctx context.Context, accountID string) error {
	var id string

	query := `SELECT account_id FROM accounts WHERE account_id = $1 FOR UPDATE`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &id, query, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NewNotFound("account", accountID)
		}
		return fmt.Errorf("failed to lock account: %w", err)
	}

	return nil
}

func (r *accountRepository) UpdatePolicyVersion(ctx context.Context, accountID, version string) error {
	query := `
		UPDATE accounts
		SET last_accepted_policy_version = $1, updated_at = $2
		WHERE account_id = $3
	`

	result, err := executor(ctx, r.db).ExecContext(ctx, query, version, time.Now().UTC(), accountID)
	if err != nil {
		return fmt.Errorf("failed to update policy version: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return apperror.NewNotFound("account", accountID)
	}

	return nil
}
