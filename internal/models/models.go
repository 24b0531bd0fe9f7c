package models

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Status string

const (
	StatusActive Status = "ACTIVE"
)

// RouteClass is the access level a route demands.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteAuthenticated
	RouteAdmin
)

// Permits reports whether a caller holding r may use routes of class c.
func (r Role) Permits(c RouteClass) bool {
	switch c {
	case RoutePublic, RouteAuthenticated:
		return r == RoleUser || r == RoleAdmin
	case RouteAdmin:
		return r == RoleAdmin
	default:
		return false
	}
}

type Account struct {
	AccountID                 string         `json:"accountId" db:"account_id"`
	Username                  string         `json:"username" db:"username"`
	Email                     string         `json:"email" db:"email"`
	PasswordHash              string         `json:"-" db:"password_hash"`
	Bio                       string         `json:"bio" db:"bio"`
	Role                      Role           `json:"role" db:"role"`
	Status                    Status         `json:"status" db:"status"`
	LastAcceptedPolicyVersion sql.NullString `json:"-" db:"last_accepted_policy_version"`
	CreatedAt                 time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt                 time.Time      `json:"updatedAt" db:"updated_at"`
}

type Post struct {
	PostID           string         `json:"postId" db:"post_id"`
	AuthorID         string         `json:"authorId" db:"author_id"`
	AuthorUsername   string         `json:"username" db:"author_username"`
	Content          string         `json:"content" db:"content"`
	ImageURL         sql.NullString `json:"-" db:"image_url"`
	LikesCount       int            `json:"likesCount" db:"likes_count"`
	CommentsCount    int            `json:"commentsCount" db:"comments_count"`
	ModerationScore  int            `json:"moderationScore" db:"moderation_score"`
	ModerationStatus string         `json:"moderationStatus" db:"moderation_status"`
	CreatedAt        time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time      `json:"updatedAt" db:"updated_at"`
}

type Comment struct {
	CommentID      string    `db:"comment_id"`
	Seq            int64     `db:"seq"`
	PostID         string    `db:"post_id"`
	AccountID      string    `db:"account_id"`
	AuthorUsername string    `db:"author_username"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
}

// Identity is the caller established from a bearer token for one request.
type Identity struct {
	AccountID string `json:"accountId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}
