package service

import (
	"time"

	"plaintext/internal/models"
)

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,max=255,email"`
	Password string `json:"password" validate:"required,min=6,max=72,maxbytes=72"`
	Bio      string `json:"bio" validate:"max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token                    string      `json:"token"`
	Username                 string      `json:"username"`
	Email                    string      `json:"email"`
	Role                     models.Role `json:"role"`
	RequiresPolicyAcceptance bool        `json:"requiresTncAcceptance"`
}

type PolicyDocument struct {
	Version string `json:"version"`
	Content string `json:"content"`
}

type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=280"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=140"`
}

type PostView struct {
	PostID           string    `json:"postId"`
	Username         string    `json:"username"`
	Content          string    `json:"content"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	LikesCount       int       `json:"likesCount"`
	CommentsCount    int       `json:"commentsCount"`
	IsLiked          bool      `json:"isLiked"`
	ModerationScore  int       `json:"moderationScore"`
	ModerationStatus string    `json:"moderationStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}

type LikeState struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

type CommentView struct {
	CommentID string    `json:"commentId"`
	Text      string    `json:"text"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProfileView struct {
	Username       string    `json:"username"`
	Bio            string    `json:"bio"`
	Role           string    `json:"role"`
	FollowersCount int       `json:"followersCount"`
	FollowingCount int       `json:"followingCount"`
	IsFollowing    bool      `json:"isFollowing"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Page is a 1-based page request. Zero values fall back to the defaults.
type Page struct {
	Page  int
	Limit int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	// MaxPage keeps page*limit far from integer overflow.
	MaxPage = 1 << 20
)

func (p Page) normalize() (limit, offset int) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	limit = p.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return limit, (page - 1) * limit
}

func newPostView(post models.Post, liked bool) PostView {
	return PostView{
		PostID:           post.PostID,
		Username:         post.AuthorUsername,
		Content:          post.Content,
		ImageURL:         post.ImageURL.String,
		LikesCount:       post.LikesCount,
		CommentsCount:    post.CommentsCount,
		IsLiked:          liked,
		ModerationScore:  post.ModerationScore,
		ModerationStatus: post.ModerationStatus,
		CreatedAt:        post.CreatedAt,
	}
}

func newCommentView(comment models.Comment) CommentView {
	return CommentView{
		CommentID: comment.CommentID,
		Text:      comment.Content,
		Username:  comment.AuthorUsername,
		CreatedAt: comment.CreatedAt,
	}
}
