package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is created by the authentication collaborator. Follow edges live in
// the follows table.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty" gorm:"index"`
	Image       string    `json:"image"`
	FirebaseUID *string   `json:"-" gorm:"uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

// UserCompact is the author block embedded in feed posts.
type UserCompact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, Image: u.Image}
}

// ProfileSummary is the public view of a profile.
type ProfileSummary struct {
	Name           string `json:"name"`
	Image          string `json:"image"`
	FollowersCount int64  `json:"followersCount"`
	FollowsCount   int64  `json:"followsCount"`
	PostsCount     int64  `json:"postsCount"`
	IsFollowing    bool   `json:"isFollowing"`
}

type GetProfileRequest struct {
	ID string `json:"id" validate:"required"`
}

type ToggleFollowRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type ToggleFollowResponse struct {
	AddedFollow bool `json:"addedFollow"`
}

// JwtCustomClaims are the claims carried by locally issued tokens.
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
