package models

import "time"

// Like has at most one row per (user, post).
type Like struct {
	UserID    string    `json:"userId" gorm:"primaryKey;size:32"`
	PostID    string    `json:"postId" gorm:"primaryKey;size:32;index"`
	CreatedAt time.Time `json:"createdAt"`
}

type ToggleLikeRequest struct {
	ID string `json:"id" validate:"required"`
}

type ToggleLikeResponse struct {
	AddedLike bool `json:"addedLike"`
}
