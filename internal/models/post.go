package models

import "time"

// Post is immutable once created.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32;index:idx_posts_feed,priority:2,sort:desc"`
	UserID    string    `json:"userId" gorm:"size:32;not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;index:idx_posts_feed,priority:1,sort:desc"`

	Author User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Likes  []Like `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// Cursor marks a position in the (createdAt DESC, id DESC) post order.
type Cursor struct {
	ID        string    `json:"id" validate:"required"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
}

// FeedPost is a post enriched for a particular viewer.
type FeedPost struct {
	ID          string      `json:"id"`
	Content     string      `json:"content"`
	CreatedAt   time.Time   `json:"createdAt"`
	LikeCount   int64       `json:"likeCount"`
	LikedByUser bool        `json:"likedByUser"`
	Author      UserCompact `json:"author"`
}

// FeedPage is one page of a keyset traversal. NextCursor is nil at the end.
type FeedPage struct {
	Posts      []FeedPost `json:"posts"`
	NextCursor *Cursor    `json:"nextCursor,omitempty"`
}

type InfiniteFeedRequest struct {
	OnlyFollowing bool    `json:"onlyFollowing"`
	Limit         int     `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
	Cursor        *Cursor `json:"cursor,omitempty"`
}

type InfiniteProfileFeedRequest struct {
	UserID string  `json:"userId" validate:"required"`
	Limit  int     `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
	Cursor *Cursor `json:"cursor,omitempty"`
}

type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}
