package models

import "time"

// Follow is a directed edge follower -> followee, unique per ordered pair.
type Follow struct {
	FollowerID string    `json:"followerId" gorm:"primaryKey;size:32"`
	FolloweeID string    `json:"followeeId" gorm:"primaryKey;size:32;index"`
	CreatedAt  time.Time `json:"createdAt"`

	Follower User `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Followee User `json:"-" gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE"`
}
