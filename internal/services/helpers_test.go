package services

import (
	"context"
	"time"

	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/repositories"
	"github.com/anonto42/ui-crate/backend/internal/session"
)

var base = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func at(seconds int) time.Time {
	return base.Add(time.Duration(seconds) * time.Second)
}

func asViewer(userID string) context.Context {
	return session.WithSession(context.Background(), &session.Session{UserID: userID})
}

func anonymous() context.Context {
	return context.Background()
}

func postIDs(page *models.FeedPage) []string {
	ids := make([]string, len(page.Posts))
	for i, p := range page.Posts {
		ids[i] = p.ID
	}
	return ids
}

// stubPostRepo satisfies PostRepository for tests that only need post
// existence checks.
type stubPostRepo struct {
	repositories.PostRepository
	err error
}

func (s *stubPostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Post{ID: id}, nil
}

// racingLikeRepo simulates a concurrent caller that changes the row
// between the existence check and the write.
type racingLikeRepo struct {
	repositories.LikeRepository
	present   bool
	insertErr error
	deleted   bool
	deleteErr error
	checkErr  error
}

func (r *racingLikeRepo) HasUserLikedPost(ctx context.Context, userID, postID string) (bool, error) {
	return r.present, r.checkErr
}

func (r *racingLikeRepo) InsertLike(ctx context.Context, userID, postID string) error {
	return r.insertErr
}

func (r *racingLikeRepo) DeleteLike(ctx context.Context, userID, postID string) (bool, error) {
	return r.deleted, r.deleteErr
}

type racingFollowRepo struct {
	repositories.FollowRepository
	present   bool
	insertErr error
}

func (r *racingFollowRepo) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	return r.present, nil
}

func (r *racingFollowRepo) InsertFollow(ctx context.Context, followerID, followeeID string) error {
	return r.insertErr
}

func (r *racingFollowRepo) DeleteFollow(ctx context.Context, followerID, followeeID string) (bool, error) {
	return false, nil
}

type stubUserRepo struct {
	repositories.UserRepository
}

func (s *stubUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return &models.User{ID: id, Name: id}, nil
}
