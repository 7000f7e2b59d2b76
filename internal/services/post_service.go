package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/repositories"
	"github.com/anonto42/ui-crate/backend/internal/revalidate"
	"github.com/anonto42/ui-crate/backend/internal/session"
)

// MaxContentLength bounds post content in bytes.
const MaxContentLength = 10000

// PostService creates posts and toggles likes on them.
type PostService struct {
	posts    repositories.PostRepository
	likes    repositories.LikeRepository
	notifier revalidate.Notifier
}

func NewPostService(posts repositories.PostRepository, likes repositories.LikeRepository, notifier revalidate.Notifier) *PostService {
	return &PostService{posts: posts, likes: likes, notifier: notifier}
}

// Create stores a post authored by the session user and schedules the
// author's profile page for regeneration.
func (s *PostService) Create(ctx context.Context, content string) (*models.Post, error) {
	sess := session.FromContext(ctx)
	if sess == nil {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidContent
	}
	if len(content) > MaxContentLength {
		return nil, fmt.Errorf("%w: longer than %d bytes", ErrInvalidContent, MaxContentLength)
	}

	post := &models.Post{UserID: sess.UserID, Content: content}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.notifier.Notify(revalidate.NewProfileEvent(revalidate.ReasonPostCreated, sess.UserID, sess.UserID))
	return post, nil
}

// ToggleLike flips the session user's like on postID and reports whether
// the post is liked afterwards.
func (s *PostService) ToggleLike(ctx context.Context, postID string) (*models.ToggleLikeResponse, error) {
	sess := session.FromContext(ctx)
	if sess == nil {
		return nil, ErrUnauthorized
	}

	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	liked, err := s.likes.HasUserLikedPost(ctx, sess.UserID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load like: %w", err)
	}

	if liked {
		// zero rows deleted means a concurrent toggle removed it first
		if _, err := s.likes.DeleteLike(ctx, sess.UserID, postID); err != nil {
			return nil, fmt.Errorf("failed to remove like: %w", err)
		}
		return &models.ToggleLikeResponse{AddedLike: false}, nil
	}

	if err := s.likes.InsertLike(ctx, sess.UserID, postID); err != nil && !errors.Is(err, repositories.ErrConflict) {
		return nil, fmt.Errorf("failed to add like: %w", err)
	}
	return &models.ToggleLikeResponse{AddedLike: true}, nil
}
