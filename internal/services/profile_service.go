package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/ui-crate/backend/internal/cache"
	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/repositories"
	"github.com/anonto42/ui-crate/backend/internal/revalidate"
	"github.com/anonto42/ui-crate/backend/internal/session"
	"github.com/anonto42/ui-crate/backend/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ProfileService reads profile summaries and toggles follow edges.
type ProfileService struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	follows  repositories.FollowRepository
	cache    cache.ProfileCache
	notifier revalidate.Notifier
	log      *logrus.Entry
}

// NewProfileService wires the service. profileCache may be nil.
func NewProfileService(
	users repositories.UserRepository,
	posts repositories.PostRepository,
	follows repositories.FollowRepository,
	profileCache cache.ProfileCache,
	notifier revalidate.Notifier,
) *ProfileService {
	return &ProfileService{
		users:    users,
		posts:    posts,
		follows:  follows,
		cache:    profileCache,
		notifier: notifier,
		log:      logger.WithComponent("profile"),
	}
}

// GetByID returns the summary of profile id; found is false when no such
// user exists. Counts are always read from the store; only the name and
// image may come from the cache. IsFollowing is evaluated for the viewer on
// ctx.
func (s *ProfileService) GetByID(ctx context.Context, id string) (*models.ProfileSummary, bool, error) {
	profile, err := s.identity(ctx, id)
	if err != nil || profile == nil {
		return nil, false, err
	}

	summary := &models.ProfileSummary{Name: profile.Name, Image: profile.Image}
	if summary.FollowersCount, err = s.follows.GetFollowersCount(ctx, id); err != nil {
		return nil, false, fmt.Errorf("failed to count followers: %w", err)
	}
	if summary.FollowsCount, err = s.follows.GetFollowingCount(ctx, id); err != nil {
		return nil, false, fmt.Errorf("failed to count follows: %w", err)
	}
	if summary.PostsCount, err = s.posts.CountByUserID(ctx, id); err != nil {
		return nil, false, fmt.Errorf("failed to count posts: %w", err)
	}

	if viewer := session.ViewerID(ctx); viewer != "" {
		summary.IsFollowing, err = s.follows.IsFollowing(ctx, viewer, id)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load follow state: %w", err)
		}
	}
	return summary, true, nil
}

// identity returns the profile's name and image, or nil for unknown ids.
func (s *ProfileService) identity(ctx context.Context, id string) (*models.UserCompact, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.WithError(err).WithField("profile_id", id).Warn("profile cache read failed")
		}
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	profile := user.ToCompact()
	if s.cache != nil {
		if err := s.cache.Set(ctx, &profile); err != nil {
			s.log.WithError(err).WithField("profile_id", id).Warn("profile cache write failed")
		}
	}
	return &profile, nil
}

// ToggleFollow flips the edge session user -> targetID. AddedFollow is true
// when the session user follows targetID afterwards.
func (s *ProfileService) ToggleFollow(ctx context.Context, targetID string) (*models.ToggleFollowResponse, error) {
	sess := session.FromContext(ctx)
	if sess == nil {
		return nil, ErrUnauthorized
	}
	if targetID == sess.UserID {
		return nil, ErrSelfFollow
	}

	if _, err := s.users.GetUserByID(ctx, targetID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	following, err := s.follows.IsFollowing(ctx, sess.UserID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load follow state: %w", err)
	}

	var added bool
	if following {
		if _, err := s.follows.DeleteFollow(ctx, sess.UserID, targetID); err != nil {
			return nil, fmt.Errorf("failed to remove follow: %w", err)
		}
	} else {
		err := s.follows.InsertFollow(ctx, sess.UserID, targetID)
		if err != nil && !errors.Is(err, repositories.ErrConflict) {
			return nil, fmt.Errorf("failed to add follow: %w", err)
		}
		added = true
	}

	s.notifier.Notify(revalidate.NewProfileEvent(revalidate.ReasonFollowToggled, sess.UserID, targetID, sess.UserID))
	return &models.ToggleFollowResponse{AddedFollow: added}, nil
}
