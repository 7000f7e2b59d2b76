package services

import (
	"context"

	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/repositories"
	"github.com/anonto42/ui-crate/backend/internal/session"
)

// FeedService serves the global, following-only and profile feeds.
type FeedService struct {
	paginator *Paginator
}

func NewFeedService(paginator *Paginator) *FeedService {
	return &FeedService{paginator: paginator}
}

// InfiniteFeed returns the global feed, or the feed of authors the viewer
// follows when OnlyFollowing is set. OnlyFollowing without a viewer yields an
// empty page.
func (s *FeedService) InfiniteFeed(ctx context.Context, req models.InfiniteFeedRequest) (*models.FeedPage, error) {
	var filter repositories.PostFilter
	if req.OnlyFollowing {
		viewer := session.ViewerID(ctx)
		if viewer == "" {
			return emptyPage(), nil
		}
		filter.FollowedBy = viewer
	}
	return s.paginator.Page(ctx, filter, req.Limit, req.Cursor)
}

// InfiniteProfileFeed returns the posts authored by req.UserID.
func (s *FeedService) InfiniteProfileFeed(ctx context.Context, req models.InfiniteProfileFeedRequest) (*models.FeedPage, error) {
	filter := repositories.PostFilter{AuthorID: req.UserID}
	return s.paginator.Page(ctx, filter, req.Limit, req.Cursor)
}
