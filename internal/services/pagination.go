package services

import (
	"context"
	"fmt"

	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/repositories"
	"github.com/anonto42/ui-crate/backend/internal/session"
)

// DefaultPageSize is the page size used when the caller gives no limit.
const DefaultPageSize = 10

// Paginator runs keyset scans over posts in (createdAt DESC, id DESC) order
// and enriches each page for the viewer found on the context.
//
// Pages are not snapshots: a post inserted between two page fetches with a
// timestamp older than the cursor is never returned by that traversal.
type Paginator struct {
	posts repositories.PostRepository
	likes repositories.LikeRepository
}

func NewPaginator(posts repositories.PostRepository, likes repositories.LikeRepository) *Paginator {
	return &Paginator{posts: posts, likes: likes}
}

// Page returns up to limit posts strictly after cursor. NextCursor is set to
// the last returned post only when more posts follow it.
func (p *Paginator) Page(ctx context.Context, filter repositories.PostFilter, limit int, cursor *models.Cursor) (*models.FeedPage, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	posts, err := p.posts.FindPosts(ctx, repositories.PostQuery{
		Filter: filter,
		Cursor: cursor,
		Limit:  limit + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	page := emptyPage()
	if len(posts) > limit {
		posts = posts[:limit]
		last := posts[limit-1]
		page.NextCursor = &models.Cursor{ID: last.ID, CreatedAt: last.CreatedAt}
	}
	if len(posts) == 0 {
		return page, nil
	}

	ids := make([]string, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}

	counts, err := p.likes.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	var liked map[string]bool
	if viewer := session.ViewerID(ctx); viewer != "" {
		liked, err = p.likes.LikedPostIDs(ctx, viewer, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load viewer likes: %w", err)
		}
	}

	for _, post := range posts {
		page.Posts = append(page.Posts, models.FeedPost{
			ID:          post.ID,
			Content:     post.Content,
			CreatedAt:   post.CreatedAt,
			LikeCount:   counts[post.ID],
			LikedByUser: liked[post.ID],
			Author:      post.Author.ToCompact(),
		})
	}
	return page, nil
}

func emptyPage() *models.FeedPage {
	return &models.FeedPage{Posts: []models.FeedPost{}}
}
