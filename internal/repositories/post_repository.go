package repositories

import (
	"context"
	"time"

	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/nrednav/cuid2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows a post scan. Empty fields do not filter.
type PostFilter struct {
	AuthorID string
	// FollowedBy keeps posts whose author is followed by this user.
	FollowedBy string
}

// PostQuery selects up to Limit posts strictly after Cursor in
// (created_at DESC, id DESC) order.
type PostQuery struct {
	Filter PostFilter
	Cursor *models.Cursor
	Limit  int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	FindPosts(ctx context.Context, q PostQuery) ([]models.Post, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost assigns id and creation time and inserts the post.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = cuid2.Generate()
	post.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// GetPostByID returns gorm.ErrRecordNotFound for unknown ids.
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindPosts runs the keyset scan and preloads each post's author.
func (r *PostgresPostRepository) FindPosts(ctx context.Context, q PostQuery) ([]models.Post, error) {
	tx := r.db.WithContext(ctx).Model(&models.Post{}).Preload("Author")

	if q.Filter.AuthorID != "" {
		tx = tx.Where("posts.user_id = ?", q.Filter.AuthorID)
	}
	if q.Filter.FollowedBy != "" {
		followees := r.db.WithContext(ctx).Model(&models.Follow{}).
			Select("followee_id").
			Where("follower_id = ?", q.Filter.FollowedBy)
		tx = tx.Where("posts.user_id IN (?)", followees)
	}
	if q.Cursor != nil {
		createdAt := q.Cursor.CreatedAt.UTC()
		tx = tx.Where("(posts.created_at < ? OR (posts.created_at = ? AND posts.id < ?))",
			createdAt, createdAt, q.Cursor.ID)
	}

	var posts []models.Post
	err := tx.Order("posts.created_at DESC").
		Order("posts.id DESC").
		Limit(q.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// CountByUserID counts the posts authored by userID.
func (r *PostgresPostRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
