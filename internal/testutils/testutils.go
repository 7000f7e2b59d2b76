package testutils

import (
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/repositories"
	"github.com/anonto42/ui-crate/backend/internal/revalidate"
	"github.com/anonto42/ui-crate/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func silentGormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormlogger.New(log.New(io.Discard, "", log.LstdFlags), gormlogger.Config{LogLevel: gormlogger.Silent}),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Millisecond)
		},
	}
}

// SetupTestDB opens a migrated in-memory SQLite database private to t.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Silence()

	db, err := gorm.Open(sqlite.Open(":memory:"), silentGormConfig())
	if err != nil {
		t.Fatalf("failed to open sqlite: %s", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %s", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	if err := repositories.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %s", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// SetupMockDB wraps a sqlmock connection in the postgres dialector.
func SetupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	logger.Silence()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %s", err)
	}
	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, silentGormConfig())
	if err != nil {
		t.Fatalf("failed to open gorm over sqlmock: %s", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return db, mock
}

// SetupTestRouter returns a bare Echo instance.
func SetupTestRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(io.Discard)
	return e
}

// CreateUser inserts a user with the given id.
func CreateUser(t *testing.T, db *gorm.DB, id, name string) *models.User {
	t.Helper()
	user := &models.User{ID: id, Name: name, Image: "https://img.example/" + id + ".png"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %s", id, err)
	}
	return user
}

// CreatePost inserts a post with an explicit id and creation time.
func CreatePost(t *testing.T, db *gorm.DB, id, userID string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{ID: id, UserID: userID, Content: "<div>" + id + "</div>", CreatedAt: createdAt.UTC()}
	if err := db.Omit("Author", "Likes").Create(post).Error; err != nil {
		t.Fatalf("failed to create post %s: %s", id, err)
	}
	return post
}

// Follow inserts the edge follower -> followee.
func Follow(t *testing.T, db *gorm.DB, followerID, followeeID string) {
	t.Helper()
	edge := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := db.Omit("Follower", "Followee").Create(edge).Error; err != nil {
		t.Fatalf("failed to follow %s -> %s: %s", followerID, followeeID, err)
	}
}

// Like inserts a like of postID by userID.
func Like(t *testing.T, db *gorm.DB, userID, postID string) {
	t.Helper()
	if err := db.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
		t.Fatalf("failed to like %s by %s: %s", postID, userID, err)
	}
}

// RecordingNotifier keeps every notified event.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []revalidate.Event
}

func (n *RecordingNotifier) Notify(ev revalidate.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *RecordingNotifier) Events() []revalidate.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]revalidate.Event(nil), n.events...)
}

