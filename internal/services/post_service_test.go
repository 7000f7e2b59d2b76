package services

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/repositories"
	"github.com/anonto42/ui-crate/backend/internal/revalidate"
	"github.com/anonto42/ui-crate/backend/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostService(db *gorm.DB) (*PostService, *testutils.RecordingNotifier) {
	notifier := &testutils.RecordingNotifier{}
	svc := NewPostService(
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresLikeRepository(db),
		notifier,
	)
	return svc, notifier
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreatePostRequiresSession(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc, notifier := newPostService(db)

	_, err := svc.Create(anonymous(), "<button>hi</button>")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int64(0), countRows(t, db, &models.Post{}))
	assert.Empty(t, notifier.Events())
}

func TestCreatePostRejectsInvalidContent(t *testing.T) {
	db := testutils.SetupTestDB(t)
	testutils.CreateUser(t, db, "alice", "Alice")
	svc, _ := newPostService(db)

	_, err := svc.Create(asViewer("alice"), "  \n\t")
	assert.ErrorIs(t, err, ErrInvalidContent)

	_, err = svc.Create(asViewer("alice"), strings.Repeat("x", MaxContentLength+1))
	assert.ErrorIs(t, err, ErrInvalidContent)

	assert.Equal(t, int64(0), countRows(t, db, &models.Post{}))
}

func TestCreatePost(t *testing.T) {
	db := testutils.SetupTestDB(t)
	testutils.CreateUser(t, db, "alice", "Alice")
	svc, notifier := newPostService(db)

	post, err := svc.Create(asViewer("alice"), "<button class=\"btn\">hi</button>")

	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "alice", post.UserID)
	assert.False(t, post.CreatedAt.IsZero())

	var stored models.Post
	require.NoError(t, db.Where("id = ?", post.ID).First(&stored).Error)
	assert.Equal(t, post.Content, stored.Content)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, revalidate.ReasonPostCreated, events[0].Reason)
	assert.Equal(t, []string{"/profiles/alice"}, events[0].Paths)
}

func TestToggleLikeFlips(t *testing.T) {
	db := testutils.SetupTestDB(t)
	testutils.CreateUser(t, db, "alice", "Alice")
	testutils.CreatePost(t, db, "p1", "alice", at(1))
	svc, notifier := newPostService(db)
	ctx := asViewer("alice")

	for i, want := range []bool{true, false, true} {
		res, err := svc.ToggleLike(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, want, res.AddedLike, "call %d", i+1)
	}
	assert.Equal(t, int64(1), countRows(t, db, &models.Like{}))
	assert.Empty(t, notifier.Events())
}

func TestToggleLikeIsPerUser(t *testing.T) {
	db := testutils.SetupTestDB(t)
	testutils.CreateUser(t, db, "alice", "Alice")
	testutils.CreateUser(t, db, "bob", "Bob")
	testutils.CreatePost(t, db, "p1", "alice", at(1))
	svc, _ := newPostService(db)

	res, err := svc.ToggleLike(asViewer("alice"), "p1")
	require.NoError(t, err)
	assert.True(t, res.AddedLike)

	res, err = svc.ToggleLike(asViewer("bob"), "p1")
	require.NoError(t, err)
	assert.True(t, res.AddedLike)

	assert.Equal(t, int64(2), countRows(t, db, &models.Like{}))
}

func TestToggleLikeErrors(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc, _ := newPostService(db)

	_, err := svc.ToggleLike(anonymous(), "p1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.ToggleLike(asViewer("alice"), "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestToggleLikeConcurrentInsertIsIdempotent(t *testing.T) {
	likes := &racingLikeRepo{present: false, insertErr: repositories.ErrConflict}
	svc := NewPostService(&stubPostRepo{}, likes, &testutils.RecordingNotifier{})

	res, err := svc.ToggleLike(asViewer("alice"), "p1")

	require.NoError(t, err)
	assert.True(t, res.AddedLike)
}

func TestToggleLikeConcurrentDeleteIsIdempotent(t *testing.T) {
	likes := &racingLikeRepo{present: true, deleted: false}
	svc := NewPostService(&stubPostRepo{}, likes, &testutils.RecordingNotifier{})

	res, err := svc.ToggleLike(asViewer("alice"), "p1")

	require.NoError(t, err)
	assert.False(t, res.AddedLike)
}

func TestToggleLikeStoreFailurePropagates(t *testing.T) {
	down := errors.New("connection reset")

	svc := NewPostService(&stubPostRepo{}, &racingLikeRepo{insertErr: down}, &testutils.RecordingNotifier{})
	_, err := svc.ToggleLike(asViewer("alice"), "p1")
	assert.ErrorIs(t, err, down)

	svc = NewPostService(&stubPostRepo{err: down}, &racingLikeRepo{}, &testutils.RecordingNotifier{})
	_, err = svc.ToggleLike(asViewer("alice"), "p1")
	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrPostNotFound)
}

func TestToggleLikeParallelCallsNeverFail(t *testing.T) {
	db := testutils.SetupTestDB(t)
	testutils.CreateUser(t, db, "alice", "Alice")
	testutils.CreatePost(t, db, "p1", "alice", at(1))
	svc, _ := newPostService(db)
	ctx := asViewer("alice")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ToggleLike(ctx, "p1")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.LessOrEqual(t, countRows(t, db, &models.Like{}), int64(1))
}
