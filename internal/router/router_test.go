package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/ui-crate/backend/internal/middleware"
	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/testutils"
	"github.com/anonto42/ui-crate/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "router-test-secret"

type testServer struct {
	e        *echo.Echo
	db       *gorm.DB
	notifier *testutils.RecordingNotifier
	authn    *middleware.JWTAuthenticator
}

func newTestServer(t *testing.T) *testServer {
	db := testutils.SetupTestDB(t)
	e := testutils.SetupTestRouter()
	e.Validator = validators.NewValidator()
	s := &testServer{
		e:        e,
		db:       db,
		notifier: &testutils.RecordingNotifier{},
		authn:    middleware.NewJWTAuthenticator(testSecret),
	}
	SetupRoutes(e, Dependencies{Postgres: db, Authenticator: s.authn, Notifier: s.notifier})
	return s
}

func (s *testServer) call(t *testing.T, method, procedure, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	target := "/api/rpc/" + procedure
	var req *http.Request
	if method == http.MethodGet {
		if body != "" {
			target += "?input=" + url.QueryEscape(body)
		}
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != "" {
		token, err := s.authn.SignToken(models.JwtCustomClaims{UserID: userID})
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInfiniteFeedCursorRoundTrip(t *testing.T) {
	s := newTestServer(t)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	testutils.CreateUser(t, s.db, "alice", "Alice")
	testutils.CreatePost(t, s.db, "p1", "alice", base.Add(1*time.Second))
	testutils.CreatePost(t, s.db, "p2", "alice", base.Add(2*time.Second))
	testutils.CreatePost(t, s.db, "p3", "alice", base.Add(3*time.Second))

	rec := s.call(t, http.MethodPost, "post.infiniteFeed", "", `{"limit":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var page models.FeedPage
	decode(t, rec, &page)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "p3", page.Posts[0].ID)
	assert.Equal(t, "p2", page.Posts[1].ID)
	assert.Equal(t, "Alice", page.Posts[0].Author.Name)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "p2", page.NextCursor.ID)

	cursor, err := json.Marshal(map[string]interface{}{"limit": 2, "cursor": page.NextCursor})
	require.NoError(t, err)
	rec = s.call(t, http.MethodGet, "post.infiniteFeed", "", string(cursor))
	require.Equal(t, http.StatusOK, rec.Code)
	var next map[string]interface{}
	decode(t, rec, &next)
	assert.Len(t, next["posts"], 1)
	_, hasCursor := next["nextCursor"]
	assert.False(t, hasCursor)
}

func TestInfiniteFeedEmptyBody(t *testing.T) {
	s := newTestServer(t)

	rec := s.call(t, http.MethodPost, "post.infiniteFeed", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"posts":[]}`, rec.Body.String())
}

func TestInfiniteFeedRejectsBadLimit(t *testing.T) {
	s := newTestServer(t)

	rec := s.call(t, http.MethodPost, "post.infiniteFeed", "", `{"limit":500}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.call(t, http.MethodGet, "post.infiniteFeed", "", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInfiniteProfileFeedRequiresUserID(t *testing.T) {
	s := newTestServer(t)

	rec := s.call(t, http.MethodPost, "post.infiniteProfileFeed", "", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePostUnauthenticated(t *testing.T) {
	s := newTestServer(t)

	rec := s.call(t, http.MethodPost, "post.create", "", `{"content":"<p>hi</p>"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var n int64
	require.NoError(t, s.db.Model(&models.Post{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
	assert.Empty(t, s.notifier.Events())
}

func TestCreatePostAndToggleLike(t *testing.T) {
	s := newTestServer(t)
	testutils.CreateUser(t, s.db, "alice", "Alice")

	rec := s.call(t, http.MethodPost, "post.create", "alice", `{"content":"<button>ok</button>"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var post models.Post
	decode(t, rec, &post)
	assert.Equal(t, "alice", post.UserID)
	require.Len(t, s.notifier.Events(), 1)

	body := `{"id":"` + post.ID + `"}`
	for _, want := range []bool{true, false, true} {
		rec = s.call(t, http.MethodPost, "post.toggleLike", "alice", body)
		require.Equal(t, http.StatusOK, rec.Code)
		var res models.ToggleLikeResponse
		decode(t, rec, &res)
		assert.Equal(t, want, res.AddedLike)
	}

	rec = s.call(t, http.MethodPost, "post.toggleLike", "alice", `{"id":"missing"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.call(t, http.MethodPost, "post.toggleLike", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreatePostRejectsBlankContent(t *testing.T) {
	s := newTestServer(t)
	testutils.CreateUser(t, s.db, "alice", "Alice")

	rec := s.call(t, http.MethodPost, "post.create", "alice", `{"content":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.call(t, http.MethodPost, "post.create", "alice", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileGetByID(t *testing.T) {
	s := newTestServer(t)
	testutils.CreateUser(t, s.db, "alice", "Alice")
	testutils.CreateUser(t, s.db, "bob", "Bob")
	testutils.Follow(t, s.db, "alice", "bob")

	rec := s.call(t, http.MethodPost, "profile.getById", "", `{"id":"ghost"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	rec = s.call(t, http.MethodGet, "profile.getById", "alice", `{"id":"bob"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary models.ProfileSummary
	decode(t, rec, &summary)
	assert.Equal(t, "Bob", summary.Name)
	assert.Equal(t, int64(1), summary.FollowersCount)
	assert.True(t, summary.IsFollowing)
}

func TestProfileToggleFollow(t *testing.T) {
	s := newTestServer(t)
	testutils.CreateUser(t, s.db, "alice", "Alice")
	testutils.CreateUser(t, s.db, "bob", "Bob")

	for _, want := range []bool{true, false} {
		rec := s.call(t, http.MethodPost, "profile.toggleFollow", "alice", `{"userId":"bob"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var res models.ToggleFollowResponse
		decode(t, rec, &res)
		assert.Equal(t, want, res.AddedFollow)
	}
	assert.Len(t, s.notifier.Events(), 2)

	rec := s.call(t, http.MethodPost, "profile.toggleFollow", "alice", `{"userId":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.call(t, http.MethodPost, "profile.toggleFollow", "alice", `{"userId":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.call(t, http.MethodPost, "profile.toggleFollow", "", `{"userId":"bob"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
