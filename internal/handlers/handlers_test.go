package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/anonto42/simple-twitter/backend/internal/middleware"
	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/anonto42/simple-twitter/backend/internal/services"
	"github.com/anonto42/simple-twitter/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserService struct {
	registerFn func(ctx context.Context, req models.CreateUserRequest) (*models.Profile, error)
	updateFn   func(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.Profile, error)
}

func (m *mockUserService) Register(ctx context.Context, req models.CreateUserRequest) (*models.Profile, error) {
	return m.registerFn(ctx, req)
}
func (m *mockUserService) Update(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.Profile, error) {
	return m.updateFn(ctx, userID, req)
}
func (m *mockUserService) SignIn(ctx context.Context, req models.SignInRequest) (*services.SignInResult, error) {
	return nil, errors.New("not implemented")
}
func (m *mockUserService) FirebaseSignIn(ctx context.Context, idToken string) (*services.SignInResult, error) {
	return nil, errors.New("not implemented")
}

type mockFeedService struct {
	FeedService
	getPostsByUserFn func(ctx context.Context, userID uint) ([]models.PostView, error)
	getTopUsersFn    func(ctx context.Context, viewerID uint, limit int) ([]models.TopUser, error)
}

func (m *mockFeedService) GetPostsByUser(ctx context.Context, userID uint) ([]models.PostView, error) {
	return m.getPostsByUserFn(ctx, userID)
}
func (m *mockFeedService) GetTopUsers(ctx context.Context, viewerID uint, limit int) ([]models.TopUser, error) {
	return m.getTopUsersFn(ctx, viewerID, limit)
}

type mockFollowService struct {
	FollowService
	followFn func(ctx context.Context, followerID, followingID uint) (*models.FollowResult, error)
}

func (m *mockFollowService) Follow(ctx context.Context, followerID, followingID uint) (*models.FollowResult, error) {
	return m.followFn(ctx, followerID, followingID)
}

type tokenParser struct{}

// ParseToken accepts "user-<id>".
func (tokenParser) ParseToken(token string) (*models.JwtCustomClaims, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(token, "user-"))
	if err != nil {
		return nil, errors.New("bad token")
	}
	return &models.JwtCustomClaims{UserID: uint(id)}, nil
}

// --- helpers ---

func newTestServer(users UserService, feed FeedService, follows FollowService) *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()

	public := e.Group("/api")
	NewAuthHandler(users).RegisterAuthRoutes(public)

	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(tokenParser{}))
	NewUserHandler(users, feed).RegisterProfileRoutes(api)
	NewFollowHandler(follows).RegisterFollowRoutes(api)
	return e
}

func do(e *echo.Echo, method, path, body string, userID uint) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != 0 {
		req.Header.Set(echo.HeaderAuthorization, "Bearer user-"+strconv.Itoa(int(userID)))
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// --- tests ---

func TestHTTPErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &services.ServiceError{Kind: services.ErrValidation, Message: "bad"}, http.StatusBadRequest},
		{"not found", &services.ServiceError{Kind: services.ErrNotFound, Message: "gone"}, http.StatusNotFound},
		{"conflict", &services.ServiceError{Kind: services.ErrConflict, Message: "dup"}, http.StatusConflict},
		{"store", &services.ServiceError{Kind: services.ErrStore, Message: "db", Err: errors.New("down")}, http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var he *echo.HTTPError
			require.ErrorAs(t, httpError(tt.err), &he)
			assert.Equal(t, tt.code, he.Code)
		})
	}
}

func TestSignup(t *testing.T) {
	users := &mockUserService{
		registerFn: func(ctx context.Context, req models.CreateUserRequest) (*models.Profile, error) {
			if req.Password != req.CheckPassword {
				return nil, &services.ServiceError{Kind: services.ErrValidation, Message: "passwords do not match"}
			}
			return &models.Profile{ID: 1, Account: "1234567890", Email: "mail@1234567890.me"}, nil
		},
	}
	e := newTestServer(users, &mockFeedService{}, &mockFollowService{})

	rec := do(e, http.MethodPost, "/api/users", `{"password":"pw","checkPassword":"pw"}`, 0)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	var body struct {
		User models.Profile `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "mail@1234567890.me", body.User.Email)

	rec = do(e, http.MethodPost, "/api/users", `{"password":"pw","checkPassword":"other"}`, 0)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/users", `{}`, 0)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser(t *testing.T) {
	var got models.UpdateUserRequest
	users := &mockUserService{
		updateFn: func(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.Profile, error) {
			got = req
			return &models.Profile{ID: userID, Name: *req.Name}, nil
		},
	}
	e := newTestServer(users, &mockFeedService{}, &mockFollowService{})

	rec := do(e, http.MethodPut, "/api/users/2", `{"name":""}`, 1)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodPut, "/api/users/1", `{"name":""}`, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodPut, "/api/users/1", `{"name":""}`, 1)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Name)
	assert.Equal(t, "", *got.Name)
	assert.Nil(t, got.Account)
}

func TestGetUserTweets(t *testing.T) {
	feed := &mockFeedService{
		getPostsByUserFn: func(ctx context.Context, userID uint) ([]models.PostView, error) {
			if userID == 404 {
				return nil, &services.ServiceError{Kind: services.ErrNotFound, Message: "user didn't exist"}
			}
			return []models.PostView{{ID: 2, LikeCount: 3, ReplyCount: 2}, {ID: 1}}, nil
		},
	}
	e := newTestServer(&mockUserService{}, feed, &mockFollowService{})

	rec := do(e, http.MethodGet, "/api/users/7/tweets", "", 1)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []models.PostView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, uint(2), posts[0].ID)
	assert.Equal(t, int64(3), posts[0].LikeCount)

	rec = do(e, http.MethodGet, "/api/users/abc/tweets", "", 1)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/users/404/tweets", "", 1)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTopUsersPassesViewerAndLimit(t *testing.T) {
	var viewer uint
	var gotLimit int
	feed := &mockFeedService{
		getTopUsersFn: func(ctx context.Context, viewerID uint, limit int) ([]models.TopUser, error) {
			viewer, gotLimit = viewerID, limit
			return []models.TopUser{}, nil
		},
	}
	e := newTestServer(&mockUserService{}, feed, &mockFollowService{})

	rec := do(e, http.MethodGet, "/api/users/top?limit=5", "", 3)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(3), viewer)
	assert.Equal(t, 5, gotLimit)
}

func TestFollowUser(t *testing.T) {
	follows := &mockFollowService{
		followFn: func(ctx context.Context, followerID, followingID uint) (*models.FollowResult, error) {
			if followingID == 2 {
				return nil, &services.ServiceError{Kind: services.ErrConflict, Message: "you are already following this user"}
			}
			return &models.FollowResult{FollowerID: followerID, FollowingID: followingID}, nil
		},
	}
	e := newTestServer(&mockUserService{}, &mockFeedService{}, follows)

	rec := do(e, http.MethodPost, "/api/followships", `{"id":3}`, 1)
	require.Equal(t, http.StatusOK, rec.Code)
	var result models.FollowResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.FollowResult{FollowerID: 1, FollowingID: 3}, result)

	rec = do(e, http.MethodPost, "/api/followships", `{"id":2}`, 1)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodPost, "/api/followships", `{}`, 1)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type pinger struct{ err error }

func (p pinger) PingContext(ctx context.Context) error { return p.err }

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	e.GET("/health", NewHealthHandler(pinger{}).HealthCheck)
	rec := do(e, http.MethodGet, "/health", "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)

	e = echo.New()
	e.GET("/health", NewHealthHandler(pinger{err: errors.New("down")}).HealthCheck)
	rec = do(e, http.MethodGet, "/health", "", 0)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
