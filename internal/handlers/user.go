package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users and their timelines
type UserHandler struct {
	userService UserService
	feedService FeedService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService UserService, feedService FeedService) *UserHandler {
	return &UserHandler{userService: userService, feedService: feedService}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/top", h.GetTopUsers)
	g.GET("/users/:id", h.GetUser)
	g.PUT("/users/:id", h.UpdateUser)
	g.GET("/users/:id/tweets", h.GetUserTweets)
	g.GET("/users/:id/replied_tweets", h.GetUserReplies)
	g.GET("/users/:id/likes", h.GetUserLikes)
	g.GET("/get_current_user", h.GetCurrentUser)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	profile, err := h.feedService.GetProfile(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": profile})
}

func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	profile, err := h.feedService.GetCurrentUser(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": profile})
}

// UpdateUser updates the caller's own profile
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	if id != getUserIDFromContext(c) {
		return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own profile")
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.userService.Update(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) GetUserTweets(c echo.Context) error {
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	posts, err := h.feedService.GetPostsByUser(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *UserHandler) GetUserReplies(c echo.Context) error {
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	replies, err := h.feedService.GetRepliesByUser(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, replies)
}

func (h *UserHandler) GetUserLikes(c echo.Context) error {
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	likes, err := h.feedService.GetLikedPostsByUser(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, likes)
}

// GetTopUsers returns the follower ranking; ?limit= overrides the default 10
func (h *UserHandler) GetTopUsers(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 0 || limit > 100 {
		limit = 0
	}
	users, err := h.feedService.GetTopUsers(c.Request().Context(), getUserIDFromContext(c), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}
