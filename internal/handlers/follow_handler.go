package handlers

import (
	"net/http"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/followships", h.FollowUser)
	g.DELETE("/followships/:followingId", h.UnfollowUser)
	g.GET("/users/:id/followings", h.GetFollowings)
	g.GET("/users/:id/followers", h.GetFollowers)
}

// FollowUser makes the caller follow the user in the body
func (h *FollowHandler) FollowUser(c echo.Context) error {
	var req models.CreateFollowshipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.followService.Follow(c.Request().Context(), getUserIDFromContext(c), req.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// UnfollowUser removes the caller's edge to :followingId
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	followingID, err := parseIDParam(c, "followingId", "user")
	if err != nil {
		return err
	}
	if err := h.followService.UnfollowUser(c.Request().Context(), getUserIDFromContext(c), followingID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"follower_id": getUserIDFromContext(c), "following_id": followingID})
}

func (h *FollowHandler) GetFollowings(c echo.Context) error {
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	followings, err := h.followService.ListFollowing(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"followings": followings})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	followers, err := h.followService.ListFollowers(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"followers": followers})
}
