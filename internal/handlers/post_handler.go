package handlers

import (
	"net/http"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// PostHandler handles tweets, replies and likes
type PostHandler struct {
	postService PostService
	feedService FeedService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService PostService, feedService FeedService) *PostHandler {
	return &PostHandler{postService: postService, feedService: feedService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/tweets", h.GetPosts)
	g.POST("/tweets", h.CreatePost)
	g.GET("/tweets/:id", h.GetPost)
	g.GET("/tweets/:id/replies", h.GetReplies)
	g.POST("/tweets/:id/replies", h.CreateReply)
	g.POST("/tweets/:id/like", h.LikePost)
	g.POST("/tweets/:id/unlike", h.UnlikePost)
	g.GET("/feed", h.GetFeed)
}

func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.feedService.GetPosts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetFeed returns posts from the users the caller follows, plus the caller's own
func (h *PostHandler) GetFeed(c echo.Context) error {
	posts, err := h.feedService.GetFollowingFeed(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), getUserIDFromContext(c), req.Description)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}
	post, err := h.feedService.GetPost(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

func (h *PostHandler) GetReplies(c echo.Context) error {
	id, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}
	replies, err := h.feedService.GetPostReplies(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, replies)
}

func (h *PostHandler) CreateReply(c echo.Context) error {
	id, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reply, err := h.postService.CreateReply(c.Request().Context(), getUserIDFromContext(c), id, req.Comment)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, reply)
}

func (h *PostHandler) LikePost(c echo.Context) error {
	id, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}
	like, err := h.postService.AddLike(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, like)
}

func (h *PostHandler) UnlikePost(c echo.Context) error {
	id, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}
	if err := h.postService.Unlike(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
