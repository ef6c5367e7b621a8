package handlers

import (
	"net/http"
	"strconv"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
	g.GET("/comments/:postId", h.GetComments)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment adds a comment to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), req.PostID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comment := models.Comment{
		PostID:  req.PostID,
		UserID:  claims.UserID,
		Content: req.Content,
	}
	if err := h.commentRepository.CreateComment(&comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetComments pages a post's comments newest first with author summaries
func (h *CommentHandler) GetComments(c echo.Context) error {
	page := 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}

	postID := c.Param("postId")
	comments, total, err := h.commentRepository.GetCommentsByPost(postID, page, models.CommentsPerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	authors := make(map[uint]models.AuthorSummary)
	enriched := make([]models.EnrichedComment, 0, len(comments))
	for _, comment := range comments {
		author, ok := authors[comment.UserID]
		if !ok {
			user, err := h.userRepository.GetUserByID(comment.UserID)
			if err != nil {
				continue
			}
			author = user.ToAuthorSummary()
			authors[comment.UserID] = author
		}
		enriched = append(enriched, models.EnrichedComment{Comment: comment, Author: author})
	}

	totalPages := int((total + models.CommentsPerPage - 1) / models.CommentsPerPage)
	return c.JSON(http.StatusOK, echo.Map{
		"comments":    enriched,
		"total_pages": totalPages,
	})
}

// UpdateComment edits the caller's own comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.commentRepository.UpdateComment(id, claims.UserID, req.Content); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment updated"})
}

// DeleteComment removes the caller's own comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.commentRepository.DeleteComment(id, claims.UserID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted"})
}
