package handlers

import (
	"net/http"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"github.com/conecta-social/conecta-server/backend/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postRepository    repositories.PostRepository
	feedRepository    repositories.FeedRepository
	followRepository  repositories.FollowRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
	uploader          storage.Uploader
	log               *logrus.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	feedRepo repositories.FeedRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	uploader storage.Uploader,
	log *logrus.Logger,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		feedRepository:    feedRepo,
		followRepository:  followRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
		userRepository:    userRepo,
		uploader:          uploader,
		log:               log,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost publishes a post and fans it out to the author's followers and
// the author's own feed.
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	post := models.Post{
		AuthorID:         claims.UserID,
		Content:          req.Content,
		MediaDescription: req.MediaDescription,
	}

	if fileHeader, err := c.FormFile("media"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Could not read media file")
		}
		defer file.Close()

		url, objectName, err := h.uploader.Upload(ctx, "posts", fileHeader.Header.Get("Content-Type"), file)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store media")
		}
		post.Media = url
		post.MediaObjectID = objectName
	}

	if err := h.postRepository.CreatePost(ctx, &post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	followerIDs, err := h.followRepository.GetFollowerIDs(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	// the author sees their own post too
	recipients := append(followerIDs, claims.UserID)
	if err := h.feedRepository.AddEntries(ctx, recipients, post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.log.WithFields(logrus.Fields{
		"post_id":    post.ID.Hex(),
		"author_id":  claims.UserID,
		"recipients": len(recipients),
	}).Info("post published")

	return c.JSON(http.StatusCreated, post)
}

// GetPost returns a post with author, like and comment information
func (h *PostHandler) GetPost(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	author, err := h.userRepository.GetUserByID(post.AuthorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	hex := post.ID.Hex()
	likes, err := h.likeRepository.GetLikesCountByPostID(hex)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	comments, err := h.commentRepository.CountByPost(hex)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	liked, err := h.likeRepository.HasUserLikedPost(hex, claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post":           models.EnrichedPost{Post: *post, Author: author.ToAuthorSummary()},
		"likes_count":    likes,
		"comments_count": comments,
		"liked":          liked,
	})
}

// UpdatePost edits a post's content and media. Only the author may edit.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the author of this post")
	}

	post.Content = req.Content
	post.MediaDescription = req.MediaDescription

	staleObject := ""
	if req.MediaRemoved && post.MediaObjectID != "" {
		staleObject = post.MediaObjectID
		post.Media = ""
		post.MediaObjectID = ""
		post.MediaDescription = ""
	}

	if fileHeader, err := c.FormFile("media"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Could not read media file")
		}
		defer file.Close()

		url, objectName, err := h.uploader.Upload(ctx, "posts", fileHeader.Header.Get("Content-Type"), file)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store media")
		}
		if post.MediaObjectID != "" {
			staleObject = post.MediaObjectID
		}
		post.Media = url
		post.MediaObjectID = objectName
		post.MediaDescription = req.MediaDescription
	}

	if err := h.postRepository.UpdatePost(ctx, post.ID.Hex(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if staleObject != "" {
		if err := h.uploader.Delete(ctx, staleObject); err != nil {
			h.log.WithError(err).Warn("failed to delete replaced media object")
		}
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost removes a post and everything that references it: likes,
// comments, feed entries and stored media.
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the author of this post")
	}

	hex := post.ID.Hex()
	if err := h.postRepository.DeletePost(ctx, hex); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.likeRepository.DeleteByPost(hex); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.commentRepository.DeleteByPost(hex); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.feedRepository.RemovePost(ctx, post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.MediaObjectID != "" {
		if err := h.uploader.Delete(ctx, post.MediaObjectID); err != nil {
			h.log.WithError(err).Warn("failed to delete media object")
		}
	}

	h.log.WithFields(logrus.Fields{"post_id": hex, "author_id": claims.UserID}).Info("post deleted")
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted"})
}
