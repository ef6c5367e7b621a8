package handlers

import (
	"net/http"
	"strconv"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedHandler handles feed read requests
type FeedHandler struct {
	feedRepository repositories.FeedRepository
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedRepo repositories.FeedRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{
		feedRepository: feedRepo,
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns one page of the caller's feed, newest first. An empty feed
// falls back to a random sample of recent posts so new accounts see content.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	page := int64(1)
	if p, err := strconv.ParseInt(c.QueryParam("page"), 10, 64); err == nil && p > 0 {
		page = p
	}

	ctx := c.Request().Context()
	entries, total, err := h.feedRepository.GetPage(ctx, claims.UserID, page, models.FeedItemsPerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if total == 0 {
		posts, err := h.postRepository.SamplePosts(ctx, models.FeedItemsPerPage)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		enriched, err := h.enrich(posts)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, models.FeedPage{
			Posts:    enriched,
			Total:    1,
			IsRandom: true,
		})
	}

	postIDs := make([]primitive.ObjectID, 0, len(entries))
	for _, entry := range entries {
		postIDs = append(postIDs, entry.PostID)
	}

	posts, err := h.postRepository.GetPostsByIDs(ctx, postIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// entries reference posts; a post deleted after the page was counted is
	// simply skipped
	byID := make(map[primitive.ObjectID]models.Post, len(posts))
	for _, post := range posts {
		byID[post.ID] = post
	}
	ordered := make([]models.Post, 0, len(entries))
	for _, entry := range entries {
		if post, ok := byID[entry.PostID]; ok {
			ordered = append(ordered, post)
		}
	}

	enriched, err := h.enrich(ordered)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalPages := int((total + models.FeedItemsPerPage - 1) / models.FeedItemsPerPage)
	return c.JSON(http.StatusOK, models.FeedPage{
		Posts:    enriched,
		Total:    totalPages,
		IsRandom: false,
	})
}

// enrich attaches author summaries, fetching each distinct author once
func (h *FeedHandler) enrich(posts []models.Post) ([]models.EnrichedPost, error) {
	authors := make(map[uint]models.AuthorSummary)
	enriched := make([]models.EnrichedPost, 0, len(posts))

	for _, post := range posts {
		author, ok := authors[post.AuthorID]
		if !ok {
			user, err := h.userRepository.GetUserByID(post.AuthorID)
			if err != nil {
				// author removed since publication; drop the post
				continue
			}
			author = user.ToAuthorSummary()
			authors[post.AuthorID] = author
		}
		enriched = append(enriched, models.EnrichedPost{Post: post, Author: author})
	}
	return enriched, nil
}
