package handlers

import (
	"net/http"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NetworkHandler handles follow graph HTTP requests
type NetworkHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewNetworkHandler creates a new NetworkHandler
func NewNetworkHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *NetworkHandler {
	return &NetworkHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
	}
}

// RegisterNetworkRoutes registers follow graph routes
func (h *NetworkHandler) RegisterNetworkRoutes(g *echo.Group) {
	g.POST("/network/follow", h.Follow)
	g.POST("/network/unfollow", h.Unfollow)
	g.POST("/network/users", h.GetNetworkUsers)
	g.GET("/network/info", h.GetNetworkInfo)
}

// Follow creates the directed edge caller -> target. Following yourself or
// re-following are rejected.
func (h *NetworkHandler) Follow(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.FollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.TargetID == claims.UserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	if _, err := h.userRepository.GetUserByID(req.TargetID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	following, err := h.followRepository.IsFollowing(claims.UserID, req.TargetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if following {
		return echo.NewHTTPError(http.StatusConflict, "Already following this user")
	}

	if err := h.followRepository.CreateFollow(claims.UserID, req.TargetID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Now following"})
}

// Unfollow removes the directed edge caller -> target
func (h *NetworkHandler) Unfollow(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.FollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(claims.UserID, req.TargetID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Follow relationship not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed"})
}

// GetNetworkUsers lists users by relation with keyword search and pagination
func (h *NetworkHandler) GetNetworkUsers(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.NetworkListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	users, total, err := h.userRepository.ListNetwork(repositories.NetworkQuery{
		UserID:   claims.UserID,
		Relation: req.Relation,
		Page:     req.Page,
		Limit:    req.Limit,
		Keyword:  req.Keyword,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users": users,
		"total": total,
	})
}

// GetNetworkInfo returns the caller's follower and following counts
func (h *NetworkHandler) GetNetworkInfo(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	followers, err := h.followRepository.CountFollowers(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	following, err := h.followRepository.CountFollowing(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"followers": followers,
		"following": following,
	})
}
