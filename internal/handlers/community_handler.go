package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// CommunityHandler handles community HTTP requests
type CommunityHandler struct {
	communityRepository repositories.CommunityRepository
	catalogRepository   repositories.CatalogRepository
	log                 *logrus.Logger
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(communityRepo repositories.CommunityRepository, catalogRepo repositories.CatalogRepository, log *logrus.Logger) *CommunityHandler {
	return &CommunityHandler{
		communityRepository: communityRepo,
		catalogRepository:   catalogRepo,
		log:                 log,
	}
}

// RegisterCommunityRoutes registers community routes
func (h *CommunityHandler) RegisterCommunityRoutes(g *echo.Group) {
	g.POST("/communities/list", h.ListCommunities)
	g.POST("/communities", h.CreateCommunity)
	g.PUT("/communities", h.UpdateCommunity)
	g.GET("/communities/:id", h.GetCommunity)
	g.DELETE("/communities/:id", h.DeleteCommunity)
	g.POST("/communities/rate", h.RateCommunity)
}

// formatLink normalizes an invite link into the canonical form used for
// duplicate detection: lowercase, no scheme, no www prefix, no slashes.
func formatLink(link string) string {
	formatted := strings.ToLower(link)
	formatted = strings.ReplaceAll(formatted, "https:", "")
	formatted = strings.ReplaceAll(formatted, "/", "")
	formatted = strings.TrimPrefix(formatted, "www.")
	return formatted
}

// ListCommunities pages communities with filters, keyword and sorting
func (h *CommunityHandler) ListCommunities(c echo.Context) error {
	var req models.ListCommunitiesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	communities, total, err := h.communityRepository.ListCommunities(req.Page, req.Limit, req.Filters, req.Keyword)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"communities": communities,
		"total":       total,
	})
}

// CreateCommunity registers a community. Two communities cannot share the
// same normalized invite link.
func (h *CommunityHandler) CreateCommunity(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	formatted := formatLink(req.Link)
	if _, err := h.communityRepository.GetByFormattedLink(formatted); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "A community with this link already exists")
	}

	skills, err := h.catalogRepository.GetSkillsByIDs(req.SkillIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	community := models.Community{
		Name:               req.Name,
		AuthorID:           claims.UserID,
		Description:        req.Description,
		Link:               req.Link,
		FormattedLink:      formatted,
		Platform:           req.Platform,
		ProfessionalAreaID: req.ProfessionalAreaID,
		Skills:             skills,
	}
	if err := h.communityRepository.CreateCommunity(&community); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, community)
}

// UpdateCommunity edits a community. Only the author may edit, and the new
// link must not collide with another community.
func (h *CommunityHandler) UpdateCommunity(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateCommunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	community, err := h.communityRepository.GetCommunityByID(req.CommunityID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Community not found")
	}
	if community.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the author of this community")
	}

	formatted := formatLink(req.Link)
	if existing, err := h.communityRepository.GetByFormattedLink(formatted); err == nil && existing.ID != community.ID {
		return echo.NewHTTPError(http.StatusConflict, "A community with this link already exists")
	}

	skills, err := h.catalogRepository.GetSkillsByIDs(req.SkillIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	community.Name = req.Name
	community.Description = req.Description
	community.Link = req.Link
	community.FormattedLink = formatted
	community.Platform = req.Platform
	community.ProfessionalAreaID = req.ProfessionalAreaID
	community.Skills = nil

	if err := h.communityRepository.UpdateCommunity(community); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.communityRepository.ReplaceSkills(community, skills); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	community.Skills = skills
	return c.JSON(http.StatusOK, community)
}

// GetCommunity returns one community with its skills
func (h *CommunityHandler) GetCommunity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	community, err := h.communityRepository.GetCommunityByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Community not found")
	}
	return c.JSON(http.StatusOK, community)
}

// DeleteCommunity removes a community and its ratings. Author only.
func (h *CommunityHandler) DeleteCommunity(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	community, err := h.communityRepository.GetCommunityByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Community not found")
	}
	if community.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the author of this community")
	}

	if err := h.communityRepository.DeleteCommunity(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.log.WithFields(logrus.Fields{"community_id": id, "author_id": claims.UserID}).Info("community deleted")
	return c.JSON(http.StatusOK, echo.Map{"message": "Community deleted"})
}

// RateCommunity records a one-to-five rating. Each user rates a community
// at most once.
func (h *CommunityHandler) RateCommunity(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.RateCommunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.communityRepository.GetCommunityByID(req.CommunityID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Community not found")
	}

	if err := h.communityRepository.RateCommunity(req.CommunityID, claims.UserID, req.Rating); err != nil {
		if errors.Is(err, repositories.ErrAlreadyRated) {
			return echo.NewHTTPError(http.StatusConflict, "Community already rated")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	community, err := h.communityRepository.GetCommunityByID(req.CommunityID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"rating":        community.Rating,
		"total_ratings": community.TotalRatings,
	})
}
