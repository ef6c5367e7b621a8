package handlers

import (
	"net/http"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CatalogHandler handles the professional area and skill catalogs
type CatalogHandler struct {
	catalogRepository repositories.CatalogRepository
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogRepo repositories.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalogRepository: catalogRepo}
}

// RegisterCatalogRoutes registers catalog routes
func (h *CatalogHandler) RegisterCatalogRoutes(g *echo.Group) {
	g.GET("/catalog/areas", h.ListAreas)
	g.POST("/catalog/areas", h.CreateArea)
	g.GET("/catalog/areas/:id/skills", h.ListSkills)
	g.POST("/catalog/skills", h.CreateSkill)
	g.POST("/catalog/skills/batch", h.CreateSkills)
}

// ListAreas returns every professional area, alphabetically
func (h *CatalogHandler) ListAreas(c echo.Context) error {
	areas, err := h.catalogRepository.ListProfessionalAreas()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// CreateArea adds a professional area to the catalog
func (h *CatalogHandler) CreateArea(c echo.Context) error {
	var req models.CreateProfessionalAreaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	area := models.ProfessionalArea{Name: req.Name}
	if err := h.catalogRepository.CreateProfessionalArea(&area); err != nil {
		return echo.NewHTTPError(http.StatusConflict, "Professional area already exists")
	}
	return c.JSON(http.StatusCreated, area)
}

// ListSkills returns the skills of one professional area
func (h *CatalogHandler) ListSkills(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if _, err := h.catalogRepository.GetProfessionalAreaByID(id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Professional area not found")
	}

	skills, err := h.catalogRepository.ListSkillsByArea(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"skills": skills})
}

// CreateSkill adds one skill to an area
func (h *CatalogHandler) CreateSkill(c echo.Context) error {
	var req models.CreateSkillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.catalogRepository.GetProfessionalAreaByID(req.ProfessionalAreaID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Professional area not found")
	}

	skill := models.Skill{Name: req.Name, ProfessionalAreaID: req.ProfessionalAreaID}
	if err := h.catalogRepository.CreateSkill(&skill); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, skill)
}

// CreateSkills adds a batch of skills to an area in one call
func (h *CatalogHandler) CreateSkills(c echo.Context) error {
	var req models.CreateManySkillsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.catalogRepository.GetProfessionalAreaByID(req.ProfessionalAreaID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Professional area not found")
	}

	skills := make([]models.Skill, 0, len(req.Skills))
	for _, name := range req.Skills {
		skills = append(skills, models.Skill{Name: name, ProfessionalAreaID: req.ProfessionalAreaID})
	}
	if err := h.catalogRepository.CreateSkills(skills); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{"skills": skills})
}
