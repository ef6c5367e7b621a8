package handlers

import (
	"net/http"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// VacancyHandler handles vacancy and application HTTP requests
type VacancyHandler struct {
	vacancyRepository     repositories.VacancyRepository
	applicationRepository repositories.ApplicationRepository
	catalogRepository     repositories.CatalogRepository
	userRepository        repositories.UserRepository
	log                   *logrus.Logger
}

// NewVacancyHandler creates a new VacancyHandler
func NewVacancyHandler(
	vacancyRepo repositories.VacancyRepository,
	applicationRepo repositories.ApplicationRepository,
	catalogRepo repositories.CatalogRepository,
	userRepo repositories.UserRepository,
	log *logrus.Logger,
) *VacancyHandler {
	return &VacancyHandler{
		vacancyRepository:     vacancyRepo,
		applicationRepository: applicationRepo,
		catalogRepository:     catalogRepo,
		userRepository:        userRepo,
		log:                   log,
	}
}

// RegisterVacancyRoutes registers vacancy routes
func (h *VacancyHandler) RegisterVacancyRoutes(g *echo.Group) {
	g.POST("/vacancies/list", h.ListVacancies)
	g.POST("/vacancies", h.CreateVacancy)
	g.PUT("/vacancies", h.UpdateVacancy)
	g.GET("/vacancies/mine", h.ListMyVacancies)
	g.GET("/vacancies/:id", h.GetVacancy)
	g.DELETE("/vacancies/:id", h.DeleteVacancy)
	g.GET("/vacancies/:id/candidates", h.ListCandidates)
	g.POST("/vacancies/apply", h.Apply)
	g.GET("/vacancies/applications/mine", h.ListMyApplications)
}

// RegisterExternalVacancyRoutes registers the ingestion routes used by the
// external scraper. They are public: the scraper holds no account.
func (h *VacancyHandler) RegisterExternalVacancyRoutes(g *echo.Group) {
	g.POST("/vacancies/external", h.CreateExternalVacancy)
	g.GET("/vacancies/external/:externalId", h.GetExternalVacancy)
	g.DELETE("/vacancies/external", h.PurgeExternalVacancies)
}

// validateLocation enforces the location rules: onsite and hybrid vacancies
// need state and city; remote ones carry neither.
func validateLocation(req *models.CreateVacancyRequest) error {
	switch req.TypeLocation {
	case models.LocationRemote:
		req.StateUF = ""
		req.City = ""
	case models.LocationOnsite, models.LocationHybrid:
		if req.StateUF == "" || req.City == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "On-site vacancies require state and city")
		}
	}
	return nil
}

// ListVacancies pages the vacancy board with filters and keyword search
func (h *VacancyHandler) ListVacancies(c echo.Context) error {
	var req models.ListVacanciesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	vacancies, total, err := h.vacancyRepository.ListVacancies(req.Page, req.Limit, req.Filters, req.Keyword)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"vacancies": vacancies,
		"total":     total,
	})
}

// CreateVacancy publishes a vacancy owned by the caller
func (h *VacancyHandler) CreateVacancy(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateVacancyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := validateLocation(&req); err != nil {
		return err
	}

	skills, err := h.catalogRepository.GetSkillsByIDs(req.SkillIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	authorID := claims.UserID
	vacancy := models.Vacancy{
		AuthorID:                &authorID,
		Occupation:              req.Occupation,
		Company:                 req.Company,
		Description:             req.Description,
		TypeLocation:            req.TypeLocation,
		StateUF:                 req.StateUF,
		City:                    req.City,
		EmploymentType:          req.EmploymentType,
		ContractType:            req.ContractType,
		SelectiveAccessibility:  req.SelectiveAccessibility,
		JobAccessibility:        req.JobAccessibility,
		AccommodationAccessible: req.AccommodationAccessible,
		ProfessionalAreaID:      req.ProfessionalAreaID,
		Skills:                  skills,
	}
	if err := h.vacancyRepository.CreateVacancy(&vacancy); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, vacancy)
}

// GetExternalVacancy looks an imported vacancy up by its external ID, so the
// scraper can skip postings it already pushed.
func (h *VacancyHandler) GetExternalVacancy(c echo.Context) error {
	externalID := c.Param("externalId")
	if externalID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing external vacancy ID")
	}

	vacancy, err := h.vacancyRepository.GetVacancyByExternalID(externalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "External vacancy not found")
	}
	return c.JSON(http.StatusOK, vacancy)
}

// PurgeExternalVacancies drops every imported vacancy ahead of a fresh
// scraper run.
func (h *VacancyHandler) PurgeExternalVacancies(c echo.Context) error {
	deleted, err := h.vacancyRepository.DeleteExternalVacancies()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.log.WithField("deleted", deleted).Info("external vacancies purged")
	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}

// UpdateVacancy edits a vacancy. Only the author may edit.
func (h *VacancyHandler) UpdateVacancy(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateVacancyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := validateLocation(&req.CreateVacancyRequest); err != nil {
		return err
	}

	vacancy, err := h.vacancyRepository.GetVacancyByID(req.VacancyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Vacancy not found")
	}
	if vacancy.AuthorID == nil || *vacancy.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the author of this vacancy")
	}

	skills, err := h.catalogRepository.GetSkillsByIDs(req.SkillIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	vacancy.Occupation = req.Occupation
	vacancy.Company = req.Company
	vacancy.Description = req.Description
	vacancy.TypeLocation = req.TypeLocation
	vacancy.StateUF = req.StateUF
	vacancy.City = req.City
	vacancy.EmploymentType = req.EmploymentType
	vacancy.ContractType = req.ContractType
	vacancy.SelectiveAccessibility = req.SelectiveAccessibility
	vacancy.JobAccessibility = req.JobAccessibility
	vacancy.AccommodationAccessible = req.AccommodationAccessible
	vacancy.ProfessionalAreaID = req.ProfessionalAreaID
	vacancy.Skills = nil

	if err := h.vacancyRepository.UpdateVacancy(vacancy); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.vacancyRepository.ReplaceSkills(vacancy, skills); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	vacancy.Skills = skills
	return c.JSON(http.StatusOK, vacancy)
}

// GetVacancy returns one vacancy with its skills
func (h *VacancyHandler) GetVacancy(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	vacancy, err := h.vacancyRepository.GetVacancyByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Vacancy not found")
	}
	return c.JSON(http.StatusOK, vacancy)
}

// ListMyVacancies lists vacancies published by the caller
func (h *VacancyHandler) ListMyVacancies(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	vacancies, total, err := h.vacancyRepository.ListByAuthor(claims.UserID, 1, models.VacanciesPerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"vacancies": vacancies,
		"total":     total,
	})
}

// DeleteVacancy removes a vacancy and its applications. Author only.
func (h *VacancyHandler) DeleteVacancy(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	vacancy, err := h.vacancyRepository.GetVacancyByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Vacancy not found")
	}
	if vacancy.AuthorID == nil || *vacancy.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the author of this vacancy")
	}

	if err := h.applicationRepository.DeleteByVacancy(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.vacancyRepository.DeleteVacancy(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.log.WithFields(logrus.Fields{"vacancy_id": id, "author_id": claims.UserID}).Info("vacancy deleted")
	return c.JSON(http.StatusOK, echo.Map{"message": "Vacancy deleted"})
}

// ListCandidates pages a vacancy's applications with candidate profiles.
// Only the vacancy author may see them.
func (h *VacancyHandler) ListCandidates(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	vacancy, err := h.vacancyRepository.GetVacancyByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Vacancy not found")
	}
	if vacancy.AuthorID == nil || *vacancy.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the author of this vacancy")
	}

	page := 1
	if p, err := queryInt(c, "page"); err == nil && p > 0 {
		page = p
	}

	applications, total, err := h.applicationRepository.ListByVacancy(id, page, models.CandidatesPerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	rows := make([]models.CandidateRow, 0, len(applications))
	for _, application := range applications {
		candidate, err := h.userRepository.GetUserByID(application.CandidateID)
		if err != nil {
			continue
		}
		rows = append(rows, models.CandidateRow{
			Application: application,
			Candidate: models.CandidateSummary{
				ID:        candidate.ID,
				Name:      candidate.Name,
				Avatar:    candidate.Avatar,
				Headline:  candidate.Headline,
				ResumeURL: candidate.ResumeURL,
				About:     candidate.About,
				StateUF:   candidate.StateUF,
				City:      candidate.City,
			},
		})
	}

	totalPages := int((total + models.CandidatesPerPage - 1) / models.CandidatesPerPage)
	return c.JSON(http.StatusOK, echo.Map{
		"candidates":  rows,
		"total_pages": totalPages,
	})
}

// Apply records the caller's application to a vacancy
func (h *VacancyHandler) Apply(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.ApplyVacancyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	vacancy, err := h.vacancyRepository.GetVacancyByID(req.VacancyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Vacancy not found")
	}
	if vacancy.ExternalVacancy {
		return echo.NewHTTPError(http.StatusBadRequest, "External vacancies are applied to through their link")
	}
	if vacancy.AuthorID != nil && *vacancy.AuthorID == claims.UserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot apply to your own vacancy")
	}

	applied, err := h.applicationRepository.HasApplied(claims.UserID, req.VacancyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if applied {
		return echo.NewHTTPError(http.StatusConflict, "Already applied to this vacancy")
	}

	application := models.Application{
		CandidateID:  claims.UserID,
		VacancyID:    req.VacancyID,
		ContactEmail: req.ContactEmail,
	}
	if err := h.applicationRepository.CreateApplication(&application); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, application)
}

// ListMyApplications pages the caller's applications with vacancy details
func (h *VacancyHandler) ListMyApplications(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	page := 1
	if p, err := queryInt(c, "page"); err == nil && p > 0 {
		page = p
	}

	applications, total, err := h.applicationRepository.ListByCandidate(claims.UserID, page, models.VacanciesPerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"applications": applications,
		"total":        total,
	})
}

// CreateExternalVacancy imports a vacancy hosted elsewhere. Repeated imports
// of the same external ID are rejected.
func (h *VacancyHandler) CreateExternalVacancy(c echo.Context) error {
	var req models.CreateExternalVacancyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.vacancyRepository.GetVacancyByExternalID(req.ExternalVacancyID); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "External vacancy already imported")
	}

	vacancy := models.Vacancy{
		Occupation:              req.Occupation,
		Company:                 req.Company,
		Description:             req.Description,
		TypeLocation:            models.LocationRemote,
		ExternalVacancy:         true,
		ExternalVacancyLink:     req.ExternalVacancyLink,
		ExternalVacancyLocation: req.ExternalVacancyLocation,
		ExternalVacancyID:       req.ExternalVacancyID,
	}
	if err := h.vacancyRepository.CreateVacancy(&vacancy); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, vacancy)
}
