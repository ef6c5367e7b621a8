package handlers

import (
	"net/http"
	"strconv"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles the experience, education and certificate sections
// of a profile.
type ProfileHandler struct {
	profileRepository repositories.ProfileRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileRepo repositories.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profileRepository: profileRepo}
}

// RegisterProfileRoutes registers profile section routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.POST("/profile/experiences", h.AddExperience)
	g.PUT("/profile/experiences/:id", h.UpdateExperience)
	g.DELETE("/profile/experiences/:id", h.DeleteExperience)
	g.GET("/profile/experiences", h.ListExperiences)

	g.POST("/profile/educations", h.AddEducation)
	g.PUT("/profile/educations/:id", h.UpdateEducation)
	g.DELETE("/profile/educations/:id", h.DeleteEducation)
	g.GET("/profile/educations", h.ListEducations)

	g.POST("/profile/certificates", h.AddCertificate)
	g.PUT("/profile/certificates/:id", h.UpdateCertificate)
	g.DELETE("/profile/certificates/:id", h.DeleteCertificate)
	g.GET("/profile/certificates", h.ListCertificates)
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	return uint(id), nil
}

func (h *ProfileHandler) AddExperience(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.ExperienceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	exp := models.Experience{
		UserID:         claims.UserID,
		Occupation:     req.Occupation,
		Company:        req.Company,
		StartDateMonth: req.StartDateMonth,
		StartDateYear:  req.StartDateYear,
		EndDateMonth:   req.EndDateMonth,
		EndDateYear:    req.EndDateYear,
		Current:        req.Current,
		Type:           req.Type,
		Description:    req.Description,
	}
	if err := h.profileRepository.AddExperience(&exp); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, exp)
}

func (h *ProfileHandler) UpdateExperience(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req models.ExperienceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	exp := models.Experience{
		Occupation:     req.Occupation,
		Company:        req.Company,
		StartDateMonth: req.StartDateMonth,
		StartDateYear:  req.StartDateYear,
		EndDateMonth:   req.EndDateMonth,
		EndDateYear:    req.EndDateYear,
		Current:        req.Current,
		Type:           req.Type,
		Description:    req.Description,
	}
	if err := h.profileRepository.UpdateExperience(claims.UserID, id, &exp); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Experience not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Experience updated"})
}

func (h *ProfileHandler) DeleteExperience(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.profileRepository.DeleteExperience(claims.UserID, id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Experience not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Experience deleted"})
}

func (h *ProfileHandler) ListExperiences(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	exps, err := h.profileRepository.ListExperiences(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"experiences": exps})
}

func (h *ProfileHandler) AddEducation(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.EducationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	edu := models.Education{
		UserID:         claims.UserID,
		Name:           req.Name,
		Institution:    req.Institution,
		Degree:         req.Degree,
		StartDateMonth: req.StartDateMonth,
		StartDateYear:  req.StartDateYear,
		EndDateMonth:   req.EndDateMonth,
		EndDateYear:    req.EndDateYear,
	}
	if err := h.profileRepository.AddEducation(&edu); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, edu)
}

func (h *ProfileHandler) UpdateEducation(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req models.EducationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	edu := models.Education{
		Name:           req.Name,
		Institution:    req.Institution,
		Degree:         req.Degree,
		StartDateMonth: req.StartDateMonth,
		StartDateYear:  req.StartDateYear,
		EndDateMonth:   req.EndDateMonth,
		EndDateYear:    req.EndDateYear,
	}
	if err := h.profileRepository.UpdateEducation(claims.UserID, id, &edu); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Education not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Education updated"})
}

func (h *ProfileHandler) DeleteEducation(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.profileRepository.DeleteEducation(claims.UserID, id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Education not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Education deleted"})
}

func (h *ProfileHandler) ListEducations(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	edus, err := h.profileRepository.ListEducations(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"educations": edus})
}

// padMonth left-pads single-digit months so stored values sort
// chronologically, "9" alone would sort above "12".
func padMonth(month string) string {
	if len(month) == 1 {
		return "0" + month
	}
	return month
}

func (h *ProfileHandler) AddCertificate(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CertificateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cert := models.Certificate{
		UserID:      claims.UserID,
		Name:        req.Name,
		Institution: req.Institution,
		IssueMonth:  padMonth(req.IssueMonth),
		IssueYear:   req.IssueYear,
		URL:         req.URL,
	}
	if err := h.profileRepository.AddCertificate(&cert); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, cert)
}

func (h *ProfileHandler) UpdateCertificate(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req models.CertificateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cert := models.Certificate{
		Name:        req.Name,
		Institution: req.Institution,
		IssueMonth:  padMonth(req.IssueMonth),
		IssueYear:   req.IssueYear,
		URL:         req.URL,
	}
	if err := h.profileRepository.UpdateCertificate(claims.UserID, id, &cert); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Certificate not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Certificate updated"})
}

func (h *ProfileHandler) DeleteCertificate(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.profileRepository.DeleteCertificate(claims.UserID, id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Certificate not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Certificate deleted"})
}

func (h *ProfileHandler) ListCertificates(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	certs, err := h.profileRepository.ListCertificates(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"certificates": certs})
}
