package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const experienceBody = `{"occupation": "Backend Developer", "company": "Acme", "start_date_month": "03", "start_date_year": "2022", "current": true, "type": "full-time"}`

func TestExperienceLifecycle(t *testing.T) {
	e := newTestEcho()
	profileRepo := newFakeProfileRepo()
	h := NewProfileHandler(profileRepo)

	c, rec := newRequest(e, http.MethodPost, "/profile/experiences", experienceBody, 1)
	require.NoError(t, h.AddExperience(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	updated := `{"occupation": "Staff Engineer", "company": "Acme", "start_date_month": "03", "start_date_year": "2022", "current": true, "type": "full-time"}`
	c, _ = newRequest(e, http.MethodPut, "/profile/experiences/1", updated, 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateExperience(c))

	exps, err := profileRepo.ListExperiences(1)
	require.NoError(t, err)
	require.Len(t, exps, 1)
	assert.Equal(t, "Staff Engineer", exps[0].Occupation)

	c, _ = newRequest(e, http.MethodDelete, "/profile/experiences/1", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.DeleteExperience(c))

	exps, err = profileRepo.ListExperiences(1)
	require.NoError(t, err)
	assert.Empty(t, exps)
}

func TestUpdateExperienceOfAnotherUserRejected(t *testing.T) {
	e := newTestEcho()
	profileRepo := newFakeProfileRepo()
	h := NewProfileHandler(profileRepo)

	c, _ := newRequest(e, http.MethodPost, "/profile/experiences", experienceBody, 1)
	require.NoError(t, h.AddExperience(c))

	c, _ = newRequest(e, http.MethodPut, "/profile/experiences/1", experienceBody, 2)
	c.SetParamNames("id")
	c.SetParamValues("1")
	assert.Equal(t, http.StatusNotFound, httpStatus(t, h.UpdateExperience(c)))
}

func TestListProfileSectionsScopedToOwner(t *testing.T) {
	e := newTestEcho()
	profileRepo := newFakeProfileRepo()
	h := NewProfileHandler(profileRepo)

	c, _ := newRequest(e, http.MethodPost, "/profile/experiences", experienceBody, 1)
	require.NoError(t, h.AddExperience(c))

	education := `{"name": "Computer Science", "institution": "USP", "degree": "BSc", "start_date_month": "02", "start_date_year": "2016"}`
	c, _ = newRequest(e, http.MethodPost, "/profile/educations", education, 1)
	require.NoError(t, h.AddEducation(c))

	certificate := `{"name": "Cloud Practitioner", "institution": "AWS", "issue_month": "07", "issue_year": "2023", "url": "https://certs.example.com/1"}`
	c, _ = newRequest(e, http.MethodPost, "/profile/certificates", certificate, 1)
	require.NoError(t, h.AddCertificate(c))

	// another user sees none of it
	c, rec := newRequest(e, http.MethodGet, "/profile/experiences", "", 2)
	require.NoError(t, h.ListExperiences(c))
	body := decodeBody(t, rec)
	assert.Empty(t, body["experiences"])

	c, rec = newRequest(e, http.MethodGet, "/profile/educations", "", 1)
	require.NoError(t, h.ListEducations(c))
	body = decodeBody(t, rec)
	assert.Len(t, body["educations"], 1)

	c, rec = newRequest(e, http.MethodGet, "/profile/certificates", "", 1)
	require.NoError(t, h.ListCertificates(c))
	body = decodeBody(t, rec)
	assert.Len(t, body["certificates"], 1)
}

func certificateBody(name, month, year string) string {
	return `{"name": "` + name + `", "institution": "AWS", "issue_month": "` + month + `", "issue_year": "` + year + `", "url": "https://certs.example.com/1"}`
}

func TestCertificatesSortChronologically(t *testing.T) {
	e := newTestEcho()
	profileRepo := newFakeProfileRepo()
	h := NewProfileHandler(profileRepo)

	c, _ := newRequest(e, http.MethodPost, "/profile/certificates", certificateBody("September", "9", "2023"), 1)
	require.NoError(t, h.AddCertificate(c))
	c, _ = newRequest(e, http.MethodPost, "/profile/certificates", certificateBody("December", "12", "2023"), 1)
	require.NoError(t, h.AddCertificate(c))
	c, _ = newRequest(e, http.MethodPost, "/profile/certificates", certificateBody("January", "1", "2024"), 1)
	require.NoError(t, h.AddCertificate(c))

	certs, err := profileRepo.ListCertificates(1)
	require.NoError(t, err)
	require.Len(t, certs, 3)

	// newest first: single-digit months are padded on write so the string
	// ordering matches the calendar
	assert.Equal(t, "January", certs[0].Name)
	assert.Equal(t, "01", certs[0].IssueMonth)
	assert.Equal(t, "December", certs[1].Name)
	assert.Equal(t, "12", certs[1].IssueMonth)
	assert.Equal(t, "September", certs[2].Name)
	assert.Equal(t, "09", certs[2].IssueMonth)
}
