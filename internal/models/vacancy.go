package models

import "gorm.io/gorm"

// VacanciesPerPage is the default vacancy page size
const VacanciesPerPage = 20

// CandidatesPerPage is the fixed page size of a vacancy's candidate listing
const CandidatesPerPage = 2

const (
	LocationRemote = "remote"
	LocationOnsite = "onsite"
	LocationHybrid = "hybrid"
)

// Vacancy is a job opening
type Vacancy struct {
	gorm.Model
	AuthorID                 *uint    `json:"author_id,omitempty" gorm:"index"` // nil for external vacancies
	Occupation               string   `json:"occupation"`
	Company                  string   `json:"company"`
	Description              string   `json:"description"`
	TypeLocation             string   `json:"type_location"`
	StateUF                  string   `json:"state_uf,omitempty"`
	City                     string   `json:"city,omitempty"`
	EmploymentType           string   `json:"employment_type,omitempty"`
	ContractType             string   `json:"contract_type,omitempty"`
	SelectiveAccessibility   []string `json:"selective_process_accessibility,omitempty" gorm:"serializer:json"`
	JobAccessibility         []string `json:"job_accessibility,omitempty" gorm:"serializer:json"`
	AccommodationAccessible  []string `json:"accommodation_accessibility,omitempty" gorm:"serializer:json"`
	ProfessionalAreaID       *uint    `json:"professional_area_id,omitempty"`
	Skills                   []Skill  `json:"skills,omitempty" gorm:"many2many:vacancy_skills"`
	ExternalVacancy          bool     `json:"external_vacancy"`
	ExternalVacancyLink      string   `json:"external_vacancy_link,omitempty"`
	ExternalVacancyLocation  string   `json:"external_vacancy_location,omitempty"`
	ExternalVacancyID        string   `json:"external_vacancy_id,omitempty" gorm:"index"`
}

// Application is a user's application to a vacancy
type Application struct {
	gorm.Model
	CandidateID  uint     `json:"candidate_id" gorm:"index"`
	VacancyID    uint     `json:"vacancy_id" gorm:"index"`
	ContactEmail string   `json:"contact_email"`
	Vacancy      *Vacancy `json:"vacancy,omitempty" gorm:"foreignKey:VacancyID"`
}

// CandidateRow is one row of a vacancy's candidate listing
type CandidateRow struct {
	Application
	Candidate CandidateSummary `json:"candidate"`
}

// CandidateSummary is the candidate profile projection shown to recruiters
type CandidateSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	Headline  string `json:"headline,omitempty"`
	ResumeURL string `json:"resume_url,omitempty"`
	About     string `json:"about,omitempty"`
	StateUF   string `json:"state_uf,omitempty"`
	City      string `json:"city,omitempty"`
}

// VacancyFilters are the optional list filters
type VacancyFilters struct {
	TypeLocation     []string `json:"type_location,omitempty"`
	ContractType     []string `json:"contract_type,omitempty"`
	EmploymentType   string   `json:"employment_type,omitempty"`
	ProfessionalArea uint     `json:"professional_area,omitempty"`
}

type ListVacanciesRequest struct {
	Page    int            `json:"page,omitempty" validate:"omitempty,min=1"`
	Limit   int            `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
	Filters VacancyFilters `json:"filters,omitempty"`
	Keyword string         `json:"keyword,omitempty"`
}

type CreateVacancyRequest struct {
	Occupation              string   `json:"occupation" validate:"required"`
	Company                 string   `json:"company" validate:"required"`
	Description             string   `json:"description" validate:"required"`
	TypeLocation            string   `json:"type_location" validate:"required,oneof=remote onsite hybrid"`
	StateUF                 string   `json:"state_uf,omitempty"`
	City                    string   `json:"city,omitempty"`
	EmploymentType          string   `json:"employment_type,omitempty"`
	ContractType            string   `json:"contract_type,omitempty"`
	SelectiveAccessibility  []string `json:"selective_process_accessibility,omitempty"`
	JobAccessibility        []string `json:"job_accessibility,omitempty"`
	AccommodationAccessible []string `json:"accommodation_accessibility,omitempty"`
	ProfessionalAreaID      *uint    `json:"professional_area_id,omitempty"`
	SkillIDs                []uint   `json:"skill_ids,omitempty"`
}

type UpdateVacancyRequest struct {
	VacancyID uint `json:"vacancy_id" validate:"required"`
	CreateVacancyRequest
}

type CreateExternalVacancyRequest struct {
	Occupation              string `json:"occupation" validate:"required"`
	Company                 string `json:"company" validate:"required"`
	Description             string `json:"description" validate:"required"`
	ExternalVacancyLink     string `json:"external_vacancy_link" validate:"required,url"`
	ExternalVacancyLocation string `json:"external_vacancy_location,omitempty"`
	ExternalVacancyID       string `json:"external_vacancy_id" validate:"required"`
}

type ApplyVacancyRequest struct {
	VacancyID    uint   `json:"vacancy_id" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
}
