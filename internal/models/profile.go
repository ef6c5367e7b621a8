package models

import "gorm.io/gorm"

// Experience is a professional-experience entry owned by a user.
type Experience struct {
	gorm.Model     `json:"-"`
	ID             uint   `json:"id" gorm:"primaryKey"`
	UserID         uint   `json:"user_id" gorm:"index"`
	Occupation     string `json:"occupation"`
	Company        string `json:"company"`
	StartDateMonth string `json:"start_date_month"`
	StartDateYear  string `json:"start_date_year"`
	EndDateMonth   string `json:"end_date_month,omitempty"`
	EndDateYear    string `json:"end_date_year,omitempty"`
	Current        bool   `json:"current"`
	Type           string `json:"type"`
	Description    string `json:"description,omitempty"`
}

// Education is an academic-education entry owned by a user.
type Education struct {
	gorm.Model     `json:"-"`
	ID             uint   `json:"id" gorm:"primaryKey"`
	UserID         uint   `json:"user_id" gorm:"index"`
	Name           string `json:"name"`
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	StartDateMonth string `json:"start_date_month"`
	StartDateYear  string `json:"start_date_year"`
	EndDateMonth   string `json:"end_date_month,omitempty"`
	EndDateYear    string `json:"end_date_year,omitempty"`
}

// Certificate is a certification entry owned by a user.
type Certificate struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserID      uint   `json:"user_id" gorm:"index"`
	Name        string `json:"name"`
	Institution string `json:"institution"`
	IssueMonth  string `json:"issue_month"`
	IssueYear   string `json:"issue_year"`
	URL         string `json:"url"`
}

type ExperienceRequest struct {
	Occupation     string `json:"occupation" validate:"required"`
	Company        string `json:"company" validate:"required"`
	StartDateMonth string `json:"start_date_month" validate:"required"`
	StartDateYear  string `json:"start_date_year" validate:"required"`
	EndDateMonth   string `json:"end_date_month,omitempty"`
	EndDateYear    string `json:"end_date_year,omitempty"`
	Current        bool   `json:"current"`
	Type           string `json:"type" validate:"required"`
	Description    string `json:"description,omitempty"`
}

type EducationRequest struct {
	Name           string `json:"name" validate:"required"`
	Institution    string `json:"institution" validate:"required"`
	Degree         string `json:"degree" validate:"required"`
	StartDateMonth string `json:"start_date_month" validate:"required"`
	StartDateYear  string `json:"start_date_year" validate:"required"`
	EndDateMonth   string `json:"end_date_month,omitempty"`
	EndDateYear    string `json:"end_date_year,omitempty"`
}

type CertificateRequest struct {
	Name        string `json:"name" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	IssueMonth  string `json:"issue_month" validate:"required"`
	IssueYear   string `json:"issue_year" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
}
