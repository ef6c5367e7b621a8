package models

import "gorm.io/gorm"

// ProfessionalArea is a catalog entry grouping skills and vacancies
type ProfessionalArea struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex"`
}

// Skill is a catalog entry tied to a professional area
type Skill struct {
	gorm.Model
	Name               string `json:"name"`
	ProfessionalAreaID uint   `json:"professional_area_id" gorm:"index"`
}

type CreateProfessionalAreaRequest struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
}

type CreateSkillRequest struct {
	Name               string `json:"name" validate:"required,min=1,max=80"`
	ProfessionalAreaID uint   `json:"professional_area_id" validate:"required"`
}

type CreateManySkillsRequest struct {
	Skills             []string `json:"skills" validate:"required,min=1,dive,min=1,max=80"`
	ProfessionalAreaID uint     `json:"professional_area_id" validate:"required"`
}
