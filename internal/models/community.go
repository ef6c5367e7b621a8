package models

import "gorm.io/gorm"

// CommunitiesPerPage is the default community page size
const CommunitiesPerPage = 5

// Community is an interest group hosted on an external platform
type Community struct {
	gorm.Model
	Name               string  `json:"name"`
	AuthorID           uint    `json:"author_id" gorm:"index"`
	Description        string  `json:"description,omitempty"`
	Link               string  `json:"link"`
	FormattedLink      string  `json:"formatted_link" gorm:"uniqueIndex"`
	Platform           string  `json:"platform"`
	Rating             int64   `json:"rating"`        // running sum; average is presentation-side
	TotalRatings       int64   `json:"total_ratings"`
	ProfessionalAreaID uint    `json:"professional_area_id"`
	Skills             []Skill `json:"skills,omitempty" gorm:"many2many:community_skills"`
}

// CommunityRating records that a user rated a community. The unique
// (community,user) pair rejects repeat ratings.
type CommunityRating struct {
	gorm.Model
	CommunityID uint `json:"community_id" gorm:"index;uniqueIndex:idx_community_user"`
	UserID      uint `json:"user_id" gorm:"index;uniqueIndex:idx_community_user"`
	Rating      int  `json:"rating"`
}

// CommunityFilters are the optional list filters
type CommunityFilters struct {
	ProfessionalArea uint     `json:"professional_area,omitempty"`
	Skills           []uint   `json:"skills,omitempty"`
	Platforms        []string `json:"platforms,omitempty"`
	SortType         string   `json:"sort_type,omitempty"` // "relevance" sorts by rating
}

type ListCommunitiesRequest struct {
	Page    int              `json:"page,omitempty" validate:"omitempty,min=1"`
	Limit   int              `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
	Filters CommunityFilters `json:"filters,omitempty"`
	Keyword string           `json:"keyword,omitempty"`
}

type CreateCommunityRequest struct {
	Name               string `json:"name" validate:"required,min=2,max=120"`
	Description        string `json:"description,omitempty"`
	Link               string `json:"link" validate:"required,url"`
	Platform           string `json:"platform" validate:"required,oneof=whatsapp telegram discord facebook linkedin reddit others"`
	ProfessionalAreaID uint   `json:"professional_area_id" validate:"required"`
	SkillIDs           []uint `json:"skill_ids,omitempty"`
}

type UpdateCommunityRequest struct {
	CommunityID uint `json:"community_id" validate:"required"`
	CreateCommunityRequest
}

type RateCommunityRequest struct {
	CommunityID uint `json:"community_id" validate:"required"`
	Rating      int  `json:"rating" validate:"required,min=1,max=5"`
}
