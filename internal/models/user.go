package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

const (
	ProfileTypePerson  = "person"
	ProfileTypeCompany = "company"
)

// User represents an account, person or company
type User struct {
	gorm.Model     `json:"-"`
	ID             uint       `json:"id" gorm:"primaryKey"`
	Name           string     `json:"name"`
	Email          string     `json:"email" gorm:"uniqueIndex"`
	Password       string     `json:"-"` // bcrypt hash
	ProfileType    string     `json:"profile_type"`
	Avatar         string     `json:"avatar,omitempty"`
	AvatarObjectID string     `json:"-"` // remote storage identifier for the avatar
	ResumeURL      string     `json:"resume_url,omitempty"`
	ResumeObjectID string     `json:"-"`
	Headline       string     `json:"headline,omitempty"`
	About          string     `json:"about,omitempty"`
	City           string     `json:"city,omitempty"`
	StateUF        string     `json:"state_uf,omitempty"`
	OccupationArea string     `json:"occupation_area,omitempty"`
	CompanyType    string     `json:"company_type,omitempty"`
	Website        string     `json:"website,omitempty"`
	Active         bool       `json:"active"`
	RefreshToken   string     `json:"-"`
	EmailToken     string     `json:"-"`
	ForgotToken    string     `json:"-"`
	EmailCode      string     `json:"-"` // 6-digit change-email code
	EmailCodeAt    *time.Time `json:"-"`
}

// UserSummary is the projection returned by network listings: counts instead
// of full follower lists, to bound response size.
type UserSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	Headline  string `json:"headline,omitempty"`
	Followers int64  `json:"followers"`
	Following int64  `json:"following"`
}

// AuthorSummary is the author projection embedded in feed and post responses.
type AuthorSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Headline string `json:"headline,omitempty"`
}

func (u *User) ToAuthorSummary() AuthorSummary {
	return AuthorSummary{
		ID:       u.ID,
		Name:     u.Name,
		Avatar:   u.Avatar,
		Headline: u.Headline,
	}
}

// JwtCustomClaims are the access-token claims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims are the refresh-token claims
type RefreshClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// EmailClaims are the claims of email confirmation and password reset tokens
type EmailClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type SignUpPersonRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignUpCompanyRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=80"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	City           string `json:"city" validate:"required"`
	StateUF        string `json:"state_uf" validate:"required"`
	OccupationArea string `json:"occupation_area" validate:"required"`
	CompanyType    string `json:"company_type" validate:"required"`
	Website        string `json:"website,omitempty" validate:"omitempty,url"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ConfirmEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type ResendConfirmationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateBasicInfoRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Headline string `json:"headline,omitempty"`
	StateUF  string `json:"state_uf,omitempty"`
	City     string `json:"city,omitempty"`
}

type UpdateAboutRequest struct {
	About string `json:"about" validate:"max=2000"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type SendEmailCodeRequest struct {
	CurrentEmail string `json:"current_email" validate:"required,email"`
	NewEmail     string `json:"new_email" validate:"required,email"`
}

type ChangeEmailRequest struct {
	CurrentEmail string `json:"current_email" validate:"required,email"`
	NewEmail     string `json:"new_email" validate:"required,email"`
	Code         string `json:"code" validate:"required,len=6"`
}

type NetworkListRequest struct {
	Relation string `json:"relation" validate:"required,oneof=followers following all not-following"`
	Page     int    `json:"page,omitempty" validate:"omitempty,min=1"`
	Limit    int    `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
	Keyword  string `json:"keyword,omitempty"`
}

type FollowRequest struct {
	TargetID uint `json:"target_id" validate:"required"`
}
