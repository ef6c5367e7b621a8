package handlers

import (
	"net/http"
	"time"

	"github.com/conecta-social/conecta-server/backend/internal/mailer"
	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"github.com/conecta-social/conecta-server/backend/pkg/config"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 24 * time.Hour
	emailTokenTTL   = 5 * time.Minute

	refreshCookieName = "rf-jwt"

	// minimum wait between two forgot-password emails for the same account
	forgotResendWait = 2 * time.Minute
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	mailer         mailer.Mailer
	cfg            *config.Config
	log            *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, m mailer.Mailer, cfg *config.Config, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		mailer:         m,
		cfg:            cfg,
		log:            log,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.SignUpPerson)
	g.POST("/signup/company", h.SignUpCompany)
	g.POST("/signin", h.SignIn)
	g.POST("/signout", h.SignOut)
	g.POST("/refresh", h.Refresh)
	g.POST("/confirm-email", h.ConfirmEmail)
	g.POST("/resend-confirmation", h.ResendConfirmation)
	g.POST("/forgot-password", h.ForgotPassword)
	g.POST("/reset-password", h.ResetPassword)
}

// SignUpPerson registers a personal account. The account starts inactive and
// only a confirmed email unlocks sign-in.
func (h *AuthHandler) SignUpPerson(c echo.Context) error {
	var req models.SignUpPersonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashedPassword),
		ProfileType: models.ProfileTypePerson,
		Active:      false,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.sendConfirmation(user); err != nil {
		h.log.WithError(err).WithField("user_id", user.ID).Warn("failed to send confirmation email")
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Account created, confirm your email to sign in"})
}

// SignUpCompany registers a company account
func (h *AuthHandler) SignUpCompany(c echo.Context) error {
	var req models.SignUpCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       string(hashedPassword),
		ProfileType:    models.ProfileTypeCompany,
		City:           req.City,
		StateUF:        req.StateUF,
		OccupationArea: req.OccupationArea,
		CompanyType:    req.CompanyType,
		Website:        req.Website,
		Active:         false,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.sendConfirmation(user); err != nil {
		h.log.WithError(err).WithField("user_id", user.ID).Warn("failed to send confirmation email")
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Account created, confirm your email to sign in"})
}

// ConfirmEmail activates the account named by a valid confirmation token
func (h *AuthHandler) ConfirmEmail(c echo.Context) error {
	var req models.ConfirmEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims, err := parseEmailClaims(req.Token, h.cfg.EmailTokenSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired confirmation token")
	}

	user, err := h.userRepository.GetUserByEmail(claims.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if user.EmailToken != req.Token {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired confirmation token")
	}

	user.Active = true
	user.EmailToken = ""
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Email confirmed"})
}

// ResendConfirmation issues a fresh confirmation token for an inactive account
func (h *AuthHandler) ResendConfirmation(c echo.Context) error {
	var req models.ResendConfirmationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if user.Active {
		return echo.NewHTTPError(http.StatusConflict, "Account already confirmed")
	}

	if err := h.sendConfirmation(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send confirmation email")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Confirmation email sent"})
}

// SignIn authenticates the user and opens a session: a short-lived access
// token in the body and a rotated refresh token in an httpOnly cookie.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if !user.Active {
		return echo.NewHTTPError(http.StatusForbidden, "Account not confirmed yet")
	}

	accessToken, err := h.generateAccessToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	refreshToken, err := h.generateRefreshToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	user.RefreshToken = refreshToken
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.setRefreshCookie(c, refreshToken, refreshTokenTTL)

	return c.JSON(http.StatusOK, echo.Map{
		"token": accessToken,
		"user":  user,
	})
}

// Refresh mints a new access token from the refresh cookie
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing refresh token")
	}

	claims := &models.RefreshClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(h.cfg.RefreshTokenSecret), nil
	})
	if err != nil || !token.Valid {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}

	// the stored token must match: a rotated or cleared session is dead
	user, err := h.userRepository.GetUserByRefreshToken(cookie.Value)
	if err != nil || user.ID != claims.UserID {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}

	accessToken, err := h.generateAccessToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": accessToken})
}

// SignOut closes the session: clears the stored refresh token and expires
// the cookie.
func (h *AuthHandler) SignOut(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err == nil && cookie.Value != "" {
		if user, err := h.userRepository.GetUserByRefreshToken(cookie.Value); err == nil {
			user.RefreshToken = ""
			if err := h.userRepository.UpdateUser(user); err != nil {
				h.log.WithError(err).Warn("failed to clear refresh token on sign-out")
			}
		}
	}

	h.setRefreshCookie(c, "", -time.Hour)

	return c.JSON(http.StatusOK, echo.Map{"message": "Signed out"})
}

// ForgotPassword emails a short-lived password reset link, throttled so the
// same account cannot be spammed.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if user.ForgotToken != "" {
		if prev, err := parseEmailClaims(user.ForgotToken, h.cfg.ForgotPassSecret); err == nil {
			if prev.IssuedAt != nil && time.Since(prev.IssuedAt.Time) < forgotResendWait {
				return echo.NewHTTPError(http.StatusTooManyRequests, "A reset email was sent recently, try again in a moment")
			}
		}
	}

	resetToken, err := generateEmailToken(user.Email, h.cfg.ForgotPassSecret, emailTokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	user.ForgotToken = resetToken
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.mailer.SendPasswordReset(user.Email, user.Name, resetToken); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send reset email")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Reset email sent"})
}

// ResetPassword sets a new password from a valid reset token and invalidates
// every open session.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims, err := parseEmailClaims(req.Token, h.cfg.ForgotPassSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired reset token")
	}

	user, err := h.userRepository.GetUserByEmail(claims.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if user.ForgotToken != req.Token {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired reset token")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user.Password = string(hashedPassword)
	user.ForgotToken = ""
	user.RefreshToken = ""
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated"})
}

func (h *AuthHandler) sendConfirmation(user *models.User) error {
	token, err := generateEmailToken(user.Email, h.cfg.EmailTokenSecret, emailTokenTTL)
	if err != nil {
		return err
	}
	user.EmailToken = token
	if err := h.userRepository.UpdateUser(user); err != nil {
		return err
	}
	return h.mailer.SendConfirmation(user.Email, user.Name, token)
}

func (h *AuthHandler) generateAccessToken(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.AccessTokenSecret))
}

func (h *AuthHandler) generateRefreshToken(user *models.User) (string, error) {
	claims := &models.RefreshClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(refreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.RefreshTokenSecret))
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, value string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
		Secure:   h.cfg.Env == "production",
	}
	c.SetCookie(cookie)
}

func generateEmailToken(email, secret string, ttl time.Duration) (string, error) {
	claims := &models.EmailClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseEmailClaims(tokenString, secret string) (*models.EmailClaims, error) {
	claims := &models.EmailClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
