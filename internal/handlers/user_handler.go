package handlers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/conecta-social/conecta-server/backend/internal/mailer"
	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"github.com/conecta-social/conecta-server/backend/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// minimum wait between two change-email codes for the same account
const emailCodeResendWait = 90 * time.Second

// UserHandler handles account and profile HTTP requests
type UserHandler struct {
	userRepository         repositories.UserRepository
	followRepository       repositories.FollowRepository
	profileRepository      repositories.ProfileRepository
	postRepository         repositories.PostRepository
	feedRepository         repositories.FeedRepository
	likeRepository         repositories.LikeRepository
	commentRepository      repositories.CommentRepository
	conversationRepository repositories.ConversationRepository
	messageRepository      repositories.MessageRepository
	applicationRepository  repositories.ApplicationRepository
	uploader               storage.Uploader
	mailer                 mailer.Mailer
	log                    *logrus.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	profileRepo repositories.ProfileRepository,
	postRepo repositories.PostRepository,
	feedRepo repositories.FeedRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	conversationRepo repositories.ConversationRepository,
	messageRepo repositories.MessageRepository,
	applicationRepo repositories.ApplicationRepository,
	uploader storage.Uploader,
	m mailer.Mailer,
	log *logrus.Logger,
) *UserHandler {
	return &UserHandler{
		userRepository:         userRepo,
		followRepository:       followRepo,
		profileRepository:      profileRepo,
		postRepository:         postRepo,
		feedRepository:         feedRepo,
		likeRepository:         likeRepo,
		commentRepository:      commentRepo,
		conversationRepository: conversationRepo,
		messageRepository:      messageRepo,
		applicationRepository:  applicationRepo,
		uploader:               uploader,
		mailer:                 m,
		log:                    log,
	}
}

// RegisterUserRoutes registers account and profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
	g.GET("/users/suggestions", h.GetSuggestions)
	g.GET("/users/:id", h.GetUser)
	g.PUT("/users/me/basic-info", h.UpdateBasicInfo)
	g.PUT("/users/me/about", h.UpdateAbout)
	g.PUT("/users/me/avatar", h.UpdateAvatar)
	g.PUT("/users/me/resume", h.UpdateResume)
	g.PUT("/users/me/password", h.ChangePassword)
	g.POST("/users/me/email-code", h.SendEmailCode)
	g.PUT("/users/me/email", h.ChangeEmail)
	g.DELETE("/users/me", h.RemoveAccount)
}

// GetMe returns the authenticated user's own record
func (h *UserHandler) GetMe(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}

// GetUser returns a public profile with follow counts and profile sections
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	followers, err := h.followRepository.CountFollowers(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	following, err := h.followRepository.CountFollowing(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	experiences, err := h.profileRepository.ListExperiences(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	educations, err := h.profileRepository.ListEducations(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	certificates, err := h.profileRepository.ListCertificates(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":         user,
		"followers":    followers,
		"following":    following,
		"experiences":  experiences,
		"educations":   educations,
		"certificates": certificates,
	})
}

// GetSuggestions returns up to five recently created accounts the caller
// does not follow yet.
func (h *UserHandler) GetSuggestions(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	suggestions, err := h.userRepository.ListRecentNotFollowing(claims.UserID, 5)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"users": suggestions})
}

// UpdateBasicInfo updates name, headline and location
func (h *UserHandler) UpdateBasicInfo(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateBasicInfoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	user.Name = req.Name
	user.Headline = req.Headline
	user.StateUF = req.StateUF
	user.City = req.City
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAbout updates the free-form about section
func (h *UserHandler) UpdateAbout(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateAboutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	user.About = req.About
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAvatar replaces the profile picture. The previous object is removed
// from storage after the new one is live.
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing avatar file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read avatar file")
	}
	defer file.Close()

	ctx := c.Request().Context()
	url, objectName, err := h.uploader.Upload(ctx, "avatars", fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store avatar")
	}

	previousObject := user.AvatarObjectID
	user.Avatar = url
	user.AvatarObjectID = objectName
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if previousObject != "" {
		if err := h.uploader.Delete(ctx, previousObject); err != nil {
			h.log.WithError(err).Warn("failed to delete previous avatar object")
		}
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateResume replaces the stored resume document
func (h *UserHandler) UpdateResume(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing resume file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read resume file")
	}
	defer file.Close()

	ctx := c.Request().Context()
	url, objectName, err := h.uploader.Upload(ctx, "resumes", fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store resume")
	}

	previousObject := user.ResumeObjectID
	user.ResumeURL = url
	user.ResumeObjectID = objectName
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if previousObject != "" {
		if err := h.uploader.Delete(ctx, previousObject); err != nil {
			h.log.WithError(err).Warn("failed to delete previous resume object")
		}
	}

	return c.JSON(http.StatusOK, user)
}

// ChangePassword verifies the current password before setting a new one
func (h *UserHandler) ChangePassword(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user.Password = string(hashedPassword)
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated"})
}

// SendEmailCode emails a six-digit code to the new address. Codes are
// throttled per account and the new address must be free.
func (h *UserHandler) SendEmailCode(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.SendEmailCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if user.Email != req.CurrentEmail {
		return echo.NewHTTPError(http.StatusBadRequest, "Current email does not match")
	}

	if _, err := h.userRepository.GetUserByEmail(req.NewEmail); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Email already in use")
	}

	if user.EmailCodeAt != nil && time.Since(*user.EmailCodeAt) < emailCodeResendWait {
		return echo.NewHTTPError(http.StatusTooManyRequests, "A code was sent recently, try again in a moment")
	}

	code, err := generateEmailCode()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate code")
	}

	now := time.Now()
	user.EmailCode = code
	user.EmailCodeAt = &now
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.mailer.SendEmailChangeCode(req.NewEmail, user.Name, code); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send code")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Code sent"})
}

// ChangeEmail applies the pending email change once the code checks out
func (h *UserHandler) ChangeEmail(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.ChangeEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if user.Email != req.CurrentEmail {
		return echo.NewHTTPError(http.StatusBadRequest, "Current email does not match")
	}
	if user.EmailCode == "" || user.EmailCode != req.Code {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid code")
	}

	if _, err := h.userRepository.GetUserByEmail(req.NewEmail); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Email already in use")
	}

	user.Email = req.NewEmail
	user.EmailCode = ""
	user.EmailCodeAt = nil
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// RemoveAccount deletes the account and everything it owns: posts and their
// likes, comments and feed entries, the user's own likes and comments,
// applications, conversations, messages, follow edges, profile sections and
// stored media.
func (h *UserHandler) RemoveAccount(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	ctx := c.Request().Context()

	postIDs, err := h.postRepository.DeletePostsByAuthor(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, postID := range postIDs {
		hex := postID.Hex()
		if err := h.likeRepository.DeleteByPost(hex); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.commentRepository.DeleteByPost(hex); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	if err := h.feedRepository.RemovePosts(ctx, postIDs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.feedRepository.RemoveUser(ctx, user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.likeRepository.DeleteByUser(user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.commentRepository.DeleteByUser(user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.applicationRepository.DeleteByCandidate(user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.messageRepository.DeleteBySender(ctx, user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.conversationRepository.DeleteByParticipant(ctx, user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.followRepository.DeleteByUser(user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.profileRepository.DeleteAllByUser(user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if user.AvatarObjectID != "" {
		if err := h.uploader.Delete(ctx, user.AvatarObjectID); err != nil {
			h.log.WithError(err).Warn("failed to delete avatar object")
		}
	}
	if user.ResumeObjectID != "" {
		if err := h.uploader.Delete(ctx, user.ResumeObjectID); err != nil {
			h.log.WithError(err).Warn("failed to delete resume object")
		}
	}

	if err := h.userRepository.DeleteUser(user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.log.WithField("user_id", user.ID).Info("account removed")
	return c.JSON(http.StatusOK, echo.Map{"message": "Account removed"})
}

func generateEmailCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
