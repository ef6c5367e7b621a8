package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userFixture struct {
	e                *echo.Echo
	userRepo         *fakeUserRepo
	followRepo       *fakeFollowRepo
	profileRepo      *fakeProfileRepo
	postRepo         *fakePostRepo
	feedRepo         *fakeFeedRepo
	likeRepo         *fakeLikeRepo
	commentRepo      *fakeCommentRepo
	conversationRepo *fakeConversationRepo
	messageRepo      *fakeMessageRepo
	applicationRepo  *fakeApplicationRepo
	uploader         *fakeUploader
	mail             *fakeMailer
	handler          *UserHandler
}

func newUserFixture() *userFixture {
	f := &userFixture{
		e:                newTestEcho(),
		userRepo:         newFakeUserRepo(),
		followRepo:       newFakeFollowRepo(),
		profileRepo:      newFakeProfileRepo(),
		postRepo:         newFakePostRepo(),
		feedRepo:         newFakeFeedRepo(),
		likeRepo:         newFakeLikeRepo(),
		commentRepo:      newFakeCommentRepo(),
		conversationRepo: newFakeConversationRepo(),
		messageRepo:      newFakeMessageRepo(),
		applicationRepo:  newFakeApplicationRepo(),
		uploader:         &fakeUploader{},
		mail:             &fakeMailer{},
	}
	f.handler = NewUserHandler(
		f.userRepo, f.followRepo, f.profileRepo, f.postRepo, f.feedRepo,
		f.likeRepo, f.commentRepo, f.conversationRepo, f.messageRepo,
		f.applicationRepo, f.uploader, f.mail, testLogger(),
	)
	return f
}

func seedUserWithPassword(t *testing.T, repo *fakeUserRepo, name, email, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Name: name, Email: email, Password: string(hashed), Active: true}
	require.NoError(t, repo.CreateUser(user))
	return user
}

func TestChangePassword(t *testing.T) {
	f := newUserFixture()
	user := seedUserWithPassword(t, f.userRepo, "Alice", "alice@example.com", "oldpassword")

	body := `{"current_password": "wrongwrong", "new_password": "freshpassword"}`
	c, _ := newRequest(f.e, http.MethodPut, "/users/me/password", body, user.ID)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, f.handler.ChangePassword(c)))

	body = `{"current_password": "oldpassword", "new_password": "freshpassword"}`
	c, rec := newRequest(f.e, http.MethodPut, "/users/me/password", body, user.ID)
	require.NoError(t, f.handler.ChangePassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	updated, err := f.userRepo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("freshpassword")))
}

func TestSendEmailCodeAndChangeEmail(t *testing.T) {
	f := newUserFixture()
	user := seedUserWithPassword(t, f.userRepo, "Alice", "alice@example.com", "password123")

	body := `{"current_email": "alice@example.com", "new_email": "alice@new.com"}`
	c, rec := newRequest(f.e, http.MethodPost, "/users/me/email/code", body, user.ID)
	require.NoError(t, f.handler.SendEmailCode(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "email-code", f.mail.sent[0].kind)
	assert.Equal(t, "alice@new.com", f.mail.sent[0].to)
	code := f.mail.sent[0].token
	assert.Len(t, code, 6)

	// an immediate resend hits the throttle
	c, _ = newRequest(f.e, http.MethodPost, "/users/me/email/code", body, user.ID)
	assert.Equal(t, http.StatusTooManyRequests, httpStatus(t, f.handler.SendEmailCode(c)))

	changeBody := fmt.Sprintf(`{"current_email": "alice@example.com", "new_email": "alice@new.com", "code": %q}`, code)
	c, rec = newRequest(f.e, http.MethodPut, "/users/me/email", changeBody, user.ID)
	require.NoError(t, f.handler.ChangeEmail(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	updated, err := f.userRepo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@new.com", updated.Email)
	assert.Empty(t, updated.EmailCode)
}

func TestChangeEmailWrongCodeRejected(t *testing.T) {
	f := newUserFixture()
	user := seedUserWithPassword(t, f.userRepo, "Alice", "alice@example.com", "password123")

	sent := time.Now()
	user.EmailCode = "123456"
	user.EmailCodeAt = &sent
	require.NoError(t, f.userRepo.UpdateUser(user))

	body := `{"current_email": "alice@example.com", "new_email": "alice@new.com", "code": "654321"}`
	c, _ := newRequest(f.e, http.MethodPut, "/users/me/email", body, user.ID)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, f.handler.ChangeEmail(c)))
}

func TestSendEmailCodeTakenAddressRejected(t *testing.T) {
	f := newUserFixture()
	user := seedUserWithPassword(t, f.userRepo, "Alice", "alice@example.com", "password123")
	seedUser(t, f.userRepo, "Bob", "bob@example.com")

	body := `{"current_email": "alice@example.com", "new_email": "bob@example.com"}`
	c, _ := newRequest(f.e, http.MethodPost, "/users/me/email/code", body, user.ID)
	assert.Equal(t, http.StatusConflict, httpStatus(t, f.handler.SendEmailCode(c)))
}

func TestRemoveAccountCascades(t *testing.T) {
	f := newUserFixture()
	alice := seedUserWithPassword(t, f.userRepo, "Alice", "alice@example.com", "password123")
	bob := seedUser(t, f.userRepo, "Bob", "bob@example.com")

	ctx := context.Background()

	// alice's post, liked and commented on by bob, fanned out to both feeds
	post := &models.Post{AuthorID: alice.ID, Content: "goodbye"}
	require.NoError(t, f.postRepo.CreatePost(ctx, post))
	require.NoError(t, f.feedRepo.AddEntries(ctx, []uint{alice.ID, bob.ID}, post.ID))
	require.NoError(t, f.likeRepo.CreateLike(&models.Like{PostID: post.ID.Hex(), UserID: bob.ID}))
	require.NoError(t, f.commentRepo.CreateComment(&models.Comment{PostID: post.ID.Hex(), UserID: bob.ID, Content: "bye"}))

	// follow edges in both directions
	require.NoError(t, f.followRepo.CreateFollow(alice.ID, bob.ID))
	require.NoError(t, f.followRepo.CreateFollow(bob.ID, alice.ID))

	// a conversation with a message from alice
	message := &models.Message{SenderID: alice.ID, Receiver: bob.ID, Content: "hello"}
	require.NoError(t, f.messageRepo.CreateMessage(ctx, message))
	_, err := f.conversationRepo.CreateConversation(ctx, alice.ID, bob.ID, message.ID)
	require.NoError(t, err)

	// profile sections and an application
	require.NoError(t, f.profileRepo.AddExperience(&models.Experience{UserID: alice.ID, Occupation: "Dev"}))
	require.NoError(t, f.applicationRepo.CreateApplication(&models.Application{CandidateID: alice.ID, VacancyID: 7}))

	c, rec := newRequest(f.e, http.MethodDelete, "/users/me", "", alice.ID)
	require.NoError(t, f.handler.RemoveAccount(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err = f.userRepo.GetUserByID(alice.ID)
	assert.Error(t, err)

	assert.Empty(t, f.postRepo.posts)
	assert.Empty(t, f.feedRepo.entries)
	assert.Empty(t, f.likeRepo.likes)
	assert.Empty(t, f.commentRepo.comments)
	assert.Empty(t, f.conversationRepo.conversations)
	assert.Empty(t, f.messageRepo.messages)
	assert.Empty(t, f.followRepo.edges)
	assert.Empty(t, f.profileRepo.experiences)
	assert.Empty(t, f.applicationRepo.applications)
}

func TestGetSuggestionsExcludesSelf(t *testing.T) {
	f := newUserFixture()
	alice := seedUser(t, f.userRepo, "Alice", "alice@example.com")
	seedUser(t, f.userRepo, "Bob", "bob@example.com")
	seedUser(t, f.userRepo, "Carol", "carol@example.com")

	c, rec := newRequest(f.e, http.MethodGet, "/users/suggestions", "", alice.ID)
	require.NoError(t, f.handler.GetSuggestions(c))

	body := decodeBody(t, rec)
	users, ok := body["users"].([]interface{})
	require.True(t, ok)
	assert.Len(t, users, 2)
}
