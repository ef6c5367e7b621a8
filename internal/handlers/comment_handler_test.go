package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentOnMissingPostRejected(t *testing.T) {
	e := newTestEcho()
	h := NewCommentHandler(newFakeCommentRepo(), newFakePostRepo(), newFakeUserRepo())

	body := `{"post_id": "64b5f0c2a7e3d21f98765432", "content": "hello"}`
	c, _ := newRequest(e, http.MethodPost, "/comments", body, 1)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, h.CreateComment(c)))
}

func TestGetCommentsPagedNewestFirst(t *testing.T) {
	e := newTestEcho()
	commentRepo := newFakeCommentRepo()
	postRepo := newFakePostRepo()
	userRepo := newFakeUserRepo()
	h := NewCommentHandler(commentRepo, postRepo, userRepo)

	author := seedUser(t, userRepo, "Author", "author@example.com")
	postID := seedPost(t, postRepo, author.ID, "discussed")

	for i := 1; i <= 7; i++ {
		body := fmt.Sprintf(`{"post_id": %q, "content": "comment %d"}`, postID, i)
		c, rec := newRequest(e, http.MethodPost, "/comments", body, author.ID)
		require.NoError(t, h.CreateComment(c))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	c, rec := newRequest(e, http.MethodGet, "/comments/"+postID, "", author.ID)
	c.SetParamNames("postId")
	c.SetParamValues(postID)
	require.NoError(t, h.GetComments(c))

	body := decodeBody(t, rec)
	comments, ok := body["comments"].([]interface{})
	require.True(t, ok)
	assert.Len(t, comments, models.CommentsPerPage)
	assert.Equal(t, float64(2), body["total_pages"])

	first, ok := comments[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "comment 7", first["content"])
}

func TestUpdateCommentOnlyByOwner(t *testing.T) {
	e := newTestEcho()
	commentRepo := newFakeCommentRepo()
	postRepo := newFakePostRepo()
	h := NewCommentHandler(commentRepo, postRepo, newFakeUserRepo())

	postID := seedPost(t, postRepo, 1, "discussed")
	require.NoError(t, commentRepo.CreateComment(&models.Comment{PostID: postID, UserID: 2, Content: "original"}))

	// someone else's edit reads as not found
	c, _ := newRequest(e, http.MethodPut, "/comments/1", `{"content": "hijacked"}`, 3)
	c.SetParamNames("id")
	c.SetParamValues("1")
	assert.Equal(t, http.StatusNotFound, httpStatus(t, h.UpdateComment(c)))

	c, rec := newRequest(e, http.MethodPut, "/comments/1", `{"content": "edited"}`, 2)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateComment(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	stored, err := commentRepo.GetCommentByID(1)
	require.NoError(t, err)
	assert.Equal(t, "edited", stored.Content)
}

func TestDeleteCommentOnlyByOwner(t *testing.T) {
	e := newTestEcho()
	commentRepo := newFakeCommentRepo()
	postRepo := newFakePostRepo()
	h := NewCommentHandler(commentRepo, postRepo, newFakeUserRepo())

	postID := seedPost(t, postRepo, 1, "discussed")
	require.NoError(t, commentRepo.CreateComment(&models.Comment{PostID: postID, UserID: 2, Content: "mine"}))

	c, _ := newRequest(e, http.MethodDelete, "/comments/1", "", 3)
	c.SetParamNames("id")
	c.SetParamValues("1")
	assert.Equal(t, http.StatusNotFound, httpStatus(t, h.DeleteComment(c)))

	c, _ = newRequest(e, http.MethodDelete, "/comments/1", "", 2)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.DeleteComment(c))

	_, err := commentRepo.GetCommentByID(1)
	assert.Error(t, err)
}
