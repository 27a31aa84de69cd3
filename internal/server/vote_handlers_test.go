package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func castVote(t *testing.T, app *fiber.App, token string, postID uint, dir int) *http.Response {
	t.Helper()
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/vote", fiber.Map{
		"post_id": postID,
		"dir":     dir,
	}, token))
	require.NoError(t, err)
	return resp
}

func getPostVotes(t *testing.T, app *fiber.App, token string, postID uint) int {
	t.Helper()
	resp, err := app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body postBody
	decodeBody(t, resp, &body)
	return body.Votes
}

func TestCastVote(t *testing.T) {
	t.Run("add then retract round-trips the count", func(t *testing.T) {
		app, _ := setupTestServer(t)
		registerUser(t, app, "voter@example.com", "p1")
		token := loginUser(t, app, "voter@example.com", "p1")
		postID := createPost(t, app, token, "target", "body")

		resp := castVote(t, app, token, postID, 1)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "successfully added vote", body["message"])
		assert.Equal(t, 1, getPostVotes(t, app, token, postID))

		resp = castVote(t, app, token, postID, 0)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		decodeBody(t, resp, &body)
		assert.Equal(t, "successfully deleted vote", body["message"])
		assert.Equal(t, 0, getPostVotes(t, app, token, postID))
	})

	t.Run("double add conflicts", func(t *testing.T) {
		app, _ := setupTestServer(t)
		registerUser(t, app, "voter@example.com", "p1")
		token := loginUser(t, app, "voter@example.com", "p1")
		postID := createPost(t, app, token, "target", "body")

		resp := castVote(t, app, token, postID, 1)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = castVote(t, app, token, postID, 1)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, 1, getPostVotes(t, app, token, postID))
	})

	t.Run("retract without a vote is not found", func(t *testing.T) {
		app, _ := setupTestServer(t)
		registerUser(t, app, "voter@example.com", "p1")
		token := loginUser(t, app, "voter@example.com", "p1")
		postID := createPost(t, app, token, "target", "body")

		resp := castVote(t, app, token, postID, 0)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("vote on a missing post is not found", func(t *testing.T) {
		app, _ := setupTestServer(t)
		registerUser(t, app, "voter@example.com", "p1")
		token := loginUser(t, app, "voter@example.com", "p1")

		resp := castVote(t, app, token, 999, 1)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid dir rejected", func(t *testing.T) {
		app, _ := setupTestServer(t)
		registerUser(t, app, "voter@example.com", "p1")
		token := loginUser(t, app, "voter@example.com", "p1")
		postID := createPost(t, app, token, "target", "body")

		resp := castVote(t, app, token, postID, 2)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("votes from different users accumulate", func(t *testing.T) {
		app, _ := setupTestServer(t)
		registerUser(t, app, "author@example.com", "p1")
		authorToken := loginUser(t, app, "author@example.com", "p1")
		postID := createPost(t, app, authorToken, "popular", "body")

		registerUser(t, app, "fan@example.com", "p1")
		fanToken := loginUser(t, app, "fan@example.com", "p1")

		resp := castVote(t, app, authorToken, postID, 1)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		resp = castVote(t, app, fanToken, postID, 1)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		assert.Equal(t, 2, getPostVotes(t, app, authorToken, postID))
	})
}
