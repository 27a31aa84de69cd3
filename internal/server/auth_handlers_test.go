package server

import (
	"net/http"
	"testing"

	"pulseboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Run("creates an account and never exposes the password", func(t *testing.T) {
		app, _ := setupTestServer(t)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users", fiber.Map{
			"email":    "alice@example.com",
			"password": "p1",
		}, ""))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "alice@example.com", body["email"])
		assert.NotContains(t, body, "password")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		app, _ := setupTestServer(t)
		registerUser(t, app, "dup@example.com", "p1")

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users", fiber.Map{
			"email":    "dup@example.com",
			"password": "other",
		}, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		app, _ := setupTestServer(t)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users", fiber.Map{
			"email":    "not-an-email",
			"password": "p1",
		}, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, models.CodeValidation, body.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials issue a usable token", func(t *testing.T) {
		app, _ := setupTestServer(t)
		registerUser(t, app, "alice@example.com", "p1")
		token := loginUser(t, app, "alice@example.com", "p1")

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/me", nil, token))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "alice@example.com", body["email"])
	})

	t.Run("unknown email and wrong password respond identically", func(t *testing.T) {
		app, _ := setupTestServer(t)
		registerUser(t, app, "alice@example.com", "p1")

		wrongPw, err := app.Test(jsonRequest(t, http.MethodPost, "/api/login", fiber.Map{
			"email":    "alice@example.com",
			"password": "wrong",
		}, ""))
		require.NoError(t, err)

		unknown, err := app.Test(jsonRequest(t, http.MethodPost, "/api/login", fiber.Map{
			"email":    "nobody@example.com",
			"password": "p1",
		}, ""))
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, wrongPw.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)

		var bodyWrong, bodyUnknown models.ErrorResponse
		decodeBody(t, wrongPw, &bodyWrong)
		decodeBody(t, unknown, &bodyUnknown)
		assert.Equal(t, bodyWrong, bodyUnknown)
	})
}

func TestAuthRequired(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		app, _ := setupTestServer(t)
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts", nil, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		app, _ := setupTestServer(t)
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts", nil, "not.a.token"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid signature for a deleted user is rejected", func(t *testing.T) {
		app, srv := setupTestServer(t)
		id := registerUser(t, app, "gone@example.com", "p1")
		token := loginUser(t, app, "gone@example.com", "p1")

		require.NoError(t, srv.db.Delete(&models.User{}, id).Error)

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetUser_PublicProfile(t *testing.T) {
	app, _ := setupTestServer(t)
	id := registerUser(t, app, "alice@example.com", "p1")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/1", nil, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, float64(id), body["id"])
	assert.NotContains(t, body, "password")
}

func TestUpdateMe(t *testing.T) {
	app, _ := setupTestServer(t)
	registerUser(t, app, "old@example.com", "p1")
	token := loginUser(t, app, "old@example.com", "p1")

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/users/me", fiber.Map{
		"email": "new@example.com",
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "new@example.com", body["email"])

	// Old token still resolves to the same account; new email logs in.
	loginUser(t, app, "new@example.com", "p1")
}
