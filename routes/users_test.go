package routes

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlafber/APIsupermercado/models"
)

func TestRegisterAndLogin(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)

	w := performRequest(t, router, http.MethodPost, "/users/register", map[string]interface{}{
		"username": "maria456", "password": "password456", "first_name": "Maria", "last_name": "Lopez",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// The stored password must be a hash, never the plaintext.
	var user models.User
	require.NoError(t, conn.Where("username = ?", "maria456").First(&user).Error)
	assert.NotEqual(t, "password456", user.Password)

	w = performRequest(t, router, http.MethodPost, "/users/login", map[string]interface{}{
		"username": "maria456", "password": "password456",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, router, http.MethodPost, "/users/login", map[string]interface{}{
		"username": "maria456", "password": "password457",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	decodeJSON(t, w, &body)
	assert.Equal(t, "Invalid credentials", body["detail"])
}

func TestLoginUnknownUser(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)

	w := performRequest(t, router, http.MethodPost, "/users/login", map[string]interface{}{
		"username": "nobody", "password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)

	w := performRequest(t, router, http.MethodPost, "/users/register", map[string]interface{}{
		"username": "maria456", "password": "password456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListUsersOmitsPassword(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)
	createFixtures(t, conn)

	w := performRequest(t, router, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]interface{}
	decodeJSON(t, w, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "juan123", rows[0]["username"])
	assert.Equal(t, "Juan", rows[0]["first_name"])
	assert.NotContains(t, rows[0], "password")
}
