package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLoginFlow(t *testing.T) {
	username := uniqueName("patient")

	registerResp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
		"name":     "Flow Patient",
	}, "")
	assert.True(t, registerResp.IsSuccess(), "Failed to register: %s", registerResp.Message)
	assert.Equal(t, "patient", registerResp.Data["role"])

	loginResp := makeRequest("POST", "/auth/login", map[string]string{
		"username": username,
		"password": "secret123",
	}, "")
	assert.True(t, loginResp.IsSuccess(), "Failed to login: %s", loginResp.Message)
	assert.NotEmpty(t, loginResp.GetString("access_token"))
	assert.Equal(t, "patient", loginResp.GetString("role"))
}

func TestRegisterDuplicateUsernameRejected(t *testing.T) {
	username := uniqueName("patient")

	first := makeRequest("POST", "/auth/register", map[string]interface{}{
		"username": username,
		"password": "secret123",
	}, "")
	assert.True(t, first.IsSuccess())

	second := makeRequest("POST", "/auth/register", map[string]interface{}{
		"username": username,
		"password": "othersecret",
	}, "")
	assert.False(t, second.IsSuccess())
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	resp := makeRequest("POST", "/auth/login", map[string]string{
		"username": "admin",
		"password": "definitely-wrong",
	}, "")
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRoleEnforcement(t *testing.T) {
	patientToken := registerTestPatient(t)

	// A patient must not reach the admin surface.
	resp := makeRequest("GET", "/admin/dashboard", nil, patientToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// Nor may anonymous requests.
	anon := makeRequest("GET", "/patient/dashboard", nil, "")
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
}
