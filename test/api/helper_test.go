package api_test

import (
	"fmt"
	"testing"
	"time"
)

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// createTestDoctor provisions a doctor through the admin API and
// returns its id plus login credentials.
func createTestDoctor(t *testing.T) (id, username, password string) {
	t.Helper()

	username = uniqueName("drtest")
	password = "testpass1"

	resp := makeRequest("POST", "/admin/doctors", map[string]interface{}{
		"username":       username,
		"password":       password,
		"name":           "Test Doctor",
		"specialization": "General Medicine",
		"availability":   "Mon-Fri 9-5",
	}, adminToken)
	if !resp.IsSuccess() {
		t.Fatalf("Failed to create test doctor: %s", resp.Message)
	}
	return resp.GetString("id"), username, password
}

// registerTestPatient signs up a patient and returns its access token.
func registerTestPatient(t *testing.T) string {
	t.Helper()

	username := uniqueName("patient")
	password := "patientpass1"

	regResp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"username": username,
		"password": password,
		"name":     "Test Patient",
	}, "")
	if !regResp.IsSuccess() {
		t.Fatalf("Failed to register test patient: %s", regResp.Message)
	}

	loginResp := makeRequest("POST", "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	if !loginResp.IsSuccess() {
		t.Fatalf("Failed to login test patient: %s", loginResp.Message)
	}
	return loginResp.GetString("access_token")
}

func loginAs(t *testing.T, username, password string) string {
	t.Helper()

	resp := makeRequest("POST", "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	if !resp.IsSuccess() {
		t.Fatalf("Failed to login as %s: %s", username, resp.Message)
	}
	return resp.GetString("access_token")
}
