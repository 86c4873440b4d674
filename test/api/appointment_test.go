package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentLifecycle(t *testing.T) {
	doctorID, docUsername, docPassword := createTestDoctor(t)
	patientToken := registerTestPatient(t)

	// Book a slot.
	bookResp := makeRequest("POST", fmt.Sprintf("/patient/doctors/%s/book", doctorID), map[string]string{
		"date": "2026-10-01",
		"time": "10:00",
	}, patientToken)
	require.True(t, bookResp.IsSuccess(), "Failed to book: %s", bookResp.Message)
	appointmentID := bookResp.GetString("id")
	require.NotEmpty(t, appointmentID)
	assert.Equal(t, "Booked", bookResp.Data["status"])

	// The same slot is now taken, even for another patient.
	otherToken := registerTestPatient(t)
	conflictResp := makeRequest("POST", fmt.Sprintf("/patient/doctors/%s/book", doctorID), map[string]string{
		"date": "2026-10-01",
		"time": "10:00",
	}, otherToken)
	assert.Equal(t, http.StatusConflict, conflictResp.Code)

	// The doctor sees it on the dashboard.
	docToken := loginAs(t, docUsername, docPassword)
	dashResp := makeRequest("GET", "/doctor/dashboard", nil, docToken)
	assert.True(t, dashResp.IsSuccess())
	assert.Contains(t, dashResp.RawData, appointmentID)

	// Completion records the treatment.
	completeResp := makeRequest("POST", fmt.Sprintf("/doctor/appointments/%s/complete", appointmentID), map[string]string{
		"diagnosis":    "seasonal flu",
		"prescription": "rest and fluids",
		"notes":        "recheck in a week",
	}, docToken)
	require.True(t, completeResp.IsSuccess(), "Failed to complete: %s", completeResp.Message)
	assert.Equal(t, "seasonal flu", completeResp.Data["diagnosis"])

	// Completing again overwrites the same treatment row.
	recompleteResp := makeRequest("POST", fmt.Sprintf("/doctor/appointments/%s/complete", appointmentID), map[string]string{
		"diagnosis": "pneumonia",
	}, docToken)
	require.True(t, recompleteResp.IsSuccess())
	assert.Equal(t, completeResp.GetString("id"), recompleteResp.GetString("id"))
	assert.Equal(t, "pneumonia", recompleteResp.Data["diagnosis"])

	// History shows it, newest first.
	historyResp := makeRequest("GET", "/patient/history", nil, patientToken)
	assert.True(t, historyResp.IsSuccess())
	assert.Contains(t, historyResp.RawData, appointmentID)
}

func TestCancelFreesSlot(t *testing.T) {
	doctorID, _, _ := createTestDoctor(t)
	patientToken := registerTestPatient(t)

	bookResp := makeRequest("POST", fmt.Sprintf("/patient/doctors/%s/book", doctorID), map[string]string{
		"date": "2026-10-02",
		"time": "11:00",
	}, patientToken)
	require.True(t, bookResp.IsSuccess(), "Failed to book: %s", bookResp.Message)
	appointmentID := bookResp.GetString("id")

	cancelResp := makeRequest("POST", fmt.Sprintf("/patient/appointments/%s/cancel", appointmentID), nil, patientToken)
	require.True(t, cancelResp.IsSuccess(), "Failed to cancel: %s", cancelResp.Message)
	assert.Equal(t, "Cancelled", cancelResp.Data["status"])

	// Cancelled rows no longer block the slot.
	rebookResp := makeRequest("POST", fmt.Sprintf("/patient/doctors/%s/book", doctorID), map[string]string{
		"date": "2026-10-02",
		"time": "11:00",
	}, patientToken)
	assert.True(t, rebookResp.IsSuccess(), "Failed to rebook: %s", rebookResp.Message)
}

func TestBookInvalidDate(t *testing.T) {
	doctorID, _, _ := createTestDoctor(t)
	patientToken := registerTestPatient(t)

	resp := makeRequest("POST", fmt.Sprintf("/patient/doctors/%s/book", doctorID), map[string]string{
		"date": "01-10-2026",
		"time": "10:00",
	}, patientToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestPatientDashboard(t *testing.T) {
	patientToken := registerTestPatient(t)

	resp := makeRequest("GET", "/patient/dashboard", nil, patientToken)
	assert.True(t, resp.IsSuccess(), "Failed to fetch dashboard: %s", resp.Message)

	_, hasDoctors := resp.Data["doctors"]
	_, hasAppointments := resp.Data["appointments"]
	assert.True(t, hasDoctors)
	assert.True(t, hasAppointments)
}
