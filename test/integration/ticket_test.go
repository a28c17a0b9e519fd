package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachdeck_backend/internal/models"
	"coachdeck_backend/test/helpers"
)

func createTicketViaAPI(t *testing.T, ts *helpers.TestServer, token, deckID, title string) string {
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/decks/"+deckID+"/tickets", token, map[string]interface{}{
		"title": title,
		"body":  "Please take a look",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var parsed struct {
		Ticket models.Ticket `json:"ticket"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	require.NotEmpty(t, parsed.Ticket.ID)
	return parsed.Ticket.ID
}

func TestTicketFlow(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	deck := helpers.CreateTestDeck(t, ts.DB.DB, coach.ID, student.ID, "Ticket deck")

	ticketID := createTicketViaAPI(t, ts, studentToken, deck.ID, "Homework question")

	// Новый тикет открыт.
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/tickets/"+ticketID, studentToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, string(models.TicketStatusOpen))

	// Коуч двигает статус.
	statusRes, statusBody := ts.SendRequest(t, http.MethodPatch, "/api/v1/tickets/"+ticketID+"/status", coachToken, map[string]interface{}{
		"status": "IN_PROGRESS",
	})
	assert.Equal(t, http.StatusOK, statusRes.StatusCode, statusBody)
	assert.Contains(t, statusBody, "IN_PROGRESS")

	// Событие тикета породило уведомление у контрагента.
	var notifCount int64
	require.NoError(t, ts.DB.DB.Model(&models.Notification{}).
		Where("user_id = ?", coach.ID).Count(&notifCount).Error)
	assert.Greater(t, notifCount, int64(0))
}

// TestTicketStatus_StudentForbidden: студент не двигает статус,
// даже своего тикета.
func TestTicketStatus_StudentForbidden(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	_, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	deck := helpers.CreateTestDeck(t, ts.DB.DB, coach.ID, student.ID, "Student deck")

	ticketID := createTicketViaAPI(t, ts, studentToken, deck.ID, "My own ticket")

	res, _ := ts.SendRequest(t, http.MethodPatch, "/api/v1/tickets/"+ticketID+"/status", studentToken, map[string]interface{}{
		"status": "RESOLVED",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestTicketStatus_InvalidValue(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, coach := helpers.CreateAndLoginCoach(t, ts)
	_, student := helpers.CreateAndLoginStudent(t, ts)
	deck := helpers.CreateTestDeck(t, ts.DB.DB, coach.ID, student.ID, "Status deck")

	ticketID := createTicketViaAPI(t, ts, coachToken, deck.ID, "Status check")

	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/tickets/"+ticketID+"/status", coachToken, map[string]interface{}{
		"status": "DONE",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

// TestTicket_ForeignMasked: тикет в чужой деке отдается как 404.
func TestTicket_ForeignMasked(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, coach := helpers.CreateAndLoginCoach(t, ts)
	_, student := helpers.CreateAndLoginStudent(t, ts)
	deck := helpers.CreateTestDeck(t, ts.DB.DB, coach.ID, student.ID, "Hidden deck")

	ticketID := createTicketViaAPI(t, ts, coachToken, deck.ID, "Hidden ticket")

	outsiderToken, _ := helpers.CreateAndLoginStudent(t, ts)
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/tickets/"+ticketID, outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestTicketComments(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	deck := helpers.CreateTestDeck(t, ts.DB.DB, coach.ID, student.ID, "Comment deck")

	ticketID := createTicketViaAPI(t, ts, studentToken, deck.ID, "Discussion")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/tickets/"+ticketID+"/comments", coachToken, map[string]interface{}{
		"body": "Looking into it",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/tickets/"+ticketID+"/comments", studentToken, map[string]interface{}{
		"body": "Thanks!",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	listRes, listBody := ts.SendRequest(t, http.MethodGet, "/api/v1/tickets/"+ticketID+"/comments", studentToken, nil)
	assert.Equal(t, http.StatusOK, listRes.StatusCode)
	assert.Contains(t, listBody, "Looking into it")
	assert.Contains(t, listBody, "Thanks!")
}
