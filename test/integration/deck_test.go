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

// TestCreateDeck_ProvisionsStudent: создание деки новым email-ом
// заводит студенческий аккаунт и членство одной операцией.
func TestCreateDeck_ProvisionsStudent(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, _ := helpers.CreateAndLoginCoach(t, ts)
	studentEmail := helpers.UniqueEmail("newstudent")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/decks", coachToken, map[string]interface{}{
		"name":          "Algebra deck",
		"student_email": studentEmail,
		"student_name":  "Fresh Student",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Contains(t, body, "Algebra deck")

	var student models.User
	require.NoError(t, ts.DB.DB.First(&student, "email = ?", studentEmail).Error)
	assert.Equal(t, models.UserRoleStudent, student.Role)
	assert.Equal(t, models.UserStatusActive, student.Status)
}

// TestCreateDeck_ReusesExistingAccount: существующий аккаунт
// переиспользуется, дубликат не создается.
func TestCreateDeck_ReusesExistingAccount(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, _ := helpers.CreateAndLoginCoach(t, ts)
	_, student := helpers.CreateAndLoginStudent(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/decks", coachToken, map[string]interface{}{
		"name":          "Second deck",
		"student_email": student.Email,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	var count int64
	require.NoError(t, ts.DB.DB.Model(&models.User{}).Where("email = ?", student.Email).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateDeck_StudentForbidden(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/decks", studentToken, map[string]interface{}{
		"name":          "Not allowed",
		"student_email": helpers.UniqueEmail("other"),
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestGetDeck_ForeignDeckMasked: чужая дека отдается как 404, не 403.
func TestGetDeck_ForeignDeckMasked(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	_, coach := helpers.CreateAndLoginCoach(t, ts)
	_, student := helpers.CreateAndLoginStudent(t, ts)
	deck := helpers.CreateTestDeck(t, ts.DB.DB, coach.ID, student.ID, "Private deck")

	outsiderToken, _ := helpers.CreateAndLoginCoach(t, ts)
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/decks/"+deck.ID, outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestGetDeck_VisibleToParticipantsAndAdmin(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	deck := helpers.CreateTestDeck(t, ts.DB.DB, coach.ID, student.ID, "Shared deck")

	for _, token := range []string{coachToken, studentToken, adminToken} {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/decks/"+deck.ID, token, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.Contains(t, body, "Shared deck")
	}
}

func TestListDecks_ScopedToActor(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, coach := helpers.CreateAndLoginCoach(t, ts)
	_, student := helpers.CreateAndLoginStudent(t, ts)
	helpers.CreateTestDeck(t, ts.DB.DB, coach.ID, student.ID, "Mine")

	otherCoachToken, _ := helpers.CreateAndLoginCoach(t, ts)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/decks", coachToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Mine")

	var parsed struct {
		Decks []models.Deck `json:"decks"`
	}
	_, otherBody := ts.SendRequest(t, http.MethodGet, "/api/v1/decks", otherCoachToken, nil)
	require.NoError(t, json.Unmarshal([]byte(otherBody), &parsed))
	for _, d := range parsed.Decks {
		assert.NotEqual(t, "Mine", d.Name)
	}
}

func TestDeckDocuments_CoachOnly(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	deck := helpers.CreateTestDeck(t, ts.DB.DB, coach.ID, student.ID, "Docs deck")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/decks/"+deck.ID+"/documents", coachToken, map[string]interface{}{
		"title": "Syllabus",
		"url":   "https://example.com/syllabus.pdf",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	// Студент видит документы, но не управляет ими.
	listRes, listBody := ts.SendRequest(t, http.MethodGet, "/api/v1/decks/"+deck.ID+"/documents", studentToken, nil)
	assert.Equal(t, http.StatusOK, listRes.StatusCode)
	assert.Contains(t, listBody, "Syllabus")

	addRes, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/decks/"+deck.ID+"/documents", studentToken, map[string]interface{}{
		"title": "Student doc",
		"url":   "https://example.com/other.pdf",
	})
	assert.Equal(t, http.StatusForbidden, addRes.StatusCode)
}

// TestAddDocument_WithoutURL: ссылка необязательна,
// документ-заметка из одного заголовка валиден.
func TestAddDocument_WithoutURL(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, coach := helpers.CreateAndLoginCoach(t, ts)
	_, student := helpers.CreateAndLoginStudent(t, ts)
	deck := helpers.CreateTestDeck(t, ts.DB.DB, coach.ID, student.ID, "Notes deck")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/decks/"+deck.ID+"/documents", coachToken, map[string]interface{}{
		"title": "Homework reminder",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	var parsed struct {
		Document models.Document `json:"document"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	assert.Equal(t, "Homework reminder", parsed.Document.Title)
	assert.Empty(t, parsed.Document.URL)
}
