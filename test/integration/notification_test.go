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

func seedNotification(t *testing.T, ts *helpers.TestServer, userID, title string) *models.Notification {
	n := &models.Notification{
		UserID:  userID,
		Type:    "test_event",
		Title:   title,
		Message: "something happened",
	}
	require.NoError(t, ts.DB.DB.Create(n).Error)
	return n
}

func TestNotifications_ListAndRead(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginStudent(t, ts)
	n := seedNotification(t, ts, user.ID, "Hello bell")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Hello bell")

	countRes, countBody := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", token, nil)
	assert.Equal(t, http.StatusOK, countRes.StatusCode)
	var counts struct {
		Unread int64 `json:"unread"`
	}
	require.NoError(t, json.Unmarshal([]byte(countBody), &counts))
	assert.Equal(t, int64(1), counts.Unread)

	readRes, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/"+n.ID+"/read", token, nil)
	assert.Equal(t, http.StatusOK, readRes.StatusCode)

	_, afterBody := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", token, nil)
	require.NoError(t, json.Unmarshal([]byte(afterBody), &counts))
	assert.Equal(t, int64(0), counts.Unread)
}

// TestNotifications_ForeignReadMasked: чужое уведомление пометить нельзя.
func TestNotifications_ForeignReadMasked(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	_, owner := helpers.CreateAndLoginStudent(t, ts)
	n := seedNotification(t, ts, owner.ID, "Private bell")

	outsiderToken, _ := helpers.CreateAndLoginStudent(t, ts)
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/"+n.ID+"/read", outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestNotifications_MarkAllRead(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginStudent(t, ts)
	seedNotification(t, ts, user.ID, "First")
	seedNotification(t, ts, user.ID, "Second")

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/read-all", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var unread int64
	require.NoError(t, ts.DB.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", user.ID).Count(&unread).Error)
	assert.Equal(t, int64(0), unread)
}
