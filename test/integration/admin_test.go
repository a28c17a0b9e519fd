package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachdeck_backend/internal/models"
	"coachdeck_backend/test/helpers"
)

// TestCoachApprovalFlow: одобрение переводит PENDING-коуча в ACTIVE,
// после чего он логинится.
func TestCoachApprovalFlow(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	email := helpers.UniqueEmail("pending")
	coach := helpers.CreateUser(t, ts.DB.DB, "Pending Coach", email, "password123", models.UserRoleCoach, models.UserStatusPending)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/coaches/"+coach.ID+"/decision", adminToken, map[string]interface{}{
		"decision": "APPROVE",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "ACTIVE")

	helpers.Login(t, ts, email, "password123")
}

func TestCoachRejection(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	email := helpers.UniqueEmail("rejected")
	coach := helpers.CreateUser(t, ts.DB.DB, "Rejected Coach", email, "password123", models.UserRoleCoach, models.UserStatusPending)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/coaches/"+coach.ID+"/decision", adminToken, map[string]interface{}{
		"decision": "REJECT",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "DISABLED")

	// Отклоненный коуч не логинится.
	loginRes, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, loginRes.StatusCode)
}

// TestApproval_Idempotent: повторное решение не меняет состояние.
func TestApproval_Idempotent(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	coach := helpers.CreateUser(t, ts.DB.DB, "Twice Coach", helpers.UniqueEmail("twice"), "password123", models.UserRoleCoach, models.UserStatusPending)

	for i := 0; i < 2; i++ {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/coaches/"+coach.ID+"/decision", adminToken, map[string]interface{}{
			"decision": "APPROVE",
		})
		assert.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.Contains(t, body, "ACTIVE")
	}
}

func TestAdminRoutes_ForbiddenForCoach(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, _ := helpers.CreateAndLoginCoach(t, ts)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/users", coachToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestAdminDeleteUser_BlockedByOwnedResources(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	_, coach := helpers.CreateAndLoginCoach(t, ts)
	_, student := helpers.CreateAndLoginStudent(t, ts)
	helpers.CreateTestDeck(t, ts.DB.DB, coach.ID, student.ID, "Owned deck")

	res, body := ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/users/"+coach.ID, adminToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}

func TestAdminDeleteUser_CleanAccount(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	victim := helpers.CreateUser(t, ts.DB.DB, "Clean User", helpers.UniqueEmail("clean"), "password123", models.UserRoleStudent, models.UserStatusActive)

	res, body := ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/users/"+victim.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	var count int64
	require.NoError(t, ts.DB.DB.Model(&models.User{}).Where("id = ?", victim.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAdminConfigAndPricing(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/admin/config", adminToken, map[string]interface{}{
		"support_email": "support@coachdeck.local",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "support@coachdeck.local")

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/admin/pricing", adminToken, map[string]interface{}{
		"starter_amount": 990,
		"pro_amount":     2990,
		"currency":       "PHP",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/pricing", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "2990")
}
