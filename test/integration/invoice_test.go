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

func createInvoiceViaAPI(t *testing.T, ts *helpers.TestServer, studentToken, coachID, planID string) *models.Invoice {
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/invoices", studentToken, map[string]interface{}{
		"coach_id": coachID,
		"plan_id":  planID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var parsed struct {
		Invoice models.Invoice `json:"invoice"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	require.NotEmpty(t, parsed.Invoice.ID)
	return &parsed.Invoice
}

// TestCreateInvoice_SnapshotsPlan: сумма и валюта копируются из тарифа,
// канал по умолчанию - банк.
func TestCreateInvoice_SnapshotsPlan(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	_, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)
	plan := helpers.CreateTestPlan(t, ts.DB.DB, coach.ID, 5000)
	helpers.EnableBankChannel(t, ts.DB.DB, coach.ID)

	invoice := createInvoiceViaAPI(t, ts, studentToken, coach.ID, plan.ID)
	assert.Equal(t, int64(5000), invoice.Amount)
	assert.Equal(t, "PHP", invoice.Currency)
	assert.Equal(t, models.ChannelBank, invoice.Channel)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)

	// Правка тарифа не трогает выставленный инвойс.
	require.NoError(t, ts.DB.DB.Model(&models.PaymentPlan{}).Where("id = ?", plan.ID).Update("amount", 9000).Error)

	var stored models.Invoice
	require.NoError(t, ts.DB.DB.First(&stored, "id = ?", invoice.ID).Error)
	assert.Equal(t, int64(5000), stored.Amount)
}

func TestCreateInvoice_NoChannels(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	_, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)
	plan := helpers.CreateTestPlan(t, ts.DB.DB, coach.ID, 3000)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/invoices", studentToken, map[string]interface{}{
		"coach_id": coach.ID,
		"plan_id":  plan.ID,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}

func TestCreateInvoice_InactivePlan(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	_, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)
	plan := helpers.CreateTestPlan(t, ts.DB.DB, coach.ID, 3000)
	helpers.EnableBankChannel(t, ts.DB.DB, coach.ID)
	require.NoError(t, ts.DB.DB.Model(&models.PaymentPlan{}).Where("id = ?", plan.ID).Update("active", false).Error)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/invoices", studentToken, map[string]interface{}{
		"coach_id": coach.ID,
		"plan_id":  plan.ID,
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestInvoiceStatus_CoachMutates(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)
	plan := helpers.CreateTestPlan(t, ts.DB.DB, coach.ID, 4500)
	helpers.EnableBankChannel(t, ts.DB.DB, coach.ID)

	invoice := createInvoiceViaAPI(t, ts, studentToken, coach.ID, plan.ID)

	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/invoices/"+invoice.ID+"/status", coachToken, map[string]interface{}{
		"status": "PAID",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "PAID")

	// Студент статус не двигает.
	studentRes, _ := ts.SendRequest(t, http.MethodPatch, "/api/v1/invoices/"+invoice.ID+"/status", studentToken, map[string]interface{}{
		"status": "CANCELED",
	})
	assert.Equal(t, http.StatusForbidden, studentRes.StatusCode)
}

// TestInvoice_ForeignMasked: чужой инвойс неотличим от несуществующего.
func TestInvoice_ForeignMasked(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	_, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)
	plan := helpers.CreateTestPlan(t, ts.DB.DB, coach.ID, 2000)
	helpers.EnableBankChannel(t, ts.DB.DB, coach.ID)

	invoice := createInvoiceViaAPI(t, ts, studentToken, coach.ID, plan.ID)

	outsiderToken, _ := helpers.CreateAndLoginStudent(t, ts)
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/invoices/"+invoice.ID, outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestInvoiceProofUpload: чек загружает студент инвойса,
// статус уходит в SUBMITTED.
func TestInvoiceProofUpload(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)
	plan := helpers.CreateTestPlan(t, ts.DB.DB, coach.ID, 1500)
	helpers.EnableBankChannel(t, ts.DB.DB, coach.ID)

	invoice := createInvoiceViaAPI(t, ts, studentToken, coach.ID, plan.ID)

	res, body := ts.SendMultipart(t, http.MethodPost, "/api/v1/invoices/"+invoice.ID+"/proof", studentToken,
		"receipt.png", []byte("fake image bytes"))
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "SUBMITTED")

	// Коуч чек не загружает.
	coachRes, _ := ts.SendMultipart(t, http.MethodPost, "/api/v1/invoices/"+invoice.ID+"/proof", coachToken,
		"receipt.png", []byte("fake image bytes"))
	assert.Equal(t, http.StatusForbidden, coachRes.StatusCode)
}

// TestInvoiceProof_SurvivesStatusChange: перевод статуса после загрузки
// чека не затирает proof_url.
func TestInvoiceProof_SurvivesStatusChange(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	coachToken, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)
	plan := helpers.CreateTestPlan(t, ts.DB.DB, coach.ID, 2500)
	helpers.EnableBankChannel(t, ts.DB.DB, coach.ID)

	invoice := createInvoiceViaAPI(t, ts, studentToken, coach.ID, plan.ID)

	res, body := ts.SendMultipart(t, http.MethodPost, "/api/v1/invoices/"+invoice.ID+"/proof", studentToken,
		"receipt.png", []byte("fake image bytes"))
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	statusRes, statusBody := ts.SendRequest(t, http.MethodPatch, "/api/v1/invoices/"+invoice.ID+"/status", coachToken, map[string]interface{}{
		"status": "UNDER_REVIEW",
	})
	require.Equal(t, http.StatusOK, statusRes.StatusCode, statusBody)

	getRes, getBody := ts.SendRequest(t, http.MethodGet, "/api/v1/invoices/"+invoice.ID, studentToken, nil)
	require.Equal(t, http.StatusOK, getRes.StatusCode)

	var parsed struct {
		Invoice models.Invoice `json:"invoice"`
	}
	require.NoError(t, json.Unmarshal([]byte(getBody), &parsed))
	assert.Equal(t, models.InvoiceStatusUnderReview, parsed.Invoice.Status)
	assert.NotEmpty(t, parsed.Invoice.ProofURL)
}

func TestCoachPlans_PublicListing(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	_, coach := helpers.CreateAndLoginCoach(t, ts)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)
	helpers.CreateTestPlan(t, ts.DB.DB, coach.ID, 7000)
	inactive := helpers.CreateTestPlan(t, ts.DB.DB, coach.ID, 100)
	require.NoError(t, ts.DB.DB.Model(&models.PaymentPlan{}).Where("id = ?", inactive.ID).Update("active", false).Error)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/coaches/"+coach.ID+"/plans", studentToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var parsed struct {
		Plans []models.PaymentPlan `json:"plans"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	for _, p := range parsed.Plans {
		assert.True(t, p.Active)
	}
}
