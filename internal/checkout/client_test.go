package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession_RedirectURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req PaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ref-1", req.ReferenceID)
		assert.Equal(t, int64(990), req.Amount)

		json.NewEncoder(w).Encode(map[string]string{"redirect_url": "https://pay.example.com/s/123"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	url, err := client.CreateSession(context.Background(), &PaymentRequest{
		ReferenceID:   "ref-1",
		Amount:        990,
		Currency:      "PHP",
		CustomerEmail: "coach@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/s/123", url)
}

func TestCreateSession_PaymentURLFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"payment_url": "https://pay.example.com/alt"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	url, err := client.CreateSession(context.Background(), &PaymentRequest{ReferenceID: "ref-2", Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/alt", url)
}

func TestCreateSession_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.CreateSession(context.Background(), &PaymentRequest{ReferenceID: "ref-3", Amount: 1})
	assert.Error(t, err)
}

func TestCreateSession_NoRedirectURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.CreateSession(context.Background(), &PaymentRequest{ReferenceID: "ref-4", Amount: 1})
	assert.Error(t, err)
}

func TestCreateSession_NotConfigured(t *testing.T) {
	client := NewClient("", 5*time.Second)
	_, err := client.CreateSession(context.Background(), &PaymentRequest{ReferenceID: "ref-5", Amount: 1})
	assert.Error(t, err)
}
