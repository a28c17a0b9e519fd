package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client - клиент внешнего checkout-провайдера.
// Контракт: POST на настроенный webhook URL, в ответе JSON с redirect URL.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// PaymentRequest - тело запроса к провайдеру.
type PaymentRequest struct {
	ReferenceID   string `json:"reference_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Description   string `json:"description"`
	CustomerEmail string `json:"customer_email"`
}

type paymentResponse struct {
	RedirectURL string `json:"redirect_url"`
	PaymentURL  string `json:"payment_url"`
}

func NewClient(webhookURL string, timeout time.Duration) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateSession отправляет платежный запрос и возвращает redirect URL.
// Не-2xx ответ или пустой URL считаются ошибкой провайдера (502 наружу).
func (c *Client) CreateSession(ctx context.Context, req *PaymentRequest) (string, error) {
	if c.webhookURL == "" {
		return "", fmt.Errorf("checkout webhook URL is not configured")
	}

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to reach checkout provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read checkout response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("checkout provider returned status %d", resp.StatusCode)
	}

	var parsed paymentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse checkout response: %w", err)
	}

	url := parsed.RedirectURL
	if url == "" {
		url = parsed.PaymentURL
	}
	if url == "" {
		return "", fmt.Errorf("checkout response contains no redirect URL")
	}
	return url, nil
}
