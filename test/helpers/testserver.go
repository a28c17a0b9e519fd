package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"coachdeck_backend/internal/app"
	"coachdeck_backend/internal/config"
)

// TestServer - общий сервер интеграционных тестов поверх тестовой базы
type TestServer struct {
	Server *httptest.Server
	DB     *DBHandle
}

// NewTestServer подключается к тестовой базе, прогоняет миграции
// и поднимает httptest-сервер с полным роутером приложения
func NewTestServer(t *testing.T) *TestServer {
	config.LoadConfig()
	cfg := config.GetConfig()

	db, err := app.OpenDatabase(cfg.Database.DSN)
	if err != nil {
		t.Fatalf("failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}

	router, err := app.SetupRouter(db)
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}

	return &TestServer{
		Server: httptest.NewServer(router),
		DB:     &DBHandle{DB: db},
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, err := ts.DB.DB.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// SendRequest шлет JSON-запрос и возвращает ответ вместе с телом
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBody)
}

// SendMultipart шлет файл в поле file multipart-формы
func (ts *TestServer) SendMultipart(t *testing.T, method, path, token, filename string, content []byte) (*http.Response, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBody)
}
