package integration_test

import (
	"os"
	"sync"
	"testing"

	"coachdeck_backend/test/helpers"
)

var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer возвращает общий тестовый сервер.
// Без DATABASE_URL интеграционные тесты пропускаются.
func GetTestServer(t *testing.T) *helpers.TestServer {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL is not set, skipping integration tests")
	}

	serverOnce.Do(func() {
		if os.Getenv("JWT_SECRET") == "" {
			os.Setenv("JWT_SECRET", "integration-test-secret")
		}
		os.Setenv("SERVER_ENV", "test")

		globalTestServer = helpers.NewTestServer(t)
	})
	return globalTestServer
}

func TestMain(m *testing.M) {
	code := m.Run()

	if globalTestServer != nil {
		globalTestServer.Close()
	}
	os.Exit(code)
}
