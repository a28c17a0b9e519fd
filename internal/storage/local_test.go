package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "/api/v1/files",
	})
	require.NoError(t, err)
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "proofs/inv-1/receipt.png", strings.NewReader("payload")))

	reader, err := s.Get(ctx, "proofs/inv-1/receipt.png")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestExistsAndDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a/b.txt", strings.NewReader("x")))

	exists, err := s.Exists(ctx, "a/b.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Delete(ctx, "a/b.txt"))

	exists, err = s.Exists(ctx, "a/b.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	// Повторное удаление не ошибка.
	assert.NoError(t, s.Delete(ctx, "a/b.txt"))
}

// TestPathEscape: ключи с обходом каталога остаются внутри корня
// либо отклоняются, наружу выйти нельзя.
func TestPathEscape(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, key := range []string{
		"../outside.txt",
		"../../etc/passwd",
		"a/../../../outside.txt",
	} {
		_, err := s.Get(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestGetURL(t *testing.T) {
	s := newTestStorage(t)
	assert.Equal(t, "/api/v1/files/proofs/x.png", s.GetURL("proofs/x.png"))
	assert.Equal(t, "/api/v1/files/proofs/x.png", s.GetURL("/proofs/x.png"))
}
