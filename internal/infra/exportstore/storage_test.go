package exportstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/darkroompro/devcalc/internal/domain/export"
)

func TestMemoryStoragePutGet(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	data := []byte(`{"ok":true}`)
	obj, err := store.Put(ctx, "exports/a.json", data, "application/json")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), obj.Size)
	require.Len(t, obj.ETag, 32)

	data[0] = 'X'
	body, err := store.Get(ctx, "exports/a.json")
	require.NoError(t, err)
	got, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, `{"ok":true}`, string(got))

	_, err = store.Get(ctx, "exports/missing.json")
	require.ErrorIs(t, err, export.ErrObjectNotFound)
}

func TestSanitizeEndpoint(t *testing.T) {
	cases := map[string]string{
		"https://acct.r2.cloudflarestorage.com":        "acct.r2.cloudflarestorage.com",
		"http://localhost:9000/bucket":                 "localhost:9000",
		"  minio.internal:9000 ":                       "minio.internal:9000",
		"https://acct.r2.cloudflarestorage.com/a/b/c/": "acct.r2.cloudflarestorage.com",
	}
	for in, want := range cases {
		require.Equal(t, want, sanitizeEndpoint(in), in)
	}
}
