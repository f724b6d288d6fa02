package objstore

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex-admin/internal/config"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(config.MinIOConfig{})
	assert.ErrorContains(t, err, "endpoint")

	_, err = NewClient(config.MinIOConfig{Endpoint: "localhost:9000"})
	assert.ErrorContains(t, err, "access_key")

	c, err := NewClient(config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)
	assert.Equal(t, "pokedex-seeds", c.Bucket())
}

func TestSnapshotKey(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	ts := time.Date(2024, 3, 5, 14, 7, 9, 123_000_000, loc)
	assert.Equal(t, "seeds/20240305T060709.123Z.json", SnapshotKey(ts))
}

func TestClient_ArchiveSnapshot(t *testing.T) {
	endpoint := os.Getenv("MINIO_TEST_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_TEST_ENDPOINT not set")
	}
	c, err := NewClient(config.MinIOConfig{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("MINIO_ROOT_USER"),
		SecretKey: os.Getenv("MINIO_ROOT_PASSWORD"),
		Bucket:    "pokedex-seeds-test",
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.EnsureBucket(ctx))

	key, err := c.ArchiveSnapshot(ctx, []byte(`{"results":[]}`))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Delete(ctx, key) })

	ok, err := c.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := c.Download(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[]}`, string(data))
}
