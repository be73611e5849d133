package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReportKey(t *testing.T) {
	at := time.Date(2026, 10, 14, 15, 4, 5, 0, time.FixedZone("CEST", 2*3600))
	require.Equal(t, "reports/user-activities-20261014T130405Z.json", ReportKey(at))
}

func TestLoadMinIOConfig(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("MINIO_BUCKET", "")
	cfg := LoadMinIOConfig()
	require.False(t, cfg.Enabled())
	require.Equal(t, defaultBucket, cfg.Bucket)

	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_BUCKET", "reports")
	cfg = LoadMinIOConfig()
	require.True(t, cfg.Enabled())
	require.True(t, cfg.UseSSL)
	require.Equal(t, "reports", cfg.Bucket)
}

func TestNewMinIOStorageRequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), &MinIOConfig{})
	require.Error(t, err)
	_, err = NewMinIOStorage(context.Background(), nil)
	require.Error(t, err)
}

// Needs a live server; set MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY to run.
func TestPutReportIntegration(t *testing.T) {
	cfg := LoadMinIOConfig()
	if !cfg.Enabled() {
		t.Skip("MINIO_ENDPOINT not set")
	}
	ctx := context.Background()
	s, err := NewMinIOStorage(ctx, cfg)
	require.NoError(t, err)

	key, err := s.PutReport(ctx, time.Now(), []byte(`[]`))
	require.NoError(t, err)
	u, err := s.GetPresignedURL(ctx, key, time.Minute)
	require.NoError(t, err)
	require.Contains(t, u, key)
}
