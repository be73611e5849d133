package storage

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultBucket = "todo-reports"

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Enabled reports whether an endpoint was configured.
func (c *MinIOConfig) Enabled() bool {
	return c != nil && c.Endpoint != ""
}

// LoadMinIOConfig reads MINIO_* from the environment. Call config.LoadConfig
// first if values may come from .env.
func LoadMinIOConfig() *MinIOConfig {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_BUCKET", defaultBucket)

	return &MinIOConfig{
		Endpoint:  strings.TrimSpace(v.GetString("MINIO_ENDPOINT")),
		AccessKey: v.GetString("MINIO_ACCESS_KEY"),
		SecretKey: v.GetString("MINIO_SECRET_KEY"),
		UseSSL:    v.GetBool("MINIO_USE_SSL"),
		Bucket:    v.GetString("MINIO_BUCKET"),
	}
}

// ReportKey names the object for an activity report generated at t.
func ReportKey(t time.Time) string {
	return "reports/user-activities-" + t.UTC().Format("20060102T150405Z") + ".json"
}
