// activity-report prints the per-user activity summaries as JSON, or a single
// user's detail with -user. With -upload and MINIO_ENDPOINT set, the report is
// stored in the bucket and a presigned link is printed instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Madhulr/to-do-Bend/internal/activity"
	"github.com/Madhulr/to-do-Bend/internal/config"
	"github.com/Madhulr/to-do-Bend/internal/storage"
	"github.com/Madhulr/to-do-Bend/internal/store"
	"github.com/Madhulr/to-do-Bend/pkg/logger"
)

type options struct {
	user    string
	upload  bool
	expires time.Duration
}

// uploader is the part of storage.MinIOStorage the report needs.
type uploader interface {
	PutReport(ctx context.Context, at time.Time, data []byte) (string, error)
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

func main() {
	var opts options
	flag.StringVar(&opts.user, "user", "", "report a single user's detail instead of all summaries")
	flag.BoolVar(&opts.upload, "upload", false, "upload the report to MinIO and print a presigned URL")
	flag.DurationVar(&opts.expires, "expires", 24*time.Hour, "presigned URL lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		logger.Fatalf("open %s store: %v", cfg.Store.Backend, err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	var up uploader
	if opts.upload {
		mcfg := storage.LoadMinIOConfig()
		if !mcfg.Enabled() {
			logger.Fatalf("-upload needs MINIO_ENDPOINT")
		}
		s, err := storage.NewMinIOStorage(ctx, mcfg)
		if err != nil {
			logger.Fatalf("minio: %v", err)
		}
		up = s
	}

	if err := run(ctx, activity.NewService(st, st, nil), up, opts, os.Stdout); err != nil {
		logger.Fatalf("activity report: %v", err)
	}
}

// run writes the report to out, or uploads it when up is non-nil.
func run(ctx context.Context, svc *activity.Service, up uploader, opts options, out io.Writer) error {
	var report any
	if opts.user != "" {
		d, err := svc.Detail(ctx, opts.user)
		if err != nil {
			return err
		}
		report = d
	} else {
		list, err := svc.ListAll(ctx)
		if err != nil {
			return err
		}
		report = list
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if up == nil {
		_, err := fmt.Fprintln(out, string(data))
		return err
	}
	key, err := up.PutReport(ctx, time.Now(), data)
	if err != nil {
		return err
	}
	logger.Infow("activity report uploaded", "key", key, "bytes", len(data))
	link, err := up.GetPresignedURL(ctx, key, opts.expires)
	if err != nil {
		return fmt.Errorf("presign %s: %w", key, err)
	}
	_, err = fmt.Fprintln(out, link)
	return err
}
