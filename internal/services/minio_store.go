package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

// MinioReportStore keeps reports as objects in a MinIO bucket
type MinioReportStore struct {
	client MinioClient
	admin  MinioAdminClient
	bucket string
	now    func() time.Time
	log    logrus.FieldLogger
}

// NewMinioReportStore connects to MinIO. The admin client is optional; without
// it Usage falls back to listing the bucket.
func NewMinioReportStore(factory MinioClientFactory, creds Credentials, bucket string, log logrus.FieldLogger) (*MinioReportStore, error) {
	client, err := factory.NewClient(creds)
	if err != nil {
		return nil, fmt.Errorf("connect to minio: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("component", "minio_store")

	admin, err := factory.NewAdminClient(creds)
	if err != nil {
		log.WithError(err).Warn("admin client unavailable, usage will be computed by listing")
		admin = nil
	}

	return &MinioReportStore{
		client: client,
		admin:  admin,
		bucket: bucket,
		now:    time.Now,
		log:    log,
	}, nil
}

// EnsureBucket creates the reports bucket if it does not exist
func (s *MinioReportStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	s.log.WithField("bucket", s.bucket).Info("created reports bucket")
	return nil
}

func (s *MinioReportStore) List(ctx context.Context) ([]Report, error) {
	objects, err := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: false})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	reports := make([]Report, 0, len(objects))
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		report, ok := ParseReportName(obj.Key)
		if !ok {
			continue
		}
		report.Size = obj.Size
		report.Created = obj.LastModified
		reports = append(reports, report)
	}

	sortNewestFirst(reports)
	return reports, nil
}

func (s *MinioReportStore) Get(ctx context.Context, id string) (ReportContent, error) {
	if err := ValidateReportID(id); err != nil {
		return ReportContent{}, err
	}

	info, err := s.client.StatObject(ctx, s.bucket, id, minio.StatObjectOptions{})
	if err != nil {
		return ReportContent{}, notFoundOr(err, "stat report")
	}

	reader, _, err := s.client.GetObjectReader(ctx, s.bucket, id, minio.GetObjectOptions{})
	if err != nil {
		return ReportContent{}, notFoundOr(err, "get report")
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return ReportContent{}, fmt.Errorf("read report: %w", err)
	}

	report, ok := ParseReportName(id)
	if !ok {
		report = Report{ID: id}
	}
	report.Size = info.Size
	report.Created = info.LastModified
	return ReportContent{Report: report, Content: string(data)}, nil
}

func (s *MinioReportStore) Save(ctx context.Context, category, content string) (Report, error) {
	if err := ValidateCategory(category); err != nil {
		return Report{}, err
	}

	now := s.now()
	name := ReportName(category, now)
	_, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{})
	if err == nil {
		return Report{}, fmt.Errorf("%w: %s", ErrReportExists, name)
	}
	if err := notFoundOr(err, "stat report"); !errors.Is(err, ErrReportNotFound) {
		return Report{}, err
	}

	_, err = s.client.PutObject(ctx, s.bucket, name, strings.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/markdown; charset=utf-8",
	})
	if err != nil {
		return Report{}, fmt.Errorf("upload report: %w", err)
	}

	report, _ := ParseReportName(name)
	report.Size = int64(len(content))
	report.Created = now
	return report, nil
}

func (s *MinioReportStore) Delete(ctx context.Context, id string) error {
	if err := ValidateReportID(id); err != nil {
		return err
	}
	// RemoveObject succeeds for missing keys
	if _, err := s.client.StatObject(ctx, s.bucket, id, minio.StatObjectOptions{}); err != nil {
		return notFoundOr(err, "stat report")
	}
	if err := s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}

// Usage counts the reports by listing them. Bytes is what the bucket occupies
// when the server reports data usage, else the sum of the report sizes.
func (s *MinioReportStore) Usage(ctx context.Context) (Usage, error) {
	reports, err := s.List(ctx)
	if err != nil {
		return Usage{}, err
	}
	usage := sumUsage(reports)
	if size, ok := s.bucketSize(ctx); ok {
		usage.Bytes = size
	}
	return usage, nil
}

func (s *MinioReportStore) bucketSize(ctx context.Context) (int64, bool) {
	if s.admin == nil {
		return 0, false
	}
	info, err := s.admin.DataUsageInfo(ctx)
	if err != nil {
		s.log.WithError(err).Debug("data usage unavailable, summing report sizes")
		return 0, false
	}
	if u, ok := info.BucketsUsage[s.bucket]; ok {
		return int64(u.Size), true
	}
	if size, ok := info.BucketSizes[s.bucket]; ok {
		return int64(size), true
	}
	return 0, false
}

func notFoundOr(err error, op string) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) && (resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound) {
		return ErrReportNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

var _ ReportStore = (*MinioReportStore)(nil)
var _ ReportStore = (*FSReportStore)(nil)
