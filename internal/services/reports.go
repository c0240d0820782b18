package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/damacus/newsdesk/internal/notify"
	"github.com/minio/minio-go/v7"
)

var (
	// ErrReportNotFound is returned when a report id does not exist
	ErrReportNotFound = errors.New("report not found")
	// ErrInvalidReportID is returned for ids that are not plain report file names
	ErrInvalidReportID = errors.New("invalid report id")
	// ErrInvalidCategory is returned for categories that cannot be used in a report name
	ErrInvalidCategory = errors.New("invalid report category")
	// ErrReportExists is returned when a report with the same name was already saved
	ErrReportExists = errors.New("report already exists")
)

const (
	reportExt       = ".md"
	reportMarker    = "report"
	reportTimestamp = "20060102_150405"
)

// Report describes a stored analysis report
type Report struct {
	ID       string
	Category string
	Date     string
	Time     string
	Size     int64
	Created  time.Time
}

// Timestamp returns the generation time encoded in the report name (e.g. "20240305_140709")
func (r Report) Timestamp() string {
	return r.Date + "_" + r.Time
}

// ReportContent is a report together with its Markdown body
type ReportContent struct {
	Report
	Content string
}

// Usage summarizes what the reports occupy
type Usage struct {
	Bytes   int64
	Reports int
}

// ReportStore lists, reads, writes and removes reports
type ReportStore interface {
	List(ctx context.Context) ([]Report, error)
	Get(ctx context.Context, id string) (ReportContent, error)
	Save(ctx context.Context, category, content string) (Report, error)
	Delete(ctx context.Context, id string) error
	Usage(ctx context.Context) (Usage, error)
}

// ReportName builds the file name of a report generated at t
func ReportName(category string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s%s", category, reportMarker, t.Format(reportTimestamp), reportExt)
}

// ParseReportName reads the metadata encoded in a report file name
// ("<category>_report_<date>_<time>.md"). Names with fewer than four parts are rejected.
func ParseReportName(name string) (Report, bool) {
	if !strings.HasSuffix(name, reportExt) {
		return Report{}, false
	}
	parts := strings.Split(name, "_")
	if len(parts) < 4 {
		return Report{}, false
	}
	return Report{
		ID:       name,
		Category: parts[0],
		Date:     parts[2],
		Time:     strings.TrimSuffix(parts[3], reportExt),
	}, true
}

// ValidateReportID rejects ids that could escape the report directory
func ValidateReportID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") || !strings.HasSuffix(id, reportExt) {
		return fmt.Errorf("%w: %q", ErrInvalidReportID, id)
	}
	return nil
}

// ValidateCategory checks a category can be encoded in a report name
func ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" || strings.ContainsAny(category, `_/\`) || strings.Contains(category, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return nil
}

// sortNewestFirst orders reports by creation time, newest first
func sortNewestFirst(reports []Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Created.After(reports[j].Created)
	})
}

// ClassifyError decides which kind of failure err is, for display
func ClassifyError(err error) notify.Failure {
	if err == nil {
		return nil
	}

	var failure notify.Failure
	if errors.As(err, &failure) {
		return failure
	}

	switch {
	case errors.Is(err, ErrReportNotFound):
		return notify.ResponseFailure{Status: http.StatusNotFound, Message: "report not found", Err: err}
	case errors.Is(err, ErrReportExists):
		return notify.ResponseFailure{Status: http.StatusConflict, Message: "a report with this name already exists, try again in a second", Err: err}
	case errors.Is(err, ErrInvalidReportID), errors.Is(err, ErrInvalidCategory):
		return notify.LocalFailure{Message: err.Error(), Err: err}
	}

	var resp minio.ErrorResponse
	if errors.As(err, &resp) && resp.StatusCode != 0 {
		return notify.ResponseFailure{Status: resp.StatusCode, Message: resp.Message, Err: err}
	}

	// context errors satisfy net.Error too
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return notify.LocalFailure{Message: "request timed out", Err: err}
	case errors.Is(err, context.Canceled):
		return notify.LocalFailure{Message: "request cancelled", Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return notify.NoResponseFailure{Err: err}
	}

	return notify.LocalFailure{Message: err.Error(), Err: err}
}
