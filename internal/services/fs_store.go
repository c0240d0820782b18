package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FSReportStore keeps reports as Markdown files in a directory
type FSReportStore struct {
	dir string
	now func() time.Time
}

// NewFSReportStore creates the directory if needed
func NewFSReportStore(dir string) (*FSReportStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}
	return &FSReportStore{dir: dir, now: time.Now}, nil
}

func (s *FSReportStore) List(ctx context.Context) ([]Report, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	reports := make([]Report, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		report, ok := ParseReportName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed while listing
			continue
		}
		report.Size = info.Size()
		report.Created = info.ModTime()
		reports = append(reports, report)
	}

	sortNewestFirst(reports)
	return reports, nil
}

func (s *FSReportStore) Get(ctx context.Context, id string) (ReportContent, error) {
	if err := ValidateReportID(id); err != nil {
		return ReportContent{}, err
	}

	path := filepath.Join(s.dir, id)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return ReportContent{}, ErrReportNotFound
		}
		return ReportContent{}, fmt.Errorf("stat report: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ReportContent{}, fmt.Errorf("read report: %w", err)
	}

	report, ok := ParseReportName(id)
	if !ok {
		report = Report{ID: id}
	}
	report.Size = info.Size()
	report.Created = info.ModTime()
	return ReportContent{Report: report, Content: string(data)}, nil
}

func (s *FSReportStore) Save(ctx context.Context, category, content string) (Report, error) {
	if err := ValidateCategory(category); err != nil {
		return Report{}, err
	}

	name := ReportName(category, s.now())
	path := filepath.Join(s.dir, name)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return Report{}, fmt.Errorf("%w: %s", ErrReportExists, name)
	}
	if err != nil {
		return Report{}, fmt.Errorf("create report: %w", err)
	}
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return Report{}, fmt.Errorf("write report: %w", err)
	}
	if err := file.Close(); err != nil {
		return Report{}, fmt.Errorf("write report: %w", err)
	}

	report, _ := ParseReportName(name)
	report.Size = int64(len(content))
	report.Created = s.now()
	return report, nil
}

func (s *FSReportStore) Delete(ctx context.Context, id string) error {
	if err := ValidateReportID(id); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, id))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrReportNotFound
	}
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}

func (s *FSReportStore) Usage(ctx context.Context) (Usage, error) {
	reports, err := s.List(ctx)
	if err != nil {
		return Usage{}, err
	}
	return sumUsage(reports), nil
}

func sumUsage(reports []Report) Usage {
	u := Usage{Reports: len(reports)}
	for _, r := range reports {
		u.Bytes += r.Size
	}
	return u
}
