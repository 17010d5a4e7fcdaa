package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"modboard/domain/core"
	"modboard/domain/stats"
	"modboard/internal"
	"modboard/internal/errors"
	"modboard/internal/metrics"
	"modboard/internal/report"
	"modboard/ports"
)

var exportFailureMessages = map[report.Format]string{
	report.FormatCSV:      "Ошибка при экспорте в CSV. Пожалуйста, попробуйте еще раз.",
	report.FormatDetailed: "Ошибка при экспорте подробного отчета. Пожалуйста, попробуйте еще раз.",
	report.FormatXLSX:     "Ошибка при экспорте в XLSX. Пожалуйста, попробуйте еще раз.",
}

// ExportService renders reports from export snapshots
type ExportService struct {
	exporter *report.Exporter
	workbook ports.WorkbookRenderer
	metrics  *metrics.Recorder
	logger   *internal.Logger
}

// NewExportService creates an export service
func NewExportService(exporter *report.Exporter, workbook ports.WorkbookRenderer, recorder *metrics.Recorder, logger *internal.Logger) *ExportService {
	if exporter == nil {
		exporter = report.NewExporter()
	}
	if logger == nil {
		logger = internal.Discard
	}
	return &ExportService{exporter: exporter, workbook: workbook, metrics: recorder, logger: logger.With("ExportService")}
}

// Export renders a complete report in memory. On failure nothing is
// returned and the error carries a single user-facing message.
func (s *ExportService) Export(ctx context.Context, f report.Format, data stats.ExportData) (rep *report.Report, err error) {
	defer func() { s.metrics.CountExport(string(f), err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := report.ReportName(data.Period)
	switch f {
	case report.FormatCSV:
		rep, err = s.exporter.CSV(data, base)
	case report.FormatDetailed:
		rep, err = s.exporter.Detailed(data, base)
	case report.FormatXLSX:
		rep, err = s.xlsx(data, base)
	default:
		return nil, fmt.Errorf("export %q: %w", f, core.ErrUnknownFormat)
	}
	if err != nil {
		s.logger.Error("%s export of %s failed: %v", f, data.Period, err)
		return nil, errors.ExportFailed(exportFailureMessages[f], err)
	}

	s.logger.Info("exported %s (%d bytes)", rep.Filename, len(rep.Body))
	return rep, nil
}

func (s *ExportService) xlsx(data stats.ExportData, base string) (*report.Report, error) {
	if s.workbook == nil {
		return nil, fmt.Errorf("no workbook renderer configured")
	}
	generated := s.exporter.Time()

	body, err := s.workbook.Write(data, stats.SummarizeActivity(data.Activity), generated)
	if err != nil {
		return nil, err
	}
	return &report.Report{
		Format:      report.FormatXLSX,
		Filename:    report.Filename(report.FormatXLSX, base, generated),
		ContentType: report.ContentTypeXLSX,
		Body:        body,
	}, nil
}

// ExportToFile renders a report into dir and returns the written path. The
// file appears under its final name only once fully written.
func (s *ExportService) ExportToFile(ctx context.Context, f report.Format, data stats.ExportData, dir string) (string, error) {
	rep, err := s.Export(ctx, f, data)
	if err != nil {
		return "", err
	}

	target := filepath.Join(dir, rep.Filename)
	if err := writeAtomic(target, rep.Body); err != nil {
		s.logger.Error("writing %s failed: %v", target, err)
		return "", errors.ExportFailed(exportFailureMessages[f], err)
	}
	return target, nil
}

func writeAtomic(path string, body []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
