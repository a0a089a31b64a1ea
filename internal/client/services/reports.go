package services

import (
	"context"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/dmitrijs2005/inmobix/internal/client/models"
	"github.com/dmitrijs2005/inmobix/internal/filex"
)

const reportTimestampLayout = "2006-01-02T15-04-05"

// DownloadReport fetches a report (all users when userID is empty) and
// saves it into the reports directory. It returns the report and the path
// of the written file.
func (u *userService) DownloadReport(ctx context.Context, userID string, format models.ReportFormat) (*models.Report, string, error) {
	if _, err := models.ParseReportFormat(string(format)); err != nil {
		return nil, "", err
	}
	userID = strings.TrimSpace(userID)

	report, err := u.api.DownloadReport(ctx, userID, format)
	if err != nil {
		return nil, "", fmt.Errorf("download report: %w", err)
	}

	base := "users_report"
	if userID != "" {
		base = "user_" + userID + "_report"
	}
	report.FileName = ReportFileName(base, ReportExtension(report.ContentType), u.now())

	path, err := filex.WriteFile(u.reportsDir, report.FileName, report.Data)
	if err != nil {
		return nil, "", fmt.Errorf("save report: %w", err)
	}

	u.log.Info(ctx, "report saved", "path", path, "bytes", len(report.Data))
	return report, path, nil
}

// ReportExtension maps a report content type to a file extension.
func ReportExtension(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.TrimSpace(contentType)
	}
	switch strings.ToLower(mt) {
	case "application/pdf":
		return "pdf"
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return "xlsx"
	case "application/vnd.ms-excel":
		return "xls"
	default:
		return "file"
	}
}

// ReportFileName builds <base>_<UTC timestamp>.<ext>.
func ReportFileName(base, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", base, at.UTC().Format(reportTimestampLayout), ext)
}
