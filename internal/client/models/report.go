package models

import (
	"fmt"
	"strings"
)

type ReportFormat string

const (
	ReportPDF   ReportFormat = "pdf"
	ReportExcel ReportFormat = "excel"
)

// ParseReportFormat accepts pdf, excel and the xlsx alias.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return ReportPDF, nil
	case "excel", "xlsx":
		return ReportExcel, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want pdf or excel)", s)
	}
}

// Report is a downloaded binary report.
type Report struct {
	Data        []byte
	ContentType string
	// FileName is set once the report is saved locally.
	FileName string
}
