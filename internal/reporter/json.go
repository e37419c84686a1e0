package reporter

import (
	"encoding/json"

	"github.com/AntTheLimey/ddldoc/internal/models"
)

type reportData struct {
	Meta    reportMeta     `json:"meta" yaml:"meta"`
	Summary reportSummary  `json:"summary" yaml:"summary"`
	Results []reportResult `json:"results" yaml:"results"`
}

type reportMeta struct {
	Tool      string `json:"tool" yaml:"tool"`
	Version   string `json:"version" yaml:"version"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Source    string `json:"source" yaml:"source"`
	Target    string `json:"target,omitempty" yaml:"target,omitempty"`
	Mode      string `json:"mode" yaml:"mode"`
	Tables    int    `json:"tables" yaml:"tables"`
}

type reportSummary struct {
	TotalChecks  int `json:"total_checks" yaml:"total_checks"`
	ChecksPassed int `json:"checks_passed" yaml:"checks_passed"`
	Errors       int `json:"errors" yaml:"errors"`
	Warnings     int `json:"warnings" yaml:"warnings"`
	Notices      int `json:"notices" yaml:"notices"`
	Info         int `json:"info" yaml:"info"`
}

type reportResult struct {
	CheckName   string          `json:"check_name" yaml:"check_name"`
	Category    string          `json:"category" yaml:"category"`
	Description string          `json:"description" yaml:"description"`
	Passed      bool            `json:"passed" yaml:"passed"`
	Error       *string         `json:"error" yaml:"error"`
	Findings    []reportFinding `json:"findings" yaml:"findings"`
}

type reportFinding struct {
	Severity    string         `json:"severity" yaml:"severity"`
	Title       string         `json:"title" yaml:"title"`
	Detail      string         `json:"detail" yaml:"detail"`
	ObjectName  string         `json:"object_name" yaml:"object_name"`
	Line        int            `json:"line,omitempty" yaml:"line,omitempty"`
	Remediation string         `json:"remediation" yaml:"remediation"`
	Metadata    map[string]any `json:"metadata" yaml:"metadata"`
}

// buildReportData flattens a report into the shape shared by the JSON and
// YAML renderers.
func buildReportData(report *models.Report) reportData {
	data := reportData{
		Meta: reportMeta{
			Tool:      toolName,
			Version:   toolVersion,
			Timestamp: report.Timestamp.Format("2006-01-02T15:04:05-07:00"),
			Source:    report.Source,
			Target:    report.Target,
			Mode:      report.Mode,
			Tables:    report.Tables,
		},
		Summary: reportSummary{
			TotalChecks:  report.ChecksTotal(),
			ChecksPassed: report.ChecksPassed(),
			Errors:       report.ErrorCount(),
			Warnings:     report.WarningCount(),
			Notices:      report.NoticeCount(),
			Info:         report.InfoCount(),
		},
		Results: make([]reportResult, 0, len(report.Results)),
	}

	for _, r := range report.Results {
		entry := reportResult{
			CheckName:   r.CheckName,
			Category:    r.Category,
			Description: r.Description,
			Passed:      len(r.Findings) == 0 && r.Error == "",
			Findings:    make([]reportFinding, 0, len(r.Findings)),
		}
		if r.Error != "" {
			errStr := r.Error
			entry.Error = &errStr
		}

		for _, f := range r.Findings {
			meta := f.Metadata
			if meta == nil {
				meta = make(map[string]any)
			}
			entry.Findings = append(entry.Findings, reportFinding{
				Severity:    f.Severity.String(),
				Title:       f.Title,
				Detail:      f.Detail,
				ObjectName:  f.ObjectName,
				Line:        f.Line,
				Remediation: f.Remediation,
				Metadata:    meta,
			})
		}

		data.Results = append(data.Results, entry)
	}
	return data
}

// RenderJSON renders the report as a JSON string.
func RenderJSON(report *models.Report) string {
	out, _ := json.MarshalIndent(buildReportData(report), "", "  ")
	return string(out)
}
