package reporter

import (
	"fmt"
	"strings"

	"github.com/AntTheLimey/ddldoc/internal/models"
)

// verdict summarises a report in one line. Only errors and warnings
// affect it.
func verdict(report *models.Report) (label, detail string) {
	errCount := report.ErrorCount()
	warnCount := report.WarningCount()
	switch {
	case errCount > 0:
		return "FAIL", fmt.Sprintf("%d error(s) must be resolved.", errCount)
	case warnCount > 0:
		return "PASS WITH WARNINGS", "No errors, but warnings should be reviewed."
	default:
		return "PASS", "No errors or warnings found."
	}
}

// mdCell escapes text for use inside a markdown table cell.
func mdCell(text string) string {
	text = strings.ReplaceAll(text, "|", `\|`)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
}

// RenderMarkdown renders the report as a markdown string.
func RenderMarkdown(report *models.Report) string {
	var b strings.Builder

	title := "Lint Report"
	if report.Mode == "drift" {
		title = "Drift Report"
	}
	fmt.Fprintf(&b, "# ddldoc: %s\n\n", title)
	fmt.Fprintf(&b, "- **Source:** %s\n", report.Source)
	if report.Target != "" {
		fmt.Fprintf(&b, "- **Target:** %s\n", report.Target)
	}
	fmt.Fprintf(&b, "- **Mode:** %s\n", report.Mode)
	fmt.Fprintf(&b, "- **Tables:** %d\n", report.Tables)
	fmt.Fprintf(&b, "- **Run Time:** %s\n\n", report.Timestamp.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Checks | Passed | Errors | Warnings | Notices | Info |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d | %d |\n\n",
		report.ChecksTotal(), report.ChecksPassed(),
		report.ErrorCount(), report.WarningCount(), report.NoticeCount(), report.InfoCount())

	label, detail := verdict(report)
	fmt.Fprintf(&b, "> **%s**: %s\n\n", label, detail)

	for _, entry := range buildSevCatMap(report.Findings()) {
		fmt.Fprintf(&b, "## %s\n\n", entry.severity)
		for _, cf := range entry.categories {
			fmt.Fprintf(&b, "### %s (%d)\n\n", cf.category, len(cf.findings))
			for _, f := range cf.findings {
				fmt.Fprintf(&b, "#### %s\n\n", f.Title)
				if f.ObjectName != "" {
					fmt.Fprintf(&b, "- **Object:** `%s`\n", f.ObjectName)
				}
				if f.Line > 0 {
					fmt.Fprintf(&b, "- **Line:** %d\n", f.Line)
				}
				fmt.Fprintf(&b, "- **Check:** %s\n\n", f.CheckName)
				fmt.Fprintf(&b, "%s\n\n", f.Detail)
				if f.Remediation != "" {
					fmt.Fprintf(&b, "**Remediation:** %s\n\n", f.Remediation)
				}
			}
		}
	}

	var failed []models.CheckResult
	for _, r := range report.Results {
		if r.Error != "" {
			failed = append(failed, r)
		}
	}
	if len(failed) > 0 {
		b.WriteString("## Errors\n\n")
		for _, r := range failed {
			fmt.Fprintf(&b, "- **%s/%s**: %s\n", r.Category, r.CheckName, r.Error)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "*Generated by %s v%s*\n", toolName, toolVersion)
	return b.String()
}
