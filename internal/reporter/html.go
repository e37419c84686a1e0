package reporter

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/AntTheLimey/ddldoc/internal/models"
)

const htmlCSS = `
*, *::before, *::after { box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    margin: 0; padding: 0; color: #333; line-height: 1.6; background: #f9fafb;
}
.sidebar {
    position: fixed; top: 0; left: 0; width: 250px; height: 100vh;
    background: #1f2937; color: #e5e7eb; overflow-y: auto; padding: 20px 0;
}
.sidebar-header {
    padding: 0 20px 16px; border-bottom: 1px solid #374151;
    margin-bottom: 8px; font-size: 0.85em; color: #9ca3af;
}
.sidebar-header strong { color: #f9fafb; font-size: 1.15em; }
.nav-group { padding: 8px 20px 2px; font-weight: 600; font-size: 0.9em; }
.nav-link {
    display: block; padding: 4px 20px 4px 36px; color: #d1d5db;
    text-decoration: none; font-size: 0.82em;
}
.nav-link:hover { background: #374151; color: #f9fafb; }
.nav-count { color: #6b7280; margin-left: 4px; }
.main { margin-left: 250px; padding: 32px 40px; max-width: 1000px; }
h1 { border-bottom: 3px solid #0f766e; padding-bottom: 10px; margin-top: 0; }
h2 { color: #115e59; margin-top: 2.2em; }
h3 { color: #374151; margin-top: 1.4em; }
h4 { color: #4b5563; margin-bottom: 4px; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
th, td { border: 1px solid #d1d5db; padding: 8px 12px; text-align: left; }
th { background: #f3f4f6; }
code { background: #f3f4f6; padding: 2px 6px; border-radius: 3px; font-size: 0.9em; }
blockquote { border-left: 4px solid #0f766e; margin: 1em 0; padding: 8px 16px; background: #f0fdfa; }
.badge { display: inline-block; padding: 2px 10px; border-radius: 4px;
         font-size: 0.8em; font-weight: bold; color: white; }
.badge-error { background: #dc2626; }
.badge-warning { background: #d97706; }
.badge-notice { background: #0891b2; }
.badge-info { background: #2563eb; }
.summary-box { display: flex; gap: 16px; flex-wrap: wrap; margin: 1em 0; }
.summary-card { border: 1px solid #d1d5db; border-radius: 8px; padding: 14px 22px;
                text-align: center; min-width: 100px; background: white; }
.summary-card .number { font-size: 2em; font-weight: bold; }
.summary-card.error .number { color: #dc2626; }
.summary-card.warning .number { color: #d97706; }
.summary-card.notice .number { color: #0891b2; }
.summary-card.info .number { color: #2563eb; }
.summary-card.passed .number { color: #16a34a; }
.finding-card { margin-bottom: 1.2em; padding: 14px 18px; border: 1px solid #e5e7eb;
                border-radius: 8px; background: white; }
.finding-card p { margin: 6px 0; }
.finding-detail { white-space: pre-wrap; }
.todo-item { display: flex; gap: 12px; padding: 10px 14px; border: 1px solid #e5e7eb;
             border-radius: 6px; margin-bottom: 8px; background: white; }
.todo-item.checked { opacity: 0.55; text-decoration: line-through; }
.todo-title { font-weight: 600; font-size: 0.92em; }
.todo-remediation { font-size: 0.85em; color: #374151; white-space: pre-wrap; }
@media print {
    .sidebar { display: none; }
    .main { margin-left: 0; padding: 20px; max-width: 100%; }
    .finding-card, .todo-item { break-inside: avoid; }
}
`

const htmlJS = `
document.querySelectorAll('.todo-item input[type="checkbox"]').forEach(function(cb) {
    cb.addEventListener('change', function() {
        this.closest('.todo-item').classList.toggle('checked', this.checked);
        var total = document.querySelectorAll('.todo-item').length;
        var done = document.querySelectorAll('.todo-item.checked').length;
        var counter = document.getElementById('todo-counter');
        if (counter) { counter.textContent = done + ' of ' + total + ' completed'; }
    });
});
`

// esc HTML-escapes a string.
func esc(text string) string {
	return html.EscapeString(text)
}

// slug converts a label to a URL-safe anchor fragment.
func slug(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	return s
}

// pluralS returns "s" if n != 1, otherwise "".
func pluralS(n int) string {
	if n != 1 {
		return "s"
	}
	return ""
}

func sevBadgeClass(sev models.Severity) string {
	switch sev {
	case models.SeverityError:
		return "badge-error"
	case models.SeverityWarning:
		return "badge-warning"
	case models.SeverityNotice:
		return "badge-notice"
	default:
		return "badge-info"
	}
}

// sevCatEntry holds findings grouped by category within a severity level.
type sevCatEntry struct {
	severity   models.Severity
	categories []catFindings // sorted by category name
}

type catFindings struct {
	category string
	findings []models.Finding
}

var sevOrder = []models.Severity{
	models.SeverityError,
	models.SeverityWarning,
	models.SeverityNotice,
	models.SeverityInfo,
}

// buildSevCatMap groups all findings by severity then category (sorted).
func buildSevCatMap(allFindings []models.Finding) []sevCatEntry {
	var result []sevCatEntry
	for _, sev := range sevOrder {
		catMap := make(map[string][]models.Finding)
		for _, f := range allFindings {
			if f.Severity == sev {
				catMap[f.Category] = append(catMap[f.Category], f)
			}
		}
		if len(catMap) == 0 {
			continue
		}
		cats := make([]string, 0, len(catMap))
		for c := range catMap {
			cats = append(cats, c)
		}
		sort.Strings(cats)

		entry := sevCatEntry{severity: sev}
		for _, c := range cats {
			entry.categories = append(entry.categories, catFindings{category: c, findings: catMap[c]})
		}
		result = append(result, entry)
	}
	return result
}

// RenderHTML renders the report as a standalone HTML page with sidebar
// navigation and a to-do list of findings that carry a remediation.
func RenderHTML(report *models.Report) string {
	allFindings := report.Findings()
	sevCatMap := buildSevCatMap(allFindings)

	var failed []models.CheckResult
	for _, r := range report.Results {
		if r.Error != "" {
			failed = append(failed, r)
		}
	}

	var todoItems []models.Finding
	for _, sev := range sevOrder[:3] {
		for _, f := range allFindings {
			if f.Severity == sev && f.Remediation != "" {
				todoItems = append(todoItems, f)
			}
		}
	}

	// Sidebar
	var sb []string
	sb = append(sb, `<div class="sidebar">`)
	sb = append(sb, `<div class="sidebar-header">`)
	sb = append(sb, fmt.Sprintf(`<strong>%s %s report</strong><br>%s`, toolName, esc(report.Mode), esc(report.Source)))
	sb = append(sb, `</div>`)
	sb = append(sb, `<nav>`)
	for _, entry := range sevCatMap {
		sevSlug := slug(entry.severity.String())
		sb = append(sb, fmt.Sprintf(`<div class="nav-group"><span class="badge %s">%s</span></div>`,
			sevBadgeClass(entry.severity), entry.severity))
		for _, cf := range entry.categories {
			sb = append(sb, fmt.Sprintf(
				`<a class="nav-link" href="#sev-%s-%s">%s<span class="nav-count">(%d)</span></a>`,
				sevSlug, slug(cf.category), esc(cf.category), len(cf.findings),
			))
		}
	}
	if len(failed) > 0 {
		sb = append(sb, fmt.Sprintf(`<div class="nav-group"><a class="nav-link" href="#errors">Check errors (%d)</a></div>`, len(failed)))
	}
	if len(todoItems) > 0 {
		sb = append(sb, fmt.Sprintf(`<div class="nav-group"><a class="nav-link" href="#todo">To Do List (%d)</a></div>`, len(todoItems)))
	}
	sb = append(sb, `</nav>`)
	sb = append(sb, `</div>`)

	// Main content
	var main []string
	main = append(main, `<div class="main">`)
	main = append(main, fmt.Sprintf(`<h1>%s: %s report</h1>`, toolName, esc(report.Mode)))
	main = append(main, fmt.Sprintf(`<p><strong>Source:</strong> %s<br>`, esc(report.Source)))
	if report.Target != "" {
		main = append(main, fmt.Sprintf(`<strong>Target:</strong> %s<br>`, esc(report.Target)))
	}
	main = append(main, fmt.Sprintf(`<strong>Tables:</strong> %d<br>`, report.Tables))
	main = append(main, fmt.Sprintf(`<strong>Run Time:</strong> %s</p>`, report.Timestamp.Format("2006-01-02 15:04:05 UTC")))

	main = append(main, `<div class="summary-box">`)
	for _, card := range []struct {
		cls   string
		label string
		n     int
	}{
		{"", "Checks Run", report.ChecksTotal()},
		{"passed", "Passed", report.ChecksPassed()},
		{"error", "Errors", report.ErrorCount()},
		{"warning", "Warnings", report.WarningCount()},
		{"notice", "Notices", report.NoticeCount()},
		{"info", "Info", report.InfoCount()},
	} {
		main = append(main, fmt.Sprintf(`<div class="summary-card %s"><div class="number">%d</div>%s</div>`, card.cls, card.n, card.label))
	}
	main = append(main, `</div>`)

	label, detail := verdict(report)
	main = append(main, fmt.Sprintf(`<blockquote><strong>%s</strong>: %s</blockquote>`, label, esc(detail)))

	for _, entry := range sevCatMap {
		sevLabel := entry.severity.String()
		sevSlug := slug(sevLabel)
		main = append(main, fmt.Sprintf(`<h2 id="sev-%s"><span class="badge %s">%s</span></h2>`, sevSlug, sevBadgeClass(entry.severity), sevLabel))

		for _, cf := range entry.categories {
			main = append(main, fmt.Sprintf(`<h3 id="sev-%s-%s">%s (%d)</h3>`, sevSlug, slug(cf.category), esc(cf.category), len(cf.findings)))
			for _, f := range cf.findings {
				main = append(main, `<div class="finding-card">`)
				main = append(main, fmt.Sprintf(`<h4>%s</h4>`, esc(f.Title)))
				if f.ObjectName != "" {
					main = append(main, fmt.Sprintf(`<p><strong>Object:</strong> <code>%s</code></p>`, esc(f.ObjectName)))
				}
				if f.Line > 0 {
					main = append(main, fmt.Sprintf(`<p><strong>Line:</strong> %d</p>`, f.Line))
				}
				main = append(main, fmt.Sprintf(`<p class="finding-detail">%s</p>`, esc(f.Detail)))
				if f.Remediation != "" {
					main = append(main, fmt.Sprintf(`<p><strong>Remediation:</strong> %s</p>`, esc(f.Remediation)))
				}
				main = append(main, `</div>`)
			}
		}
	}

	if len(failed) > 0 {
		main = append(main, `<h2 id="errors">Check errors</h2>`)
		main = append(main, `<ul>`)
		for _, r := range failed {
			main = append(main, fmt.Sprintf(`<li><strong>%s/%s</strong>: %s</li>`, esc(r.Category), esc(r.CheckName), esc(r.Error)))
		}
		main = append(main, `</ul>`)
	}

	if len(todoItems) > 0 {
		main = append(main, `<h2 id="todo">To Do List</h2>`)
		main = append(main, fmt.Sprintf(`<p>%d item%s to address: <span id="todo-counter">0 of %d completed</span></p>`,
			len(todoItems), pluralS(len(todoItems)), len(todoItems)))
		for _, f := range todoItems {
			object := ""
			if f.ObjectName != "" {
				object = fmt.Sprintf(` <code>%s</code>`, esc(f.ObjectName))
			}
			main = append(main, fmt.Sprintf(
				`<div class="todo-item"><input type="checkbox"><div>`+
					`<div class="todo-title"><span class="badge %s">%s</span> %s%s</div>`+
					`<div class="todo-remediation">%s</div></div></div>`,
				sevBadgeClass(f.Severity), f.Severity, esc(f.Title), object, esc(f.Remediation),
			))
		}
	}

	main = append(main, `<hr>`)
	main = append(main, fmt.Sprintf(`<p><em>Generated by %s v%s</em></p>`, toolName, toolVersion))
	main = append(main, `</div>`)

	return htmlPage("en", fmt.Sprintf("%s report: %s", toolName, report.Source), htmlCSS, sb, main, htmlJS)
}

// htmlPage assembles a standalone HTML document.
func htmlPage(lang, title, css string, sidebar, main []string, js string) string {
	var doc []string
	doc = append(doc, `<!DOCTYPE html>`)
	doc = append(doc, fmt.Sprintf(`<html lang="%s">`, lang))
	doc = append(doc, `<head>`)
	doc = append(doc, `<meta charset="UTF-8">`)
	doc = append(doc, `<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	doc = append(doc, fmt.Sprintf(`<title>%s</title>`, esc(title)))
	doc = append(doc, fmt.Sprintf(`<style>%s</style>`, css))
	doc = append(doc, `</head>`)
	doc = append(doc, `<body>`)
	doc = append(doc, sidebar...)
	doc = append(doc, main...)
	if js != "" {
		doc = append(doc, fmt.Sprintf(`<script>%s</script>`, js))
	}
	doc = append(doc, `</body></html>`)
	return strings.Join(doc, "\n")
}
