package reporter

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/AntTheLimey/ddldoc/internal/config"
	"github.com/AntTheLimey/ddldoc/internal/models"
	"github.com/AntTheLimey/ddldoc/internal/parser"
	"gopkg.in/yaml.v3"
)

// -- Test helpers -------------------------------------------------------------

var testTime = time.Date(2026, 1, 27, 12, 0, 0, 0, time.UTC)

func makeFinding(opts ...func(*models.Finding)) models.Finding {
	f := models.Finding{
		Severity:  models.SeverityInfo,
		CheckName: "test_check",
		Category:  "docs",
		Title:     "Test finding",
		Detail:    "Test detail",
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func sampleReport() *models.Report {
	r := &models.Report{
		Source:    "schema.sql",
		Mode:      "lint",
		Timestamp: testTime,
		Tables:    3,
	}

	r.Results = append(r.Results, models.CheckResult{
		CheckName:   "dropped_statements",
		Category:    "docs",
		Description: "Statements that produced no table",
		Findings: []models.Finding{{
			Severity:    models.SeverityError,
			CheckName:   "dropped_statements",
			Category:    "docs",
			Title:       "Statement dropped: 'orders'",
			Detail:      "unbalanced parentheses",
			Line:        12,
			Remediation: "Close the column list.",
		}},
	})

	r.Results = append(r.Results, models.CheckResult{
		CheckName:   "table_comments",
		Category:    "docs",
		Description: "Tables without a comment",
		Findings: []models.Finding{{
			Severity:    models.SeverityWarning,
			CheckName:   "table_comments",
			Category:    "docs",
			Title:       "Missing table comment",
			Detail:      "users has no COMMENT option",
			ObjectName:  "users",
			Remediation: "Add COMMENT='...' to the table options.",
		}},
	})

	r.Results = append(r.Results, models.CheckResult{
		CheckName:   "foreign_keys",
		Category:    "schema",
		Description: "Foreign key references",
		Findings: []models.Finding{{
			Severity:    models.SeverityNotice,
			CheckName:   "foreign_keys",
			Category:    "schema",
			Title:       "Reference to undefined table",
			Detail:      "orders references customers",
			ObjectName:  "orders",
			Remediation: "Define customers in the same file.",
		}},
	})

	r.Results = append(r.Results, models.CheckResult{
		CheckName:   "enum_types",
		Category:    "schema",
		Description: "ENUM and SET columns",
		Findings: []models.Finding{{
			Severity:   models.SeverityInfo,
			CheckName:  "enum_types",
			Category:   "schema",
			Title:      "ENUM column",
			Detail:     "users.status",
			ObjectName: "users.status",
		}},
	})

	// Passing check
	r.Results = append(r.Results, models.CheckResult{
		CheckName:   "empty_tables",
		Category:    "docs",
		Description: "Tables without columns",
	})

	// Errored check
	r.Results = append(r.Results, models.CheckResult{
		CheckName:   "mysql_grammar",
		Category:    "syntax",
		Description: "MySQL grammar",
		Error:       "panic: runtime error",
	})

	return r
}

func makeReportWithSeverities(severities ...models.Severity) *models.Report {
	r := &models.Report{Source: "s.sql", Mode: "lint", Timestamp: testTime}
	for i, sev := range severities {
		r.Results = append(r.Results, models.CheckResult{
			CheckName:   fmt.Sprintf("check_%d", i),
			Category:    "docs",
			Description: fmt.Sprintf("Check %d", i),
			Findings: []models.Finding{makeFinding(func(f *models.Finding) {
				f.Severity = sev
				f.CheckName = fmt.Sprintf("check_%d", i)
				f.Remediation = "Fix it."
			})},
		})
	}
	return r
}

func sampleDocument() *models.SchemaDocument {
	res := parser.ParseWithDiagnostics(`
CREATE TABLE users (
  id INT NOT NULL COMMENT 'user id',
  name VARCHAR(50) COMMENT 'user name',
  email VARCHAR(100) COMMENT 'email',
  note TEXT
) COMMENT='User';
CREATE TABLE tags (label VARCHAR(20) COMMENT 'a|b');
CREATE TABLE broken (id INT;
`)
	doc := models.NewSchemaDocument("Shop schema", "shop.sql", res)
	doc.Timestamp = testTime
	return doc
}

// -- Dispatch -----------------------------------------------------------------

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render(sampleReport(), "pdf"); err == nil {
		t.Error("expected error for unknown report format")
	}
	if _, err := RenderDocument(sampleDocument(), config.Default().Document, "docx"); err == nil {
		t.Error("expected error for unknown document format")
	}
}

func TestRenderAllFormats(t *testing.T) {
	for _, format := range Formats {
		if out, err := Render(sampleReport(), format); err != nil || out == "" {
			t.Errorf("Render(%s) = %d bytes, %v", format, len(out), err)
		}
		if out, err := RenderDocument(sampleDocument(), config.Default().Document, format); err != nil || out == "" {
			t.Errorf("RenderDocument(%s) = %d bytes, %v", format, len(out), err)
		}
	}
}

// -- JSON Reporter ------------------------------------------------------------

func TestJSONSummaryCounts(t *testing.T) {
	var data map[string]any
	if err := json.Unmarshal([]byte(RenderJSON(sampleReport())), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	s := data["summary"].(map[string]any)
	checks := map[string]float64{
		"errors":        1,
		"warnings":      1,
		"notices":       1,
		"info":          1,
		"total_checks":  6,
		"checks_passed": 1,
	}
	for k, want := range checks {
		if got := s[k].(float64); got != want {
			t.Errorf("summary[%q] = %v, want %v", k, got, want)
		}
	}
}

func TestJSONFindingFields(t *testing.T) {
	var data map[string]any
	json.Unmarshal([]byte(RenderJSON(sampleReport())), &data)
	results := data["results"].([]any)
	if len(results) != 6 {
		t.Fatalf("results count = %d, want 6", len(results))
	}
	first := results[0].(map[string]any)
	f := first["findings"].([]any)[0].(map[string]any)
	if f["severity"] != "ERROR" || f["line"].(float64) != 12 {
		t.Errorf("finding = %v", f)
	}
	if first["error"] != nil {
		t.Errorf("error = %v, want null", first["error"])
	}
	last := results[5].(map[string]any)
	if last["error"] != "panic: runtime error" || last["passed"] != false {
		t.Errorf("errored result = %v", last)
	}
}

func TestJSONMetaFields(t *testing.T) {
	var data map[string]any
	json.Unmarshal([]byte(RenderJSON(sampleReport())), &data)
	meta := data["meta"].(map[string]any)
	if meta["source"] != "schema.sql" || meta["mode"] != "lint" || meta["tool"] != "ddldoc" {
		t.Errorf("meta = %v", meta)
	}
	if _, ok := meta["target"]; ok {
		t.Error("target should be omitted when empty")
	}
}

// -- YAML Reporter ------------------------------------------------------------

func TestYAMLMatchesJSONLayout(t *testing.T) {
	out, err := RenderYAML(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	var data reportData
	if err := yaml.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if data.Summary.Errors != 1 || len(data.Results) != 6 {
		t.Errorf("summary=%+v results=%d", data.Summary, len(data.Results))
	}
	if data.Results[1].Findings[0].ObjectName != "users" {
		t.Errorf("finding = %+v", data.Results[1].Findings[0])
	}
}

// -- Markdown Reporter --------------------------------------------------------

func TestMarkdownContainsSections(t *testing.T) {
	output := RenderMarkdown(sampleReport())
	for _, want := range []string{
		"# ddldoc: Lint Report",
		"schema.sql",
		"## ERROR",
		"## WARNING",
		"### docs (",
		"Statement dropped: 'orders'",
		"- **Line:** 12",
		"## Errors",
		"syntax/mysql_grammar",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownDriftTitle(t *testing.T) {
	r := makeReportWithSeverities()
	r.Mode = "drift"
	r.Target = "shop@localhost:5432"
	output := RenderMarkdown(r)
	if !strings.Contains(output, "Drift Report") || !strings.Contains(output, "shop@localhost:5432") {
		t.Errorf("unexpected markdown:\n%s", output)
	}
}

// -- HTML Reporter ------------------------------------------------------------

func TestHTMLValidStructure(t *testing.T) {
	output := RenderHTML(sampleReport())
	if !strings.Contains(strings.ToLower(output), "<!doctype html>") || !strings.Contains(output, "</html>") {
		t.Error("HTML should be a complete document")
	}
	for _, badge := range []string{"badge-error", "badge-warning", "badge-notice", "badge-info"} {
		if !strings.Contains(output, badge) {
			t.Errorf("HTML should contain %s", badge)
		}
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	output := RenderHTML(sampleReport())
	if !strings.Contains(output, "Statement dropped: &#39;orders&#39;") {
		t.Error("HTML should contain the escaped finding title")
	}
}

func TestHTMLTodoList(t *testing.T) {
	output := RenderHTML(sampleReport())
	if !strings.Contains(output, "To Do List") || !strings.Contains(output, "3 items to address") {
		t.Error("HTML should list the three findings with a remediation")
	}
}

// -- Verdict Logic ------------------------------------------------------------

func TestVerdict(t *testing.T) {
	tests := []struct {
		name       string
		severities []models.Severity
		want       string
	}{
		{"no findings", nil, "PASS"},
		{"notice and info only", []models.Severity{models.SeverityNotice, models.SeverityInfo}, "PASS"},
		{"warning", []models.Severity{models.SeverityWarning}, "PASS WITH WARNINGS"},
		{"error", []models.Severity{models.SeverityError, models.SeverityWarning}, "FAIL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, _ := verdict(makeReportWithSeverities(tt.severities...))
			if label != tt.want {
				t.Errorf("verdict = %q, want %q", label, tt.want)
			}
		})
	}
}

func TestVerdictInMarkdownAndHTML(t *testing.T) {
	r := makeReportWithSeverities(models.SeverityError)
	if !strings.Contains(RenderMarkdown(r), "**FAIL**") {
		t.Error("markdown should contain FAIL")
	}
	if !strings.Contains(RenderHTML(r), "<strong>FAIL</strong>") {
		t.Error("HTML should contain FAIL")
	}
}

func TestVerdictNotInJSON(t *testing.T) {
	var data map[string]any
	json.Unmarshal([]byte(RenderJSON(makeReportWithSeverities(models.SeverityError))), &data)
	if _, ok := data["summary"].(map[string]any)["verdict"]; ok {
		t.Error("JSON summary should not contain verdict field")
	}
}

// -- Document layout ----------------------------------------------------------

func TestLayoutEnglish(t *testing.T) {
	layouts := layoutTables(sampleDocument(), config.Default().Document)
	if len(layouts) != 2 {
		t.Fatalf("got %d layouts, want 2", len(layouts))
	}
	users := layouts[0]
	if users.Number != "1-1" || users.Heading != "1 User table" {
		t.Errorf("number=%q heading=%q", users.Number, users.Heading)
	}
	wantDesc := "The User table stores User information and contains user id, user name, email, etc., 4 attributes in total. The User table is shown in Table 1-1."
	if users.Description != wantDesc {
		t.Errorf("description:\n got %q\nwant %q", users.Description, wantDesc)
	}
	if users.Caption != "Table 1-1 User table (users)" {
		t.Errorf("caption = %q", users.Caption)
	}
	// no table comment: the table name stands in
	if layouts[1].Heading != "2 tags table" || layouts[1].Caption != "Table 1-2 tags table (tags)" {
		t.Errorf("tags layout = %+v", layouts[1])
	}
}

func TestLayoutChinese(t *testing.T) {
	cfg := config.Default().Document
	cfg.Locale = "zh"
	cfg.Chapter = 3
	cfg.StartTable = 5
	cfg.AttributeSummary = 2
	users := layoutTables(sampleDocument(), cfg)[0]

	if users.Heading != "1 User表" {
		t.Errorf("heading = %q", users.Heading)
	}
	wantDesc := "User表用于存储User信息，包含user id、user name等共4个属性。User表如表3-5所示。"
	if users.Description != wantDesc {
		t.Errorf("description:\n got %q\nwant %q", users.Description, wantDesc)
	}
	if users.Caption != "表3-5 User表(users)" {
		t.Errorf("caption = %q", users.Caption)
	}
}

func TestAttributeSummary(t *testing.T) {
	en := locales["en"]
	fields := []parser.FieldDescriptor{{Name: "id", Comment: "key"}, {Name: "v"}}
	tests := []struct {
		limit int
		want  string
	}{
		{0, "2 attributes in total"},
		{1, "key, etc., 2 attributes in total"},
		{2, "key, v, 2 attributes in total"},
		{5, "key, v, 2 attributes in total"},
	}
	for _, tt := range tests {
		if got := attributeSummary(en, fields, tt.limit); got != tt.want {
			t.Errorf("limit %d: got %q, want %q", tt.limit, got, tt.want)
		}
	}
}

func TestLayoutTogglesParts(t *testing.T) {
	cfg := config.Default().Document
	cfg.Heading, cfg.Description, cfg.Caption = false, false, false
	l := layoutTables(sampleDocument(), cfg)[0]
	if l.Heading != "" || l.Description != "" || l.Caption != "" {
		t.Errorf("disabled parts rendered: %+v", l)
	}
}

// -- Document renderers -------------------------------------------------------

func TestDocumentMarkdown(t *testing.T) {
	cfg := config.Default().Document
	cfg.HeadingLevel = 3
	cfg.BlankSeparator = true
	out := RenderDocumentMarkdown(sampleDocument(), cfg)
	for _, want := range []string{
		"# Shop schema",
		"### 1 User table",
		"**Table 1-1 User table (users)**",
		"| Field | Type | Nullable | Comment |",
		"| id | INT | NO | user id |",
		"| note | TEXT | YES |  |",
		`| label | VARCHAR(20) | YES | a\|b |`,
		"&nbsp;",
		"### Statements not documented",
		"- line 9: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
}

func TestDocumentMarkdownCustomLabels(t *testing.T) {
	cfg := config.Default().Document
	cfg.ColumnLabels = []string{"Column", "Kind", "Null?", "Notes"}
	out := RenderDocumentMarkdown(sampleDocument(), cfg)
	if !strings.Contains(out, "| Column | Kind | Null? | Notes |") {
		t.Errorf("custom labels missing:\n%s", out)
	}
}

func TestDocumentHTMLTableStyle(t *testing.T) {
	cfg := config.Default().Document
	out := RenderDocumentHTML(sampleDocument(), cfg)
	if !strings.Contains(out, `<table class="three_line">`) {
		t.Error("default style should be three_line")
	}
	if !strings.Contains(out, `<h2 id="table-1-1">1 User table</h2>`) {
		t.Error("heading missing")
	}

	cfg.TableStyle = "grid"
	cfg.Locale = "zh"
	out = RenderDocumentHTML(sampleDocument(), cfg)
	if !strings.Contains(out, `<table class="grid">`) || !strings.Contains(out, `<html lang="zh-CN">`) {
		t.Error("grid style or zh locale not applied")
	}
	if !strings.Contains(out, "<th>字段名</th>") {
		t.Error("zh column labels missing")
	}
}

func TestDocumentJSON(t *testing.T) {
	var data documentData
	if err := json.Unmarshal([]byte(RenderDocumentJSON(sampleDocument(), config.Default().Document)), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data.Meta.Tables != 2 || data.Meta.Fields != 5 || data.Meta.Locale != "en" {
		t.Errorf("meta = %+v", data.Meta)
	}
	if data.Tables[0].Table.Name != "users" || data.Tables[0].Number != "1-1" {
		t.Errorf("first table = %+v", data.Tables[0])
	}
	if len(data.Dropped) != 1 || data.Dropped[0].Line != 9 {
		t.Errorf("dropped = %+v", data.Dropped)
	}
}

func TestDocumentYAML(t *testing.T) {
	out, err := RenderDocumentYAML(sampleDocument(), config.Default().Document)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"title: Shop schema", "caption: Table 1-1 User table (users)", "number: 1-2"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q\n%s", want, out)
		}
	}
}
