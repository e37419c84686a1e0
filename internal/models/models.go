// Package models defines the report types shared by the lint, drift and
// document commands.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/AntTheLimey/ddldoc/internal/parser"
)

// Severity represents the impact level of a finding.
// The ordering is ERROR < WARNING < NOTICE < INFO (by numeric value).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNotice
	SeverityInfo
)

var severityNames = map[Severity]string{
	SeverityError:   "ERROR",
	SeverityWarning: "WARNING",
	SeverityNotice:  "NOTICE",
	SeverityInfo:    "INFO",
}

var severityFromName = map[string]Severity{
	"ERROR":   SeverityError,
	"WARNING": SeverityWarning,
	"NOTICE":  SeverityNotice,
	"INFO":    SeverityInfo,
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	sev, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

// ParseSeverity converts a string to a Severity value.
func ParseSeverity(s string) (Severity, error) {
	sev, ok := severityFromName[s]
	if !ok {
		return 0, fmt.Errorf("unknown severity: %s", s)
	}
	return sev, nil
}

// Finding represents a single issue discovered by a check or a drift comparison.
type Finding struct {
	Severity    Severity       `json:"severity" yaml:"severity"`
	CheckName   string         `json:"check_name" yaml:"check_name"`
	Category    string         `json:"category" yaml:"category"`
	Title       string         `json:"title" yaml:"title"`
	Detail      string         `json:"detail" yaml:"detail"`
	ObjectName  string         `json:"object_name,omitempty" yaml:"object_name,omitempty"`
	Line        int            `json:"line,omitempty" yaml:"line,omitempty"`
	Remediation string         `json:"remediation,omitempty" yaml:"remediation,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// CheckResult holds the outcome of running a single check.
type CheckResult struct {
	CheckName   string    `json:"check_name" yaml:"check_name"`
	Category    string    `json:"category" yaml:"category"`
	Description string    `json:"description" yaml:"description"`
	Findings    []Finding `json:"findings" yaml:"findings"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the result of linting a SQL file or comparing it with a database.
type Report struct {
	Source    string        `json:"source" yaml:"source"`
	Target    string        `json:"target,omitempty" yaml:"target,omitempty"`
	Mode      string        `json:"mode" yaml:"mode"`
	Timestamp time.Time     `json:"timestamp" yaml:"timestamp"`
	Tables    int           `json:"tables" yaml:"tables"`
	Results   []CheckResult `json:"results" yaml:"results"`
}

// NewReport creates a Report stamped with the current UTC time.
func NewReport(source, mode string) *Report {
	return &Report{
		Source:    source,
		Mode:      mode,
		Timestamp: time.Now().UTC(),
	}
}

// Findings returns all findings from all check results, flattened.
func (r *Report) Findings() []Finding {
	var all []Finding
	for _, cr := range r.Results {
		all = append(all, cr.Findings...)
	}
	return all
}

// ErrorCount returns the number of ERROR findings.
func (r *Report) ErrorCount() int {
	return r.countBySeverity(SeverityError)
}

// WarningCount returns the number of WARNING findings.
func (r *Report) WarningCount() int {
	return r.countBySeverity(SeverityWarning)
}

// NoticeCount returns the number of NOTICE findings.
func (r *Report) NoticeCount() int {
	return r.countBySeverity(SeverityNotice)
}

// InfoCount returns the number of INFO findings.
func (r *Report) InfoCount() int {
	return r.countBySeverity(SeverityInfo)
}

// ChecksPassed returns the number of checks with no findings and no error.
func (r *Report) ChecksPassed() int {
	count := 0
	for _, cr := range r.Results {
		if len(cr.Findings) == 0 && cr.Error == "" {
			count++
		}
	}
	return count
}

// ChecksTotal returns the total number of check results.
func (r *Report) ChecksTotal() int {
	return len(r.Results)
}

// Worst returns the most severe finding level in the report and false
// when there are no findings.
func (r *Report) Worst() (Severity, bool) {
	worst, found := SeverityInfo, false
	for _, f := range r.Findings() {
		if !found || f.Severity < worst {
			worst, found = f.Severity, true
		}
	}
	return worst, found
}

func (r *Report) countBySeverity(sev Severity) int {
	count := 0
	for _, f := range r.Findings() {
		if f.Severity == sev {
			count++
		}
	}
	return count
}

// SchemaDocument is the input of the document renderers.
type SchemaDocument struct {
	Title     string                   `json:"title" yaml:"title"`
	Source    string                   `json:"source" yaml:"source"`
	Timestamp time.Time                `json:"timestamp" yaml:"timestamp"`
	Tables    []parser.TableDescriptor `json:"tables" yaml:"tables"`
	Dropped   []parser.Diagnostic      `json:"dropped,omitempty" yaml:"dropped,omitempty"`
}

// NewSchemaDocument wraps a parse result for rendering.
func NewSchemaDocument(title, source string, res parser.Result) *SchemaDocument {
	return &SchemaDocument{
		Title:     title,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Tables:    res.Tables,
		Dropped:   res.Dropped,
	}
}

// FieldCount returns the total number of columns across all tables.
func (d *SchemaDocument) FieldCount() int {
	n := 0
	for _, t := range d.Tables {
		n += len(t.Fields)
	}
	return n
}
