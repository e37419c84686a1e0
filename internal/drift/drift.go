// Package drift compares the tables described by a DDL file with the tables
// found in a live database.
package drift

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/AntTheLimey/ddldoc/internal/models"
	"github.com/AntTheLimey/ddldoc/internal/parser"
)

// Mode is the report mode of a drift comparison.
const Mode = "drift"

const (
	checkTables  = "drift_tables"
	checkColumns = "drift_columns"
	category     = "drift"
)

// Compare returns a report describing how the file tables differ from the
// database tables. Tables are matched on their unqualified name and columns
// on their name, both case-insensitively. Data types are not compared since
// the two sides spell them differently.
func Compare(source, target string, file, db []parser.TableDescriptor) *models.Report {
	report := models.NewReport(source, Mode)
	report.Target = target
	report.Tables = len(file)

	fileIdx := index(file)
	dbIdx := index(db)
	onlyFile, onlyDB := diff(fileIdx, dbIdx)

	tables := models.CheckResult{
		CheckName:   checkTables,
		Category:    category,
		Description: "Tables present on only one side",
	}
	for _, key := range sortedKeys(onlyFile) {
		t := onlyFile[key]
		tables.Findings = append(tables.Findings, models.Finding{
			Severity:    models.SeverityError,
			CheckName:   checkTables,
			Category:    category,
			Title:       "Table missing from database",
			Detail:      fmt.Sprintf("Table '%s' is defined in %s but does not exist in the database.", t.Name, source),
			ObjectName:  t.Name,
			Remediation: "Apply the CREATE TABLE statement or remove it from the file.",
		})
	}
	for _, key := range sortedKeys(onlyDB) {
		t := onlyDB[key]
		tables.Findings = append(tables.Findings, models.Finding{
			Severity:    models.SeverityWarning,
			CheckName:   checkTables,
			Category:    category,
			Title:       "Table not in file",
			Detail:      fmt.Sprintf("Table '%s' exists in the database but is not defined in %s.", t.Name, source),
			ObjectName:  t.Name,
			Remediation: "Add the table to the DDL file or drop it from the database.",
		})
	}

	columns := models.CheckResult{
		CheckName:   checkColumns,
		Category:    category,
		Description: "Column differences in tables present on both sides",
	}
	for _, key := range intersect(fileIdx, dbIdx) {
		columns.Findings = append(columns.Findings, compareColumns(fileIdx[key], dbIdx[key])...)
	}

	report.Results = append(report.Results, tables, columns)
	return report
}

func compareColumns(file, db parser.TableDescriptor) []models.Finding {
	var findings []models.Finding
	add := func(sev models.Severity, title, object, detail string, meta map[string]any) {
		findings = append(findings, models.Finding{
			Severity:   sev,
			CheckName:  checkColumns,
			Category:   category,
			Title:      title,
			Detail:     detail,
			ObjectName: object,
			Metadata:   meta,
		})
	}

	if file.Comment != db.Comment {
		add(models.SeverityNotice, "Table comment differs", file.Name,
			fmt.Sprintf("Table '%s' is documented as %q in the file and %q in the database.", file.Name, file.Comment, db.Comment),
			map[string]any{"file": file.Comment, "database": db.Comment})
	}

	fileCols := fieldIndex(file.Fields)
	dbCols := fieldIndex(db.Fields)
	onlyFile, onlyDB := diff(fileCols, dbCols)

	for _, key := range sortedKeys(onlyFile) {
		col := file.BaseName() + "." + onlyFile[key].Name
		add(models.SeverityError, "Column missing from database", col,
			fmt.Sprintf("Column '%s' is defined in the file but does not exist in the database.", col), nil)
	}
	for _, key := range sortedKeys(onlyDB) {
		col := file.BaseName() + "." + onlyDB[key].Name
		add(models.SeverityWarning, "Column not in file", col,
			fmt.Sprintf("Column '%s' exists in the database but is not defined in the file.", col), nil)
	}

	for _, key := range intersect(fileCols, dbCols) {
		f, d := fileCols[key], dbCols[key]
		col := file.BaseName() + "." + f.Name
		if f.Nullable != d.Nullable {
			add(models.SeverityError, "Nullability differs", col,
				fmt.Sprintf("Column '%s' is nullable=%s in the file and nullable=%s in the database.", col, f.Nullable, d.Nullable),
				map[string]any{"file": f.Nullable.String(), "database": d.Nullable.String()})
		}
		if f.Comment != d.Comment {
			add(models.SeverityNotice, "Column comment differs", col,
				fmt.Sprintf("Column '%s' is documented as %q in the file and %q in the database.", col, f.Comment, d.Comment),
				map[string]any{"file": f.Comment, "database": d.Comment})
		}
	}
	return findings
}

// index keys tables by lower-cased unqualified name. The first definition of
// a name wins.
func index(tables []parser.TableDescriptor) map[string]parser.TableDescriptor {
	m := make(map[string]parser.TableDescriptor, len(tables))
	for _, t := range tables {
		key := strings.ToLower(t.BaseName())
		if _, ok := m[key]; !ok {
			m[key] = t
		}
	}
	return m
}

func fieldIndex(fields []parser.FieldDescriptor) map[string]parser.FieldDescriptor {
	m := make(map[string]parser.FieldDescriptor, len(fields))
	for _, f := range fields {
		key := strings.ToLower(f.Name)
		if _, ok := m[key]; !ok {
			m[key] = f
		}
	}
	return m
}

// diff returns the entries of a missing from b and the entries of b missing from a.
func diff[T any](a, b map[string]T) (onlyA, onlyB map[string]T) {
	onlyA = make(map[string]T)
	onlyB = make(map[string]T)
	for k, v := range a {
		if _, ok := b[k]; !ok {
			onlyA[k] = v
		}
	}
	for k, v := range b {
		if _, ok := a[k]; !ok {
			onlyB[k] = v
		}
	}
	return onlyA, onlyB
}

// intersect returns the sorted keys present in both maps.
func intersect[T any](a, b map[string]T) []string {
	var keys []string
	for k := range a {
		if _, ok := b[k]; ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

func sortedKeys[T any](m map[string]T) []string {
	return slices.Sorted(maps.Keys(m))
}
