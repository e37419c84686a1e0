// Package check defines the Check interface and global registry.
package check

import (
	"context"

	"github.com/AntTheLimey/ddldoc/internal/models"
	"github.com/AntTheLimey/ddldoc/internal/parser"
)

// Modes a check can run in.
const (
	ModeLint   = "lint"   // checks over the parsed descriptors only
	ModeStrict = "strict" // checks that re-parse statements with a full grammar
)

// Target is the parsed SQL a check runs against.
type Target struct {
	Source  string
	SQL     string
	Tables  []parser.TableDescriptor
	Dropped []parser.Diagnostic
}

// NewTarget parses sql and wraps the result.
func NewTarget(source, sql string) *Target {
	res := parser.ParseWithDiagnostics(sql)
	return &Target{Source: source, SQL: sql, Tables: res.Tables, Dropped: res.Dropped}
}

// Check is the interface that all schema checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string
	// Category returns the grouping category (docs, schema, syntax).
	Category() string
	// Description returns a human-readable summary of what this check does.
	Description() string
	// Mode returns ModeLint or ModeStrict.
	Mode() string
	// Run executes the check against the parsed SQL.
	// An empty slice means the check passed.
	Run(ctx context.Context, target *Target) ([]models.Finding, error)
}

var registry []Check

// Register adds a check to the global registry. Called from init() in each check file.
func Register(c Check) {
	registry = append(registry, c)
}

// ResetRegistry clears the global registry. Used only in tests.
func ResetRegistry() {
	registry = nil
}

// AllRegistered returns a copy of all registered checks (unfiltered, unsorted).
func AllRegistered() []Check {
	out := make([]Check, len(registry))
	copy(out, registry)
	return out
}
