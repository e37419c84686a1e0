package checks_test

import (
	"testing"

	"github.com/AntTheLimey/ddldoc/internal/check"
	_ "github.com/AntTheLimey/ddldoc/internal/checks" // triggers all init() registrations
)

const totalChecks = 13

func TestTotalCheckCount(t *testing.T) {
	all := check.AllRegistered()
	if len(all) != totalChecks {
		cats := make(map[string]int)
		for _, c := range all {
			cats[c.Category()]++
		}
		t.Errorf("expected %d checks, got %d. By category: %v", totalChecks, len(all), cats)
	}
}

func TestAllChecksHaveRequiredFields(t *testing.T) {
	for _, c := range check.AllRegistered() {
		if c.Name() == "" {
			t.Errorf("check with empty name (category=%s)", c.Category())
		}
		if c.Category() == "" {
			t.Errorf("check %s has empty category", c.Name())
		}
		if c.Description() == "" {
			t.Errorf("check %s has empty description", c.Name())
		}
		if mode := c.Mode(); mode != check.ModeLint && mode != check.ModeStrict {
			t.Errorf("check %s has invalid mode %q", c.Name(), mode)
		}
	}
}

func TestUniqueCheckNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range check.AllRegistered() {
		if seen[c.Name()] {
			t.Errorf("duplicate check name: %s", c.Name())
		}
		seen[c.Name()] = true
	}
}

func TestCategoryCounts(t *testing.T) {
	cats := make(map[string]int)
	for _, c := range check.AllRegistered() {
		cats[c.Category()]++
	}
	expected := map[string]int{
		"docs":   6,
		"schema": 6,
		"syntax": 1,
	}
	for cat, want := range expected {
		if got := cats[cat]; got != want {
			t.Errorf("category %s: got %d checks, want %d", cat, got, want)
		}
	}
	if len(cats) != len(expected) {
		t.Errorf("expected %d categories, got %d: %v", len(expected), len(cats), cats)
	}
}

// -- GetChecks ----------------------------------------------------------------

func TestGetChecksLintMode(t *testing.T) {
	checks := check.GetChecks(check.ModeLint, nil)
	for _, c := range checks {
		if c.Mode() != check.ModeLint {
			t.Errorf("lint mode returned check %s with mode %q", c.Name(), c.Mode())
		}
	}
	if len(checks) != totalChecks-1 {
		t.Errorf("got %d lint checks, want %d", len(checks), totalChecks-1)
	}
}

func TestGetChecksStrictMode(t *testing.T) {
	checks := check.GetChecks(check.ModeStrict, nil)
	if len(checks) != 1 || checks[0].Name() != "mysql_grammar" {
		t.Errorf("strict mode returned %v", checks)
	}
}

func TestGetChecksCategoryFilter(t *testing.T) {
	checks := check.GetChecks("", []string{"docs"})
	for _, c := range checks {
		if c.Category() != "docs" {
			t.Errorf("category filter returned check %s with category %q", c.Name(), c.Category())
		}
	}
	if len(checks) != 6 {
		t.Errorf("expected 6 docs checks, got %d", len(checks))
	}
}

func TestGetChecksMultipleCategories(t *testing.T) {
	checks := check.GetChecks("", []string{"docs", "syntax"})
	if len(checks) != 7 {
		t.Errorf("expected 7 docs+syntax checks, got %d", len(checks))
	}
}

func TestGetChecksSorted(t *testing.T) {
	checks := check.GetChecks("", nil)
	for i := 1; i < len(checks); i++ {
		prev := checks[i-1]
		curr := checks[i]
		if prev.Category() > curr.Category() {
			t.Errorf("checks not sorted by category: %s/%s came before %s/%s",
				prev.Category(), prev.Name(), curr.Category(), curr.Name())
		}
		if prev.Category() == curr.Category() && prev.Name() > curr.Name() {
			t.Errorf("checks not sorted by name within category %s: %s came before %s",
				prev.Category(), prev.Name(), curr.Name())
		}
	}
}

func TestGetChecksNonexistentCategory(t *testing.T) {
	if checks := check.GetChecks("", []string{"nonexistent"}); len(checks) != 0 {
		t.Errorf("expected 0 checks for nonexistent category, got %d", len(checks))
	}
}

func TestLookup(t *testing.T) {
	if c, ok := check.Lookup("primary_keys"); !ok || c.Category() != "schema" {
		t.Errorf("Lookup(primary_keys) = %v, %v", c, ok)
	}
	if _, ok := check.Lookup("wal_level"); ok {
		t.Error("Lookup should not find unknown checks")
	}
}
