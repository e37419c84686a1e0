package cmd

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var tsPattern = regexp.MustCompile(`\d{8}_\d{6}`)

// -- MakeDefaultOutputPath ----------------------------------------------------

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		format string
		ext    string
	}{
		{"html", ".html"},
		{"json", ".json"},
		{"markdown", ".md"},
		{"yaml", ".yaml"},
	}
	for _, tt := range tests {
		path := MakeDefaultOutputPath(tt.format, "schema")
		if !strings.HasPrefix(path, filepath.Join("reports", "schema_")) {
			t.Errorf("path %q should start with reports/schema_", path)
		}
		if !strings.HasSuffix(path, tt.ext) {
			t.Errorf("path %q should end with %s", path, tt.ext)
		}
		if !tsPattern.MatchString(path) {
			t.Errorf("path %q should contain timestamp pattern YYYYMMDD_HHMMSS", path)
		}
	}
}

func TestDefaultOutputPathEmptyName(t *testing.T) {
	path := MakeDefaultOutputPath("html", "")
	if !strings.Contains(path, "ddldoc_") {
		t.Errorf("path %q should contain ddldoc_", path)
	}
}

// -- MakeOutputPath -----------------------------------------------------------

func TestOutputPathInsertsTimestamp(t *testing.T) {
	path := MakeOutputPath("schema.md", "markdown", "db")
	if !strings.HasPrefix(path, "schema_") || !strings.HasSuffix(path, ".md") {
		t.Errorf("path %q should look like schema_<ts>.md", path)
	}
	if !tsPattern.MatchString(path) {
		t.Errorf("path %q should contain timestamp", path)
	}
}

func TestOutputPathNoExtUsesFormat(t *testing.T) {
	path := MakeOutputPath("report", "json", "db")
	if !strings.HasSuffix(path, ".json") {
		t.Errorf("path %q should end with .json", path)
	}
}

func TestOutputPathDirectory(t *testing.T) {
	dir := t.TempDir()
	path := MakeOutputPath(dir, "html", "mydb")
	if !strings.HasPrefix(path, dir) || !strings.Contains(path, "mydb_") || !strings.HasSuffix(path, ".html") {
		t.Errorf("path %q should be %s/mydb_<ts>.html", path, dir)
	}
}

func TestOutputPathPreservesUserExtension(t *testing.T) {
	path := MakeOutputPath("output.txt", "html", "db")
	if !strings.HasSuffix(path, ".txt") {
		t.Errorf("path %q should end with .txt", path)
	}
}

func TestSourceName(t *testing.T) {
	tests := map[string]string{
		"db/schema.sql": "schema",
		"dump":          "dump",
		"-":             "",
		"":              "",
	}
	for in, want := range tests {
		if got := sourceName(in); got != want {
			t.Errorf("sourceName(%q) = %q, want %q", in, got, want)
		}
	}
}

// -- readInput ----------------------------------------------------------------

func TestReadInputLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")
	body := "CREATE TABLE t (id INT);"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, limit := range []int64{0, int64(len(body)), 1 << 20} {
		got, err := readInput(path, limit)
		if err != nil || got != body {
			t.Errorf("limit %d: got (%q, %v)", limit, got, err)
		}
	}

	_, err := readInput(path, int64(len(body)-1))
	if err == nil || !strings.Contains(err.Error(), "max_input_bytes") {
		t.Errorf("got %v, want size error", err)
	}
}

func TestReadInputMissing(t *testing.T) {
	if _, err := readInput(filepath.Join(t.TempDir(), "nope.sql"), 0); err == nil {
		t.Error("expected error for missing file")
	}
}
