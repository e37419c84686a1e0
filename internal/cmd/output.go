package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// formatExt maps output format names to file extensions.
var formatExt = map[string]string{
	"json":     ".json",
	"markdown": ".md",
	"html":     ".html",
	"yaml":     ".yaml",
}

// MakeDefaultOutputPath generates a default output path: ./reports/<name>_<timestamp>.<ext>.
func MakeDefaultOutputPath(format, name string) string {
	ts := time.Now().Format("20060102_150405")
	if name == "" {
		name = "ddldoc"
	}
	return filepath.Join("reports", name+"_"+ts+formatExt[format])
}

// MakeOutputPath inserts a timestamp into a user-provided output path.
// If the user provides "schema.md", the result is "schema_20260127_131504.md".
// If they provide a directory, the file is placed there with an auto-generated name.
func MakeOutputPath(userPath, format, name string) string {
	ts := time.Now().Format("20060102_150405")
	if name == "" {
		name = "ddldoc"
	}

	if info, err := os.Stat(userPath); err == nil && info.IsDir() {
		return filepath.Join(userPath, name+"_"+ts+formatExt[format])
	}

	ext := filepath.Ext(userPath)
	base := strings.TrimSuffix(userPath, ext)
	if ext == "" {
		ext = formatExt[format]
	}
	return base + "_" + ts + ext
}

// sourceName derives the default output name from the input file path,
// e.g. "schema" for "db/schema.sql".
func sourceName(path string) string {
	if path == "" || path == "-" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeOutput writes rendered output to stdout when of.Output is "-", and
// otherwise to a timestamped file.
func writeOutput(output string, of outputFlags, name string) error {
	if of.Output == "-" {
		_, err := io.WriteString(os.Stdout, output)
		return err
	}

	var path string
	if of.Output != "" {
		path = MakeOutputPath(of.Output, of.Format, name)
	} else {
		path = MakeDefaultOutputPath(of.Format, name)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Info("output written", zap.String("path", path), zap.Int("bytes", len(output)))
	fmt.Fprintf(os.Stderr, "Output written to %s\n", path)
	return nil
}

// readInput reads a SQL file, or stdin for "-", refusing inputs larger than
// limit bytes. A limit of 0 disables the check.
func readInput(path string, limit int64) (string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("input %s exceeds max_input_bytes (%d)", path, limit)
	}
	return string(data), nil
}
