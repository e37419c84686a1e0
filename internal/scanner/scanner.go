// Package scanner orchestrates check discovery and execution.
package scanner

import (
	"context"
	"fmt"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
	"go.uber.org/zap"
)

// Options configures a lint run.
type Options struct {
	Categories []string
	Strict     bool // also run checks that re-parse with the MySQL grammar
	Logger     *zap.Logger
}

// RunLint executes the selected checks against target and returns a Report.
func RunLint(ctx context.Context, target *check.Target, opts Options) (*models.Report, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	mode := check.ModeLint
	if opts.Strict {
		mode = "" // every mode
	}

	report := models.NewReport(target.Source, "lint")
	report.Tables = len(target.Tables)

	checks := check.GetChecks(mode, opts.Categories)
	total := len(checks)
	log.Info("running checks", zap.Int("checks", total), zap.String("source", target.Source),
		zap.Int("tables", len(target.Tables)), zap.Int("dropped", len(target.Dropped)))

	for i, c := range checks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Debug("check", zap.String("progress", fmt.Sprintf("%d/%d", i+1, total)),
			zap.String("name", c.Category()+"/"+c.Name()))

		result := models.CheckResult{
			CheckName:   c.Name(),
			Category:    c.Category(),
			Description: c.Description(),
		}
		findings, err := runCheck(ctx, c, target)
		if err != nil {
			result.Error = err.Error()
			log.Warn("check failed", zap.String("check", c.Name()), zap.Error(err))
		} else {
			result.Findings = findings
		}
		report.Results = append(report.Results, result)
	}

	log.Info("checks done",
		zap.Int("errors", report.ErrorCount()), zap.Int("warnings", report.WarningCount()),
		zap.Int("notices", report.NoticeCount()), zap.Int("info", report.InfoCount()))
	return report, nil
}

// runCheck runs one check, turning a panic into an error.
func runCheck(ctx context.Context, c check.Check, target *check.Target) (findings []models.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Run(ctx, target)
}
