package cmd

import (
	"fmt"

	"github.com/AntTheLimey/ddldoc/internal/catalog"
	"github.com/AntTheLimey/ddldoc/internal/drift"
	"github.com/AntTheLimey/ddldoc/internal/parser"
	"github.com/AntTheLimey/ddldoc/internal/reporter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	driftFile   string
	driftConn   connFlags
	driftOut    outputFlags
	driftFailOn string
)

var driftCmd = &cobra.Command{
	Use:   "drift",
	Short: "Compare a DDL file with a live PostgreSQL schema",
	Long: "Parse a SQL file, read the tables of one schema from a PostgreSQL catalog, " +
		"and report missing tables and columns, nullability and comment differences.",
	RunE: runDrift,
}

func init() {
	driftCmd.Flags().StringVar(&driftFile, "file", "", `Path to SQL file, or "-" for stdin (required)`)
	driftCmd.MarkFlagRequired("file")
	addConnFlags(driftCmd, &driftConn)
	addOutputFlags(driftCmd, &driftOut, "markdown")
	driftCmd.Flags().StringVar(&driftFailOn, "fail-on", "never", "Exit non-zero when a difference is at least this severe (error, warning, notice, never)")
}

func runDrift(cmd *cobra.Command, args []string) error {
	if err := checkFormat(driftOut.Format); err != nil {
		return err
	}
	threshold, failOn, err := parseFailOn(driftFailOn)
	if err != nil {
		return err
	}

	sql, err := readInput(driftFile, appConfig.Parser.MaxInputBytes)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	res, err := parser.ParseConcurrent(ctx, sql, appConfig.Parser.Workers)
	if err != nil {
		return fmt.Errorf("parse %s: %w", driftFile, err)
	}
	logDropped(res.Dropped)

	cfg := driftConn.config()
	conn, err := catalog.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer conn.Close(ctx)

	dbTables, err := catalog.LoadTables(ctx, conn, driftConn.Schema)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded",
		zap.String("target", cfg.Label()),
		zap.String("schema", driftConn.Schema),
		zap.Int("tables", len(dbTables)))

	report := drift.Compare(driftFile, cfg.Label(), res.Tables, dbTables)
	output, err := reporter.Render(report, driftOut.Format)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := writeOutput(output, driftOut, sourceName(driftFile)+"_drift"); err != nil {
		return err
	}
	return exceeds(report, threshold, failOn)
}
