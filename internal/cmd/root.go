// Package cmd implements the CLI commands for ddldoc.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/AntTheLimey/ddldoc/internal/catalog"
	"github.com/AntTheLimey/ddldoc/internal/config"
	"github.com/AntTheLimey/ddldoc/internal/logging"
	"github.com/AntTheLimey/ddldoc/internal/reporter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "0.1.0"

var (
	configPath string
	verbose    bool

	// Set by the root command before any subcommand runs.
	appConfig = config.Default()
	logger    = zap.NewNop()
	closeLog  = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "ddldoc",
	Short: "Document and lint CREATE TABLE statements",
	Long: "ddldoc extracts table and column metadata from MySQL-style CREATE TABLE DDL, " +
		"renders it as a table-by-table schema document, lints it, and compares it with a live database.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { closeLog() },
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.Version = version

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress at debug level")

	rootCmd.AddCommand(documentCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(driftCmd)
	rootCmd.AddCommand(listChecksCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, closeFn, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	appConfig, logger, closeLog = cfg, log, closeFn
	logger.Debug("configuration loaded", zap.String("path", configPath), zap.String("command", cmd.Name()))
	return nil
}

var knownCommands = []string{"document", "lint", "drift", "list-checks", "help", "completion"}

// withDefaultCommand prepends "document" unless a known command or a
// top-level flag follows the leading persistent flags. Arguments made up
// only of persistent flags are returned unchanged.
func withDefaultCommand(args []string) []string {
	i := 0
	for i < len(args) {
		switch arg := args[i]; {
		case arg == "-c" || arg == "--config":
			i += 2
		case strings.HasPrefix(arg, "--config="), strings.HasPrefix(arg, "-c") && len(arg) > 2 && arg[2] != '-':
			i++
		case arg == "-v" || arg == "--verbose" || strings.HasPrefix(arg, "--verbose="):
			i++
		default:
			if slices.Contains(knownCommands, arg) || arg == "--version" || arg == "--help" || arg == "-h" {
				return args
			}
			return append([]string{"document"}, args...)
		}
	}
	return args
}

// Execute runs the root command. Called from main(). An interrupt cancels
// the command's context.
func Execute() error {
	if len(os.Args) > 1 {
		rootCmd.SetArgs(withDefaultCommand(os.Args[1:]))
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// Connection flags used by the drift command.
type connFlags struct {
	DSN      string
	Host     string
	Port     int
	DBName   string
	User     string
	Password string
	Schema   string
}

func (f connFlags) config() catalog.Config {
	return catalog.Config{
		Host:     f.Host,
		Port:     f.Port,
		DBName:   f.DBName,
		User:     f.User,
		Password: f.Password,
		DSN:      f.DSN,
	}
}

// Output flags shared by document, lint and drift.
type outputFlags struct {
	Format string
	Output string
}

func addConnFlags(cmd *cobra.Command, f *connFlags) {
	cmd.Flags().StringVar(&f.DSN, "dsn", "", "PostgreSQL connection URI (postgres://...)")
	cmd.Flags().StringVarP(&f.Host, "host", "H", "", "Database host")
	cmd.Flags().IntVarP(&f.Port, "port", "p", 5432, "Database port")
	cmd.Flags().StringVarP(&f.DBName, "dbname", "d", "", "Database name")
	cmd.Flags().StringVarP(&f.User, "user", "U", "", "Database user")
	cmd.Flags().StringVarP(&f.Password, "password", "W", "", "Database password")
	cmd.Flags().StringVar(&f.Schema, "schema", "public", "Schema to read tables from")
}

func addOutputFlags(cmd *cobra.Command, f *outputFlags, defaultFormat string) {
	cmd.Flags().StringVarP(&f.Format, "format", "f", defaultFormat, "Output format (markdown, html, json, yaml)")
	cmd.Flags().StringVarP(&f.Output, "output", "o", "", `Output file path, or "-" for stdout (default: ./reports/<name>_<timestamp>.<ext>)`)
}

func splitComma(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func checkFormat(format string) error {
	if !slices.Contains(reporter.Formats, format) {
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}
