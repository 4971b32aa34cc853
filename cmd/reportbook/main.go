package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"reportbook/internal/assembler"
	"reportbook/internal/config"
	"reportbook/internal/logger"
	"reportbook/internal/review"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	errUsage  = errors.New("usage")
	errFailed = errors.New("workbook assembly failed")
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type options struct {
	configPath string
	logFile    string
	review     bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout))
}

// execute runs the CLI and returns the process exit code
func execute(args []string, out io.Writer) int {
	cmd := newRootCommand(out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFailed):
		return 1
	case errors.Is(err, errUsage):
		printUsage(out)
		return 1
	default:
		fmt.Fprintf(out, "Error: %v\n", err)
		printUsage(out)
		return 1
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "reportbook <reports_dir> <timestamp>",
		Short: "Combine timestamped link-testing CSV reports into one Excel workbook",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(out, opts, args[0], args[1])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file (default: "+config.DefaultPath()+" if present)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Append logs to this file")
	cmd.Flags().BoolVar(&opts.review, "review", false, "Browse the written workbook in an interactive view")

	return cmd
}

func run(out io.Writer, opts *options, reportsDir, timestamp string) error {
	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Error loading config: %v", err)))
		return errFailed
	}

	logFile := cfg.Log.File
	if opts.logFile != "" {
		logFile = opts.logFile
	}
	closer, err := logger.Setup(cfg.Log.Level, logFile)
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Error opening log: %v", err)))
		return errFailed
	}
	defer closer.Close()

	fmt.Fprintln(out, "Timestamped Excel workbook creator")
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Timestamp:"), timestamp)
	fmt.Fprintf(out, "%s %s\n\n", labelStyle.Render("Reports directory:"), reportsDir)

	a := &assembler.Assembler{
		Set:           cfg.ReportSet(),
		OutputPattern: cfg.Report.OutputPattern,
		Format:        cfg.FormatOptions(),
	}
	result := a.Assemble(reportsDir, timestamp)

	printResult(out, result)

	if !result.Success {
		return errFailed
	}

	if opts.review {
		if err := review.Run(result.Path); err != nil {
			logger.Error("Review failed", "error", err)
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Error running review: %v", err)))
		}
	}
	return nil
}

func printResult(out io.Writer, result *assembler.Result) {
	for _, sheet := range result.Sheets {
		fmt.Fprintf(out, "   %s %s (%d rows)\n", successStyle.Render("✓"), sheet.Sheet, sheet.Rows)
	}
	for _, file := range result.Missing {
		fmt.Fprintf(out, "   %s\n", warnStyle.Render("File not found: "+file))
	}
	for _, failed := range result.Failed {
		fmt.Fprintf(out, "   %s\n", warnStyle.Render(fmt.Sprintf("Could not process %s: %v", failed.File, failed.Err)))
	}
	fmt.Fprintln(out)

	if result.Success {
		fmt.Fprintln(out, successStyle.Render("✓ Excel workbook created successfully!"))
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("File:"), filepath.Base(result.Path))
		fmt.Fprintf(out, "%s %d\n", labelStyle.Render("Sheets:"), result.SheetsCreated)
		return
	}

	fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("❌ Excel workbook creation failed: %v", result.Err)))
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "reportbook - Timestamped CSV report to Excel workbook")
	fmt.Fprintln(out, "\nUsage:")
	fmt.Fprintln(out, "  reportbook [flags] <reports_dir> <timestamp>")
	fmt.Fprintln(out, "\nFlags:")
	fmt.Fprintln(out, "  --config <file>     TOML config file")
	fmt.Fprintln(out, "  --log-file <file>   Append logs to this file")
	fmt.Fprintln(out, "  --review            Browse the written workbook in an interactive view")
}
