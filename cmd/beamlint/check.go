package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yacobolo/beamlint"
)

var checkCmd = &cobra.Command{
	Use:   "check [patterns...]",
	Short: "Check stylesheets and markup for BEAM conformance",
	Long: `Check scans the given files (or glob patterns) and reports every
naming, layout-exclusivity and variable-fallback violation it finds.

Stylesheets contribute class selectors and custom property declarations;
markup files contribute class attribute token lists. All files are ingested
before any cross-file rule runs, so results do not depend on file order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runCheck(args)
	},
}

func init() {
	checkCmd.Flags().StringSlice("paths", nil, "Glob patterns to check (defaults to **/*.css, **/*.html, **/*.templ)")
	checkCmd.Flags().Bool("strict", false, "Exit non-zero on warnings as well as errors")
	checkCmd.Flags().StringSlice("state-words", nil, "Words treated as state names in element classes")
	checkCmd.Flags().String("theme", "", "Glob matching the generated theme artifact")
	checkCmd.Flags().String("layout-prefix", "", "Class prefix marking layout primitives")
	checkCmd.Flags().String("primitive-prefix", "", "Variable prefix marking primitive tokens")
	checkCmd.Flags().Int("workers", 0, "Number of parallel file workers (0 = NumCPU)")
	checkCmd.Flags().String("output-format", "issues", "Output format: issues, summary, json")
	checkCmd.Flags().Bool("print-rule", true, "Append the rule identifier to each diagnostic")
}

// runCheck is shared by the check subcommand and the bare root invocation.
// It calls os.Exit directly so the status maps cleanly onto exit codes.
func runCheck(args []string) error {
	quiet := k.Bool("quiet")
	verbose := k.Bool("verbose")
	forceColor := k.Bool("color")

	patterns := args
	if len(patterns) == 0 {
		patterns = checkPaths()
	}

	files, err := discoverFiles(patterns)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, "Checking %d files\n", len(files))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := beamlint.Check(ctx, files, buildCheckConfig())
	if err != nil {
		return fmt.Errorf("running checks: %w", err)
	}

	if !quiet {
		format := beamlint.DetermineOutputFormat(k.String("output-format"), quiet)
		opts := beamlint.OutputOptions{
			UseColors: forceColor,
			PrintRule: printRuleEnabled(),
		}
		if err := beamlint.WriteOutput(os.Stdout, report, format, opts); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	os.Exit(exitCode(report))
	return nil
}

// exitCode maps the run status onto the process exit code. Warnings only
// fail the run in strict mode; a cancelled run is neither clean nor failed.
func exitCode(report *beamlint.Report) int {
	switch report.Status {
	case beamlint.StatusCancelled:
		return 2
	case beamlint.StatusFailed:
		return 1
	case beamlint.StatusWarnings:
		if getBoolWithFallback("strict", "check.strict", false) {
			return 1
		}
		return 0
	}
	return 0
}

func printRuleEnabled() bool {
	return getBoolWithFallback("print-rule", "check.print-rule", true)
}
