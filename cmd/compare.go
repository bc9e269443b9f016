package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jlighthall/tlcompare/internal/compare"
	"github.com/jlighthall/tlcompare/internal/config"
	"github.com/jlighthall/tlcompare/internal/output"
	"github.com/jlighthall/tlcompare/pkg/tlcompare"
)

var (
	userThreshold     float64
	criticalThreshold float64
	printThreshold    float64
	configPath        string
	jsonOutput        bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <file1> <file2>",
	Short: "Compare two transmission-loss output files",
	Long: `Compare two numeric output files, applying the six-level discrimination
hierarchy (zero, trivial, insignificant, marginal, critical, error) and the
error-pattern analyzer, producing a pass/fail verdict.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		th := tlcompare.Thresholds{
			UserThreshold:     userThreshold,
			CriticalThreshold: criticalThreshold,
			PrintThreshold:    printThreshold,
		}

		projectCfg, err := config.Load(".", configPath)
		if err != nil {
			return fmt.Errorf("load project config: %w", err)
		}
		if projectCfg != nil {
			flags := cmd.Flags()
			projectCfg.ApplyToThresholds(&th,
				flags.Changed("user-threshold"),
				flags.Changed("critical-threshold"),
				flags.Changed("print-threshold"),
			)
		}

		report := compare.New(th).Compare(args[0], args[1])

		if jsonOutput {
			if err := output.WriteJSON(cmd.OutOrStdout(), report); err != nil {
				return fmt.Errorf("write json report: %w", err)
			}
		} else {
			output.RenderSummary(cmd.OutOrStdout(), report)
		}

		if report.FatalErr != nil {
			return &tlcompare.ExitError{Code: 1, Err: report.FatalErr}
		}
		if !report.Pass {
			return &tlcompare.ExitError{Code: 1, Err: fmt.Errorf("comparison failed")}
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().Float64Var(&userThreshold, "user-threshold", 0.05, "significance threshold; negative enables percent mode, 0 enables sensitive mode")
	compareCmd.Flags().Float64Var(&criticalThreshold, "critical-threshold", 10, "critical-difference threshold")
	compareCmd.Flags().Float64Var(&printThreshold, "print-threshold", 1, "presentation-only print threshold")
	compareCmd.Flags().StringVar(&configPath, "config", "", "path to .tlcomparerc.yml project config file")
	compareCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the report as JSON instead of the colored summary")
	rootCmd.AddCommand(compareCmd)
}
