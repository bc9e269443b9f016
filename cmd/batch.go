package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jlighthall/tlcompare/internal/batch"
	"github.com/jlighthall/tlcompare/internal/output"
	"github.com/jlighthall/tlcompare/pkg/tlcompare"
)

var (
	batchUserThreshold     float64
	batchCriticalThreshold float64
	batchPrintThreshold    float64
	batchJSON              bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yml>",
	Short: "Compare many file pairs listed in a manifest, concurrently",
	Long: `batch reads a YAML manifest of file pairs and runs each comparison
concurrently, printing results in manifest order. Exit code is 1 if any
pair fails, for any reason (structural mismatch, critical difference,
verdict failure, or a fatal comparison error).`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := batch.LoadManifest(args[0])
		if err != nil {
			return fmt.Errorf("load manifest: %w", err)
		}

		defaults := tlcompare.Thresholds{
			UserThreshold:     batchUserThreshold,
			CriticalThreshold: batchCriticalThreshold,
			PrintThreshold:    batchPrintThreshold,
		}

		results, err := batch.Run(context.Background(), manifest, defaults)
		if err != nil {
			return fmt.Errorf("run batch: %w", err)
		}

		anyFail := false
		for _, r := range results {
			if batchJSON {
				if err := output.WriteJSON(cmd.OutOrStdout(), r.Report); err != nil {
					return fmt.Errorf("write json report: %w", err)
				}
			} else {
				output.RenderSummary(cmd.OutOrStdout(), r.Report)
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if r.Report.FatalErr != nil || !r.Report.Pass {
				anyFail = true
			}
		}

		if anyFail {
			return &tlcompare.ExitError{Code: 1, Err: fmt.Errorf("one or more pairs failed")}
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().Float64Var(&batchUserThreshold, "user-threshold", 0.05, "default significance threshold for pairs that don't override it")
	batchCmd.Flags().Float64Var(&batchCriticalThreshold, "critical-threshold", 10, "default critical-difference threshold")
	batchCmd.Flags().Float64Var(&batchPrintThreshold, "print-threshold", 1, "default presentation-only print threshold")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "emit each report as JSON instead of the colored summary")
	rootCmd.AddCommand(batchCmd)
}
