package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/jlighthall/tlcompare/pkg/tlcompare"
	"github.com/jlighthall/tlcompare/pkg/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "tlcompare",
	Short:   "Compare acoustic transmission-loss simulator output files",
	Long:    "tlcompare validates numeric output files against a reference, applying a\nsix-level discrimination hierarchy (zero, trivial, insignificant, marginal,\ncritical, error) and an error-pattern analyzer to decide pass/fail.",
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.SilenceErrors = true
}

// Execute runs the root command and exits with code 1 on error.
// ExitError is handled specially: its Code is used as the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *tlcompare.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
