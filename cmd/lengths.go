package cmd

import (
	"github.com/huangsam/tensorprep/core"
	"github.com/huangsam/tensorprep/internal/contract"
	"github.com/spf13/cobra"
)

// lengthsCmd reports the observation length distribution.
var lengthsCmd = &cobra.Command{
	Use:   "lengths [data-dir]",
	Short: "Report the observation length distribution per activity.",
	Long: `Inspect how long labeled observations are before committing to a pad size.

For each activity this reports the observation count, minimum, median,
configured percentile and maximum lengths, plus the mean. The percentile
column shows exactly what pad size 'prepare' would derive at the same
--percentile setting, so you can judge the padding/truncation trade-off
before tensorizing.

Examples:
  # Inspect the default 98th percentile
  tensorprep lengths ./HAPT-data

  # See how much a lower percentile would truncate
  tensorprep lengths ./HAPT-data --percentile 0.9

  # Render an HTML histogram of the distribution
  tensorprep lengths ./HAPT-data --chart lengths.html`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLengths(cfg); err != nil {
			contract.LogFatal("Cannot report lengths", err)
		}
	},
}
