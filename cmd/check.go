package cmd

import (
	"github.com/huangsam/tensorprep/core"
	"github.com/huangsam/tensorprep/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD dataset validation.
var checkCmd = &cobra.Command{
	Use:   "check [data-dir]",
	Short: "Validate dataset integrity (fails build on violations)",
	Long: `Scan the whole dataset and report every integrity violation at once.

Unlike 'prepare', which aborts on the first problem, 'check' keeps going
and accumulates all violations so a dataset can be fixed in one pass:
- Malformed or negative label index rows
- Missing accelerometer or gyroscope files
- Channel files that disagree on sample count
- Label intervals that point past the end of a recording
- Activity ids with no entry in the activity name table

Exits non-zero when any violation is found, making it suitable as a
CI gate in data ingestion pipelines.

Examples:
  # Validate before preparing
  tensorprep check ./HAPT-data

  # Machine-readable report for tooling
  tensorprep check ./HAPT-data --output json --output-file report.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(cfg); err != nil {
			contract.LogFatal("Dataset check failed", err)
		}
	},
}
