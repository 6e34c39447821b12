package cmd

import (
	"github.com/huangsam/tensorprep/core"
	"github.com/huangsam/tensorprep/internal/contract"
	"github.com/spf13/cobra"
)

// prepareCmd runs the full preparation pipeline.
var prepareCmd = &cobra.Command{
	Use:   "prepare [data-dir]",
	Short: "Window labeled sensor recordings into fixed-size tensors.",
	Long: `Run the full preparation pipeline against a raw dataset directory.

The pipeline:
- Parses the label index and activity name table
- Loads each recording's accelerometer and gyroscope files and zips them
  into six-channel samples, failing when the two files disagree on length
- Cuts labeled observations out of every recording
- Splits subjects deterministically into train and test groups
- Sizes the padding window from a length percentile of the TRAINING split
- Left-pads or truncates every observation to that window
- One-hot encodes activity labels
- Exports train/test tensors as Parquet plus a manifest.json

Any malformed label row, missing signal file, misaligned channel pair,
out-of-range interval or unknown activity id aborts the run. Use
'tensorprep check' first to see every problem at once.

Examples:
  # Prepare with defaults (98th percentile, 70/30 split, seed 42)
  tensorprep prepare ./HAPT-data

  # Keep only walking-related activities with a custom split
  tensorprep prepare ./HAPT-data --activities 1,2,3 --train-fraction 0.8

  # Reproduce a prior run exactly
  tensorprep prepare ./HAPT-data --seed 1337 --percentile 0.95

  # Emit the summary as JSON for scripting
  tensorprep prepare ./HAPT-data --output json --output-file summary.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePrepare(cfg, runStore); err != nil {
			contract.LogFatal("Cannot prepare dataset", err)
		}
	},
}
