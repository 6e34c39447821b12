package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/tensorprep/internal/contract"
	"github.com/huangsam/tensorprep/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteCheckResult outputs the dataset integrity result, dispatching on the
// configured output format.
func WriteCheckResult(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckCSV(w, result)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(w, result, cfg, duration)
		}, "Wrote table")
	}
}

// writeCheckText prints a concise report suitable for CI logs.
func writeCheckText(w io.Writer, result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	label := contract.GetPlainCheckLabel(result.Passed)
	if cfg.UseColors {
		label = contract.GetColorCheckLabel(result.Passed)
	}
	if _, err := fmt.Fprintf(w, "Dataset check: %s (%d recordings, %d intervals, %v)\n",
		label, result.Recordings, result.Intervals, duration); err != nil {
		return err
	}
	if result.Passed {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Kind", "Exp", "User", "Detail"})

	detailWidth := maxDetailWidth(cfg)
	var data [][]string
	for _, v := range result.Violations {
		data = append(data, []string{
			v.Kind,
			strconv.Itoa(v.ExperimentID),
			strconv.Itoa(v.SubjectID),
			contract.TruncateDetail(v.Detail, detailWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// maxDetailWidth budgets the Detail column from the terminal width after
// the Kind/Exp/User columns and table chrome.
func maxDetailWidth(cfg *contract.Config) int {
	available := getTerminalWidth(cfg) - 40
	if available < 20 {
		return 20
	}
	return available
}

func writeCheckCSV(w io.Writer, result *schema.CheckResult) error {
	header := []string{"kind", "experiment_id", "subject_id", "detail"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, v := range result.Violations {
			rec := []string{
				v.Kind,
				strconv.Itoa(v.ExperimentID),
				strconv.Itoa(v.SubjectID),
				v.Detail,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
