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
	"github.com/olekukonko/tablewriter/tw"
)

// PrintPrepareHeader announces the pipeline configuration before a text-mode run.
func PrintPrepareHeader(cfg *contract.Config) {
	fmt.Printf("tensorprep: preparing %s\n", cfg.DataDir)
	fmt.Printf("activities=%s percentile=%g train-fraction=%g seed=%d truncate-from=%s\n\n",
		contract.FormatIntList(cfg.ActivityIDs), cfg.Percentile, cfg.TrainFraction, cfg.Seed, cfg.TruncateFrom)
}

// WritePrepareSummary outputs the prepare run summary, dispatching on the
// configured output format.
func WritePrepareSummary(summary *schema.PrepareSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, summary, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, summary, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
}

// writeSummaryTable renders the per-activity table plus split facts.
func writeSummaryTable(w io.Writer, summary *schema.PrepareSummary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Activity", "ID", "Count", "Min", "P50", "Pct", "Max", "Mean"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range summary.ActivityCounts {
		data = append(data, []string{
			s.ActivityName,
			fmt.Sprintf(intFmt, s.ActivityID),
			fmt.Sprintf(intFmt, s.Count),
			fmt.Sprintf(intFmt, s.MinLength),
			fmt.Sprintf(intFmt, s.P50Length),
			fmt.Sprintf(intFmt, s.PctLength),
			fmt.Sprintf(intFmt, s.MaxLength),
			fmtFloat(s.MeanLength),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	trainLabel := string(schema.TrainSplit)
	testLabel := string(schema.TestSplit)
	if cfg.UseColors {
		trainLabel = contract.GetColorSplitLabel(schema.TrainSplit)
		testLabel = contract.GetColorSplitLabel(schema.TestSplit)
	}
	if _, err := fmt.Fprintf(w, "Pad size %d across %d observations from %d recordings (offset %d, %d classes)\n",
		summary.PadSize, summary.Observations, summary.Recordings, summary.Offset, summary.ClassCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s: %d rows, subjects [%s]\n", trainLabel, summary.TrainRows, contract.FormatIntList(summary.TrainSubjects)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s: %d rows, subjects [%s]\n", testLabel, summary.TestRows, contract.FormatIntList(summary.TestSubjects)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Tensors written to %s in %v\n", summary.OutDir, duration)
	return err
}

// writeSummaryCSV writes one row per activity class with the run-level
// columns repeated, which keeps the file trivially joinable downstream.
func writeSummaryCSV(w io.Writer, summary *schema.PrepareSummary, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"activity", "activity_id", "count", "min_len", "p50_len", "pct_len", "max_len", "mean_len",
		"pad_size", "train_rows", "test_rows", "class_count", "offset", "seed",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range summary.ActivityCounts {
			rec := []string{
				s.ActivityName,
				fmt.Sprintf(intFmt, s.ActivityID),
				fmt.Sprintf(intFmt, s.Count),
				fmt.Sprintf(intFmt, s.MinLength),
				fmt.Sprintf(intFmt, s.P50Length),
				fmt.Sprintf(intFmt, s.PctLength),
				fmt.Sprintf(intFmt, s.MaxLength),
				fmtFloat(s.MeanLength),
				fmt.Sprintf(intFmt, summary.PadSize),
				fmt.Sprintf(intFmt, summary.TrainRows),
				fmt.Sprintf(intFmt, summary.TestRows),
				fmt.Sprintf(intFmt, summary.ClassCount),
				fmt.Sprintf(intFmt, summary.Offset),
				strconv.FormatInt(summary.Seed, 10),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
