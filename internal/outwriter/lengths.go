package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/tensorprep/internal/contract"
	"github.com/huangsam/tensorprep/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteLengthReport outputs the per-activity length distribution,
// dispatching on the configured output format.
func WriteLengthReport(stats []schema.LengthStats, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLengthCSV(w, stats, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLengthTable(w, stats, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
}

func writeLengthTable(w io.Writer, stats []schema.LengthStats, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Activity", "ID", "Count", "Min", "P50", "Pct", "Max", "Mean"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	total := 0
	for _, s := range stats {
		total += s.Count
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
	_, err := fmt.Fprintf(w, "%d observations across %d activity classes (percentile: %g). Completed in %v with %d workers.\n",
		total, len(stats), cfg.Percentile, duration, cfg.Workers)
	return err
}

func writeLengthCSV(w io.Writer, stats []schema.LengthStats, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"activity", "activity_id", "count", "min_len", "p50_len", "pct_len", "max_len", "mean_len"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range stats {
			rec := []string{
				s.ActivityName,
				fmt.Sprintf(intFmt, s.ActivityID),
				fmt.Sprintf(intFmt, s.Count),
				fmt.Sprintf(intFmt, s.MinLength),
				fmt.Sprintf(intFmt, s.P50Length),
				fmt.Sprintf(intFmt, s.PctLength),
				fmt.Sprintf(intFmt, s.MaxLength),
				fmtFloat(s.MeanLength),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
