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

// runTimeFormat is the timestamp rendering used in run listings.
const runTimeFormat = time.RFC3339

// WriteRunRecords outputs the run-tracking history, dispatching on the
// configured output format.
func WriteRunRecords(records []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsCSV(w, records)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(w, records)
		}, "Wrote table")
	}
}

func writeRunsTable(w io.Writer, records []schema.RunRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Start", "Duration", "Data Dir", "Pad", "Train", "Test", "Classes", "Seed"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range records {
		duration := "-"
		if r.RunDurationMs != nil {
			duration = fmt.Sprintf("%dms", *r.RunDurationMs)
		}
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartTime.Format(runTimeFormat),
			duration,
			r.DataDir,
			strconv.Itoa(int(r.PadSize)),
			strconv.Itoa(int(r.TrainRows)),
			strconv.Itoa(int(r.TestRows)),
			strconv.Itoa(int(r.ClassCount)),
			strconv.FormatInt(r.Seed, 10),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d run(s)\n", len(records))
	return err
}

// PrintRunStoreStatus prints run tracking status information.
func PrintRunStoreStatus(status schema.RunStoreStatus) {
	fmt.Printf("Run Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
	}
}

func writeRunsCSV(w io.Writer, records []schema.RunRecord) error {
	header := []string{
		"run_id", "start_time", "end_time", "run_duration_ms", "data_dir",
		"seed", "percentile", "train_fraction", "pad_size", "train_rows", "test_rows", "class_count",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			endTime := ""
			if r.EndTime != nil {
				endTime = r.EndTime.Format(runTimeFormat)
			}
			duration := ""
			if r.RunDurationMs != nil {
				duration = strconv.Itoa(int(*r.RunDurationMs))
			}
			rec := []string{
				strconv.FormatInt(r.RunID, 10),
				r.StartTime.Format(runTimeFormat),
				endTime,
				duration,
				r.DataDir,
				strconv.FormatInt(r.Seed, 10),
				strconv.FormatFloat(r.Percentile, 'g', -1, 64),
				strconv.FormatFloat(r.TrainFraction, 'g', -1, 64),
				strconv.Itoa(int(r.PadSize)),
				strconv.Itoa(int(r.TrainRows)),
				strconv.Itoa(int(r.TestRows)),
				strconv.Itoa(int(r.ClassCount)),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
