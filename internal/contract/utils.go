package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/tensorprep/schema"
)

// Check label constants.
const (
	PassValue = "Pass"
	FailValue = "Fail"
)

// Color variables for console output.
var (
	PassColor = color.New(color.FgGreen, color.Bold)
	FailColor = color.New(color.FgRed, color.Bold)
	WarnColor = color.New(color.FgYellow)
	InfoColor = color.New(color.FgCyan)
)

// GetPlainCheckLabel returns a plain text pass/fail label. This is the core
// logic used for CSV and JSON printing.
func GetPlainCheckLabel(passed bool) string {
	if passed {
		return PassValue
	}
	return FailValue
}

// GetColorCheckLabel returns a colored pass/fail label for console output.
func GetColorCheckLabel(passed bool) string {
	if passed {
		return PassColor.Sprint(PassValue)
	}
	return FailColor.Sprint(FailValue)
}

// GetColorSplitLabel returns a colored split name for console output.
func GetColorSplitLabel(split schema.SplitName) string {
	if split == schema.TrainSplit {
		return InfoColor.Sprint(string(split))
	}
	return WarnColor.Sprint(string(split))
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tensorprep_runs.db"
	}
	return filepath.Join(homeDir, ".tensorprep_runs.db")
}

// FormatIntList renders a slice of ids as a comma-separated string.
func FormatIntList(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

// TruncateDetail shortens a violation detail to maxWidth characters,
// keeping the tail since file names and sample bounds sit at the end.
func TruncateDetail(detail string, maxWidth int) string {
	runes := []rune(detail)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return detail
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
