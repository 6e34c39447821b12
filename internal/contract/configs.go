package contract

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/tensorprep/schema"
)

// Default values for configuration.
const (
	DefaultPercentile    = 0.98
	DefaultTrainFraction = 0.7
	DefaultSeed          = int64(42)
	DefaultPrecision     = 1
	DefaultRunsLimit     = 25
	MaxRunsLimit         = 1000
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for a pipeline run.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir string
	OutDir  string

	// ActivityIDs is the allow-list of retained activity classes, a sorted
	// contiguous id range. The smallest id becomes the label-encoding offset.
	ActivityIDs []int

	Percentile    float64
	TrainFraction float64
	Seed          int64
	TruncateFrom  schema.TruncateSide
	Workers       int

	Output     schema.OutputMode
	OutputFile string
	ChartFile  string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	RunsLimit int

	UseColors bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataDirStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Activities    string  `mapstructure:"activities"`
	Percentile    float64 `mapstructure:"percentile"`
	TrainFraction float64 `mapstructure:"train-fraction"`
	Seed          int64   `mapstructure:"seed"`
	TruncateFrom  string  `mapstructure:"truncate-from"`
	Workers       int     `mapstructure:"workers"`
	Output        string  `mapstructure:"output"`
	OutputFile    string  `mapstructure:"output-file"`
	Precision     int     `mapstructure:"precision"`
	Width         int     `mapstructure:"width"`
	RunBackend    string  `mapstructure:"run-backend"`
	RunDBConnect  string  `mapstructure:"run-db-connect"`
	Color         string  `mapstructure:"color"`

	// --- Fields from prepareCmd.Flags() ---
	OutDir string `mapstructure:"out-dir"`

	// --- Fields from lengthsCmd.Flags() ---
	Chart string `mapstructure:"chart"`

	// --- Fields from runsCmd.Flags() ---
	RunsLimit int `mapstructure:"runs-limit"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processActivityList(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return resolveDataDir(cfg, input)
}

// validateSimpleInputs handles the scalar tunables and enum-valued options.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Percentile <= 0 || input.Percentile > 1 {
		return fmt.Errorf("percentile must be in (0, 1], got %g", input.Percentile)
	}
	cfg.Percentile = input.Percentile

	if input.TrainFraction <= 0 || input.TrainFraction >= 1 {
		return fmt.Errorf("train-fraction must be in (0, 1), got %g", input.TrainFraction)
	}
	cfg.TrainFraction = input.TrainFraction

	cfg.Seed = input.Seed

	cfg.TruncateFrom = schema.TruncateSide(strings.ToLower(input.TruncateFrom))
	if _, ok := schema.ValidTruncateSides[cfg.TruncateFrom]; !ok {
		return fmt.Errorf("invalid truncate-from '%s'. must be head, tail", input.TruncateFrom)
	}

	if input.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", input.Workers)
	}
	cfg.Workers = input.Workers

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output '%s'. must be text, csv, json", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.ChartFile = input.Chart
	cfg.OutDir = input.OutDir

	if input.Precision < 0 || input.Precision > 6 {
		return fmt.Errorf("precision must be in [0, 6], got %d", input.Precision)
	}
	cfg.Precision = input.Precision
	cfg.Width = input.Width

	if input.RunsLimit < 1 || input.RunsLimit > MaxRunsLimit {
		return fmt.Errorf("runs-limit must be in [1, %d], got %d", MaxRunsLimit, input.RunsLimit)
	}
	cfg.RunsLimit = input.RunsLimit

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	cfg.UseColors = useColors

	return nil
}

// processActivityList parses the comma-separated activity allow-list.
func processActivityList(cfg *Config, input *ConfigRawInput) error {
	raw := strings.TrimSpace(input.Activities)
	if raw == "" {
		cfg.ActivityIDs = append([]int(nil), schema.DefaultActivityIDs...)
		return nil
	}

	seen := make(map[int]struct{})
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("invalid activity id '%s' in allow-list", part)
		}
		if id < 0 {
			return fmt.Errorf("activity id must be non-negative, got %d", id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return fmt.Errorf("activity allow-list is empty")
	}
	sort.Ints(ids)

	// Label encoding subtracts the smallest id and one-hot encodes into a
	// width of len(ids), so the retained ids must form a contiguous run.
	if ids[len(ids)-1]-ids[0]+1 != len(ids) {
		return fmt.Errorf("activity allow-list must be a contiguous id range, got %s", FormatIntList(ids))
	}
	cfg.ActivityIDs = ids
	return nil
}

// validateBackendConfig validates the run-tracking backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	return ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter or use postgres:// URL form")
		}
	}
	return nil
}

// resolveDataDir validates the positional dataset directory argument.
func resolveDataDir(cfg *Config, input *ConfigRawInput) error {
	dir := input.DataDirStr
	if dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot access data directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %q is not a directory", dir)
	}
	cfg.DataDir = dir
	return nil
}

// Clone returns a deep copy of the config so callers can override fields
// per request without mutating the shared base.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ActivityIDs != nil {
		clone.ActivityIDs = make([]int, len(c.ActivityIDs))
		copy(clone.ActivityIDs, c.ActivityIDs)
	}
	return &clone
}

// RevalidateActivities re-parses an activity allow-list override on an
// already-validated config. Used by callers that accept per-request overrides.
func RevalidateActivities(cfg *Config, activities string) error {
	return processActivityList(cfg, &ConfigRawInput{Activities: activities})
}

// ActivityOffset returns the label-encoding offset: the smallest retained
// raw activity id. ActivityIDs is kept sorted, so this is the first element.
func (c *Config) ActivityOffset() int {
	return c.ActivityIDs[0]
}

// ClassCount returns the number of retained activity classes.
func (c *Config) ClassCount() int {
	return len(c.ActivityIDs)
}
