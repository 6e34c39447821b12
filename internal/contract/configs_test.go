package contract

import (
	"testing"

	"github.com/huangsam/tensorprep/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation as-is.
func validInput(t *testing.T) *ConfigRawInput {
	t.Helper()
	return &ConfigRawInput{
		Activities:    "",
		Percentile:    0.98,
		TrainFraction: 0.7,
		Seed:          42,
		TruncateFrom:  "head",
		Workers:       4,
		Output:        "text",
		Precision:     1,
		RunBackend:    "sqlite",
		RunsLimit:     25,
		Color:         "yes",
		DataDirStr:    t.TempDir(),
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid minimal config",
			mutate:      func(_ *ConfigRawInput) {},
			expectError: false,
		},
		{
			name:        "percentile zero",
			mutate:      func(in *ConfigRawInput) { in.Percentile = 0 },
			expectError: true,
		},
		{
			name:        "percentile above one",
			mutate:      func(in *ConfigRawInput) { in.Percentile = 1.2 },
			expectError: true,
		},
		{
			name:        "percentile of exactly one",
			mutate:      func(in *ConfigRawInput) { in.Percentile = 1 },
			expectError: false,
		},
		{
			name:        "train fraction of one",
			mutate:      func(in *ConfigRawInput) { in.TrainFraction = 1 },
			expectError: true,
		},
		{
			name:        "invalid truncate side",
			mutate:      func(in *ConfigRawInput) { in.TruncateFrom = "middle" },
			expectError: true,
		},
		{
			name:        "uppercase truncate side",
			mutate:      func(in *ConfigRawInput) { in.TruncateFrom = "TAIL" },
			expectError: false,
		},
		{
			name:        "zero workers",
			mutate:      func(in *ConfigRawInput) { in.Workers = 0 },
			expectError: true,
		},
		{
			name:        "invalid output mode",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: true,
		},
		{
			name:        "precision out of range",
			mutate:      func(in *ConfigRawInput) { in.Precision = 9 },
			expectError: true,
		},
		{
			name:        "runs limit too large",
			mutate:      func(in *ConfigRawInput) { in.RunsLimit = MaxRunsLimit + 1 },
			expectError: true,
		},
		{
			name:        "invalid color string",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
		},
		{
			name:        "invalid run backend",
			mutate:      func(in *ConfigRawInput) { in.RunBackend = "oracle" },
			expectError: true,
		},
		{
			name:        "mysql without connection string",
			mutate:      func(in *ConfigRawInput) { in.RunBackend = "mysql" },
			expectError: true,
		},
		{
			name: "mysql with connection string",
			mutate: func(in *ConfigRawInput) {
				in.RunBackend = "mysql"
				in.RunDBConnect = "root:pw@tcp(localhost:3306)/tensorprep"
			},
			expectError: false,
		},
		{
			name:        "nonexistent data dir",
			mutate:      func(in *ConfigRawInput) { in.DataDirStr = "/definitely/not/a/dir" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(t)
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestProcessAndValidate_Defaults fills the default activity allow-list
// when none is given.
func TestProcessAndValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput(t)))

	assert.Equal(t, schema.DefaultActivityIDs, cfg.ActivityIDs)
	assert.Equal(t, 1, cfg.ActivityOffset())
	assert.Equal(t, 6, cfg.ClassCount())
	assert.Equal(t, schema.HeadSide, cfg.TruncateFrom)
	assert.True(t, cfg.UseColors)
}

func TestProcessActivityList(t *testing.T) {
	tests := []struct {
		name        string
		activities  string
		expected    []int
		expectError bool
	}{
		{
			name:       "empty falls back to defaults",
			activities: "",
			expected:   []int{1, 2, 3, 4, 5, 6},
		},
		{
			name:       "sorted and deduplicated",
			activities: "3,1,2,3,1",
			expected:   []int{1, 2, 3},
		},
		{
			name:       "whitespace tolerated",
			activities: " 7 , 8 ",
			expected:   []int{7, 8},
		},
		{
			name:        "non-integer id",
			activities:  "1,two",
			expectError: true,
		},
		{
			name:        "gapped allow-list",
			activities:  "1,3",
			expectError: true,
		},
		{
			name:        "wider gap",
			activities:  "2,3,7",
			expectError: true,
		},
		{
			name:        "negative id",
			activities:  "1,-2",
			expectError: true,
		},
		{
			name:        "only separators",
			activities:  ",,,",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(t)
			input.Activities = tt.activities

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.ActivityIDs)
		})
	}
}

// TestConfigClone confirms overrides on a clone leave the base untouched.
func TestConfigClone(t *testing.T) {
	base := &Config{
		DataDir:     "/data",
		ActivityIDs: []int{1, 2, 3},
		Percentile:  0.98,
	}

	clone := base.Clone()
	clone.DataDir = "/other"
	clone.ActivityIDs[0] = 99

	assert.Equal(t, "/data", base.DataDir)
	assert.Equal(t, []int{1, 2, 3}, base.ActivityIDs)
}

// TestRevalidateActivities reapplies an allow-list override on an existing config.
func TestRevalidateActivities(t *testing.T) {
	cfg := &Config{ActivityIDs: []int{1, 2, 3, 4, 5, 6}}

	require.NoError(t, RevalidateActivities(cfg, "4,5"))
	assert.Equal(t, []int{4, 5}, cfg.ActivityIDs)
	assert.Equal(t, 4, cfg.ActivityOffset())

	assert.Error(t, RevalidateActivities(cfg, "nope"))

	// A gapped override would make every prepare run fail at encoding, so
	// it is rejected up front and leaves the config untouched.
	err := RevalidateActivities(cfg, "4,6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contiguous")
	assert.Equal(t, []int{4, 5}, cfg.ActivityIDs)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{name: "sqlite ignores connection string", backend: schema.SQLiteBackend, connStr: ""},
		{name: "none ignores connection string", backend: schema.NoneBackend, connStr: ""},
		{name: "mysql valid", backend: schema.MySQLBackend, connStr: "u:p@tcp(h:3306)/db"},
		{name: "mysql missing tcp", backend: schema.MySQLBackend, connStr: "u:p@h/db", expectError: true},
		{name: "mysql empty", backend: schema.MySQLBackend, connStr: "", expectError: true},
		{name: "postgres host form", backend: schema.PostgreSQLBackend, connStr: "host=h port=5432 user=u"},
		{name: "postgres url form", backend: schema.PostgreSQLBackend, connStr: "postgres://u:p@h:5432/db"},
		{name: "postgres invalid", backend: schema.PostgreSQLBackend, connStr: "u:p@h/db", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
