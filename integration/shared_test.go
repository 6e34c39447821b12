//go:build integration || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedBinaryPath holds the path to a shared tensorprep binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getTensorprepBinary returns the path to the tensorprep binary, building it once if needed.
func getTensorprepBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "tensorprep-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binPath := filepath.Join(tempDir, "tensorprep")
		buildCmd := exec.Command("go", "build", "-o", binPath, "./cmd/tensorprep")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build tensorprep: %v", err))
		}

		sharedBinaryPath = binPath
	})

	return sharedBinaryPath
}

// runTensorprepCommand runs the shared binary with the given args.
func runTensorprepCommand(t *testing.T, args ...string) error {
	binPath := getTensorprepBinary()
	cmd := exec.Command(binPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}

// writeFixtureDataset lays out a tiny two-recording dataset under dir.
func writeFixtureDataset(t *testing.T, dir string) {
	t.Helper()

	writeFile := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}

	writeFile("activity_labels.txt", "1 WALKING\n2 SITTING\n")
	writeFile("labels.txt", "1 1 1 0 99\n1 1 2 100 199\n2 2 1 0 149\n2 2 2 150 249\n")

	signal := func(n int) string {
		var rows string
		for i := 0; i < n; i++ {
			rows += fmt.Sprintf("%f %f %f\n", float64(i)*0.1, float64(i)*0.2, float64(i)*0.3)
		}
		return rows
	}
	writeFile("motion_exp01_user01.txt", signal(200))
	writeFile("rotation_exp01_user01.txt", signal(200))
	writeFile("motion_exp02_user02.txt", signal(250))
	writeFile("rotation_exp02_user02.txt", signal(250))
}
