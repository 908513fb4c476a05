//go:build basic || database

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
	// sharedConstfitPath holds the path to a shared constfit binary built once for all tests.
	sharedConstfitPath string

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

// getConstfitBinary returns the path to the constfit binary, building it once if needed.
func getConstfitBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "constfit-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		constfitPath := filepath.Join(tempDir, "constfit")
		buildCmd := exec.Command("go", "build", "-o", constfitPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build constfit: %v", err))
		}

		sharedConstfitPath = constfitPath
	})

	return sharedConstfitPath
}

// writeBatchPayload writes a small batch payload file and returns its path.
func writeBatchPayload(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.json")
	payload := `[
		{"expression": "22/7", "target": "3.14159265358979323846", "name": "pi"},
		{"expression": "355/113", "target": "3.14159265358979323846", "name": "pi"},
		{"expression": "1/0", "target": "1"}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("failed to write batch payload: %v", err)
	}
	return path
}
