package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Accuracy label constants.
const (
	ExactValue     = "Exact"     // matched to the full reported precision
	ExcellentValue = "Excellent" // 20+ correct digits
	GoodValue      = "Good"      // 10+ correct digits
	FairValue      = "Fair"      // 4+ correct digits
	PoorValue      = "Poor"      // fewer than 4 correct digits
)

// Color variables for console output.
var (
	ExactColor     = color.New(color.FgGreen, color.Bold)
	ExcellentColor = color.New(color.FgGreen)
	GoodColor      = color.New(color.FgCyan)
	FairColor      = color.New(color.FgYellow)
	PoorColor      = color.New(color.FgRed)
)

// GetPlainLabel returns a plain text label for the accuracy of a result
// based on its correct digit count. This is the core logic used for CSV,
// JSON, and table printing.
func GetPlainLabel(digits, limit int) string {
	switch {
	case digits >= limit:
		return ExactValue
	case digits >= 20:
		return ExcellentValue
	case digits >= 10:
		return GoodValue
	case digits >= 4:
		return FairValue
	default:
		return PoorValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(digits, limit int) string {
	text := GetPlainLabel(digits, limit)

	switch text {
	case ExactValue:
		return ExactColor.Sprint(text)
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// TruncateExpression shortens long expressions for table display, keeping
// the head where the structure usually is.
func TruncateExpression(expr string, maxWidth int) string {
	if maxWidth <= 3 || len(expr) <= maxWidth {
		return expr
	}
	return expr[:maxWidth-3] + "..."
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

// SelectOutputFile opens path for writing, or returns stdout when path is
// empty.
func SelectOutputFile(path string) (*os.File, error) {
	if path == "" {
		return os.Stdout, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create output file %q: %w", path, err)
	}
	return file, nil
}

// ArchiveDBFilePath returns the path to the SQLite DB file for the results
// archive.
func ArchiveDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".constfit_archive.db"
	}
	return filepath.Join(homeDir, ".constfit_archive.db")
}
