package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/quarkw/constfit/internal/contract"
)

// GetMaxTableExprWidth calculates the maximum width for expressions in
// table output based on terminal width and table configuration.
func GetMaxTableExprWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns: Rank, Computed, AbsErr, Digits,
	// Cmplx, Score, Label, plus borders and padding.
	baseWidth := 68

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable expression width
		return 12
	}
	if available > 60 {
		// Maximum expression width to prevent overly wide tables
		return 60
	}
	return available
}
