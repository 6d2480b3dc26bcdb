package outwriter

import (
	"os"

	"github.com/shieldstats/shieldstats/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableTextWidth calculates how wide free text (source URLs, payment URIs)
// may be in table output, based on terminal width.
func GetMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Label column plus table borders and padding
	available := termWidth - 20
	if available < 20 {
		return 20
	}
	if available > 160 {
		return 160
	}
	return available
}
