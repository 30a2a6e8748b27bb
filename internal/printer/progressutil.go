package printer

import (
	"fmt"
	"strings"
)

const progressBarWidth = 10

// FormatProgress returns the progress with its percentage.
// Examples: "0/1 (0%)", "3/7 (42%)", "7/7 (100%)".
func FormatProgress(completed, total int) string {
	if total <= 0 {
		return fmt.Sprintf("%d/%d", completed, total)
	}

	return fmt.Sprintf("%d/%d (%d%%)", completed, total, completed*100/total)
}

// ProgressBar returns a fixed width text bar filled proportionally.
// Examples: "[----------]", "[####------]", "[##########]".
func ProgressBar(completed, total int) string {
	filled := 0
	if total > 0 {
		filled = min(max(completed, 0)*progressBarWidth/total, progressBarWidth)
	}

	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressBarWidth-filled) + "]"
}

// FormatCoins returns a signed coin amount.
// Examples: "+25", "-10", "0".
func FormatCoins(amount int) string {
	if amount > 0 {
		return fmt.Sprintf("+%d", amount)
	}
	return fmt.Sprintf("%d", amount)
}
