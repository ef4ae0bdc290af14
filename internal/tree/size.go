package tree

import (
	"strconv"
	"strings"
)

const sizeUnitStep = 1024

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count using the largest unit that keeps the value below 1024,
// capped at TB, with at most two decimals and trailing zeros removed.
func FormatSize(sizeBytes int64) string {
	if sizeBytes < 0 {
		sizeBytes = 0
	}
	value := float64(sizeBytes)
	unitIndex := 0
	for value >= sizeUnitStep && unitIndex < len(sizeUnits)-1 {
		value /= sizeUnitStep
		unitIndex++
	}
	formatted := strconv.FormatFloat(value, 'f', 2, 64)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimSuffix(formatted, ".")
	return formatted + " " + sizeUnits[unitIndex]
}
