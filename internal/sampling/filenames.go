package sampling

import (
	"strconv"
	"strings"
)

// FormatOffset renders an offset the way it appears in thumbnail filenames:
// the shortest decimal that round-trips, so 10 becomes "10" and 2.5 stays "2.5".
func FormatOffset(offset float64) string {
	return strconv.FormatFloat(offset, 'f', -1, 64)
}

// Filename substitutes the formatted offset into the first %s of template.
func Filename(template string, offset float64) string {
	return strings.Replace(template, "%s", FormatOffset(offset), 1)
}

// Filenames maps each offset through Filename, preserving order.
func Filenames(template string, offsets []float64) []string {
	names := make([]string, 0, len(offsets))
	for _, offset := range offsets {
		names = append(names, Filename(template, offset))
	}
	return names
}
