package chromepdf

import (
	"fmt"
	"strings"
)

const cmPerInch = 2.54

// paperSizes lists portrait dimensions in inches.
var paperSizes = map[string][2]float64{
	"A3":     {11.69, 16.54},
	"A4":     {8.27, 11.69},
	"A5":     {5.83, 8.27},
	"LETTER": {8.5, 11},
	"LEGAL":  {8.5, 14},
}

// PaperSize returns the portrait width and height in inches for a named format.
func PaperSize(format string) (width, height float64, err error) {
	size, ok := paperSizes[strings.ToUpper(strings.TrimSpace(format))]
	if !ok {
		return 0, 0, fmt.Errorf("unsupported paper format %q", format)
	}
	return size[0], size[1], nil
}

// Inches converts centimetres to inches.
func Inches(cm float64) float64 {
	return cm / cmPerInch
}
