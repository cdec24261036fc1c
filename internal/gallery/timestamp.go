package gallery

import (
	"fmt"
	"math"
)

// FormatTimestamp renders an offset as unpadded hours:minutes:seconds, so 10
// seconds becomes "0:0:10" and 3725 becomes "1:2:5". Fractional seconds are
// truncated.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	hours := int64(math.Floor(seconds / 3600))
	minutes := int64(math.Floor(seconds/60)) - hours*60
	secs := int64(math.Floor(seconds)) - int64(math.Floor(seconds/60))*60
	return fmt.Sprintf("%d:%d:%d", hours, minutes, secs)
}
