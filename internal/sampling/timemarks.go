package sampling

import "math"

// MaxOffsets caps how many offsets Generate will ever produce.
const MaxOffsets = 1 << 20

// Count returns how many offsets Generate yields for duration and interval
// without allocating them. Invalid inputs count as zero; counts beyond the
// int range saturate at math.MaxInt.
func Count(duration, interval float64) int {
	if !finite(duration) || !finite(interval) || interval <= 0 || duration <= 0 {
		return 0
	}
	limit := duration - interval
	if limit < 0 {
		return 0
	}
	n := math.Floor(limit/interval) + 1
	if n >= math.MaxInt || !finite(n) {
		return math.MaxInt
	}
	return int(n)
}

// Generate returns the sample offsets, in seconds, for a media file of the
// given duration sampled every interval seconds. Offsets start at 0 and step by
// repeated addition; the last offset satisfies offset <= duration-interval so
// every sample has a full interval of media behind it. Invalid inputs,
// durations shorter than one interval, and plans larger than MaxOffsets yield
// no offsets.
func Generate(duration, interval float64) []float64 {
	n := Count(duration, interval)
	if n == 0 || n > MaxOffsets {
		return nil
	}
	limit := duration - interval
	offsets := make([]float64, 0, n)
	for offset := 0.0; offset <= limit; {
		offsets = append(offsets, offset)
		next := offset + interval
		if next == offset {
			break
		}
		offset = next
	}
	return offsets
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
