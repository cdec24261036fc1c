package sampling

// DefaultPacketSize is the number of offsets handed to the extraction backend
// in one call when no size is configured.
const DefaultPacketSize = 10

// Packet is a contiguous run of sample offsets submitted to the backend in a
// single call.
type Packet struct {
	Index   int
	Offsets []float64
}

// Split partitions offsets into packets of at most maxSize entries, preserving
// order. Concatenating the packets reproduces offsets exactly. No empty packet
// is ever returned, so an empty input or a non-positive maxSize yields nil.
func Split(offsets []float64, maxSize int) []Packet {
	if maxSize <= 0 || len(offsets) == 0 {
		return nil
	}
	count := (len(offsets) + maxSize - 1) / maxSize
	packets := make([]Packet, 0, count)
	for start := 0; start < len(offsets); start += maxSize {
		end := min(start+maxSize, len(offsets))
		packets = append(packets, Packet{
			Index:   len(packets),
			Offsets: append([]float64(nil), offsets[start:end]...),
		})
	}
	return packets
}
