package uart

// shiftBuffer is a single multi-byte register shared by the receive and
// transmit phases of a transaction. Index 0 is the bottom (least
// significant) byte and the highest index is the top. The two phases are
// mutually exclusive in time, which is what lets one buffer serve both
// directions.
//
// The transaction controller is the only owner: the receiver and the
// transmitter never touch the buffer directly.
type shiftBuffer struct {
	bytes    []byte
	loadSize int
}

// newShiftBuffer creates a buffer with capacity max(inSize, outSize). The
// parallel-load window covers the low inSize bytes.
func newShiftBuffer(inSize, outSize int) *shiftBuffer {
	capacity := inSize
	if outSize > capacity {
		capacity = outSize
	}

	return &shiftBuffer{
		bytes:    make([]byte, capacity),
		loadSize: inSize,
	}
}

// ShiftIn discards the top byte, moves every remaining byte up one position
// and inserts v at the bottom.
func (b *shiftBuffer) ShiftIn(v byte) {
	copy(b.bytes[1:], b.bytes[:len(b.bytes)-1])
	b.bytes[0] = v
}

// Load stages word in the low-loadSize window so that word[0] sits at the
// top of the window and is the first byte to drain. Window bytes past the
// word, and buffer bytes above the window, are untouched.
func (b *shiftBuffer) Load(word []byte) {
	n := len(word)
	if n > b.loadSize {
		n = b.loadSize
	}

	for i := 0; i < n; i++ {
		b.bytes[b.loadSize-1-i] = word[i]
	}
}

// Top returns the top byte, the one currently offered to the transmitter.
func (b *shiftBuffer) Top() byte {
	return b.bytes[len(b.bytes)-1]
}

// Window returns a copy of the low size bytes in top-down order, which for
// the inbound word is reception order: the first byte shifted in comes
// first.
func (b *shiftBuffer) Window(size int) []byte {
	word := make([]byte, size)
	for i := 0; i < size; i++ {
		word[i] = b.bytes[size-1-i]
	}

	return word
}

func (b *shiftBuffer) reset() {
	for i := range b.bytes {
		b.bytes[i] = 0
	}
}
