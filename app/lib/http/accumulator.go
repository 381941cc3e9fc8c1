package http

// Accumulator collects the chunks the transport delivers for one connection.
// Chunks are kept as a list and joined exactly once at Finalize, so the total
// cost stays linear in the number of bytes received rather than re-copying
// the whole buffer on every chunk.
type Accumulator struct {
	chunks [][]byte
	size   int
}

func NewAccumulator() *Accumulator {
	return new(Accumulator)
}

// Append records a chunk in arrival order. The chunk is copied, as transports
// commonly reuse their read buffer between deliveries.
func (a *Accumulator) Append(chunk []byte) {
	if len(chunk) == 0 {
		return
	}

	owned := make([]byte, len(chunk))
	copy(owned, chunk)

	a.chunks = append(a.chunks, owned)
	a.size += len(owned)
}

// Finalize joins everything received into one RawMessage and releases the
// chunk list. It is called exactly once, on the transport's end-of-stream
// signal. When nothing arrived the result is an empty RawMessage, which is a
// valid "no request" value rather than an error.
func (a *Accumulator) Finalize() RawMessage {
	raw := make(RawMessage, 0, a.size)
	for _, chunk := range a.chunks {
		raw = append(raw, chunk...)
	}

	a.chunks = nil
	a.size = 0

	return raw
}
