package http

import (
	"github.com/rs/zerolog"
)

// RawMessage is the full byte sequence one connection delivered before its
// end-of-stream signal, in arrival order.
type RawMessage []byte

type HttpRequest struct {
	HttpMethod  string
	HttpVersion string
	Path        string
	Headers     *Headers
	RawBody     []byte
	Logger      zerolog.Logger
}

// DecodedBody holds the structured form of a request body. A nil DecodedBody
// means no decoder ran; it is never defaulted to an empty map.
type DecodedBody map[string]string
