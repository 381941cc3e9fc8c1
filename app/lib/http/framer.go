package http

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

var headTerminator = []byte("\r\n\r\n")

// Frame is the result of locating the header/body boundary in a RawMessage:
// everything before the first CRLFCRLF, and the candidate body after it.
type Frame struct {
	Head []byte
	Body []byte
}

// FrameMessage splits a finalized RawMessage at the header block terminator.
// A message with no terminator never finished its head before the stream
// ended, which in this single-shot design is always ErrIncompleteRequest,
// never a bodyless request.
func FrameMessage(raw RawMessage) (Frame, error) {
	i := bytes.Index(raw, headTerminator)
	if i < 0 {
		return Frame{}, ErrIncompleteRequest
	}

	return Frame{
		Head: raw[:i],
		Body: raw[i+len(headTerminator):],
	}, nil
}

// ResolveBody validates the candidate body against the parsed headers and
// returns the definitive body bytes. Runs after header parsing because the
// declared length lives in the head.
func ResolveBody(headers *Headers, body []byte, logger zerolog.Logger) ([]byte, error) {
	if te, found := headers.Get(HeaderTransferEncoding); found {
		if !strings.EqualFold(strings.TrimSpace(te), IdentityTransferEncoding) {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedTransferEncoding, te)
		}
	}

	cl, found := headers.Get(HeaderContentLength)
	if !found {
		if len(body) > 0 {
			// accepted ambiguity of end-of-stream framing: no declared
			// length, so the remainder of the stream is the body
			logger.Debug().Int("bytes", len(body)).Msg("no content-length declared, taking remaining bytes as body")
		}
		return body, nil
	}

	declared, err := strconv.Atoi(strings.TrimSpace(cl))
	if err != nil || declared < 0 {
		return nil, fmt.Errorf("%w: bad content-length %q", ErrMalformedHeaderLine, cl)
	}

	switch {
	case len(body) < declared:
		return nil, fmt.Errorf("%w: declared %d, got %d", ErrIncompleteBody, declared, len(body))
	case len(body) > declared:
		return nil, fmt.Errorf("%w: declared %d, got %d", ErrTrailingData, declared, len(body))
	}

	return body, nil
}
