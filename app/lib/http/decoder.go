package http

import (
	"fmt"
	"net/url"
	"strings"
)

// DecodeBody decodes a non-empty body according to the MIME type portion of
// Content-Type (the text before the first ';'; parameters such as charset are
// ignored). There is exactly one built-in decoder, for url-encoded forms; any
// other type, or a missing Content-Type, fails outright rather than passing
// raw bytes through as if decoded.
func DecodeBody(headers *Headers, body []byte) (DecodedBody, error) {
	contentType, found := headers.Get(HeaderContentType)
	if !found {
		return nil, fmt.Errorf("%w: no content-type on a non-empty body", ErrUnsupportedContentType)
	}

	mime := strings.TrimSpace(contentType)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	if !strings.EqualFold(mime, FormUrlEncodedContentType) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, mime)
	}

	return decodeForm(string(body))
}

// decodeForm splits on '&', each segment on the first '=', and percent-decodes
// both sides ('+' reads as a space). Empty segments are skipped; duplicate
// keys resolve last-write-wins.
func decodeForm(body string) (DecodedBody, error) {
	decoded := make(DecodedBody)

	for _, segment := range strings.Split(body, "&") {
		if segment == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(segment, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: bad urlencoded key %q", ErrInternalProcessingError, rawKey)
		}

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: bad urlencoded value %q", ErrInternalProcessingError, rawValue)
		}

		decoded[key] = value
	}

	return decoded, nil
}
