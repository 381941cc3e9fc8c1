package http

import (
	"fmt"
	"strings"
)

const lineDelimiter = "\r\n"

// ParseHead decomposes the header block into the request line and the
// ordered header pairs. The body is attached later, once its length has been
// resolved against these headers.
func ParseHead(head []byte) (HttpRequest, error) {
	lines := strings.Split(string(head), lineDelimiter)

	method, path, version, err := parseRequestLine(lines[0])
	if err != nil {
		return HttpRequest{}, err
	}

	headers := NewHeaders()
	for _, line := range lines[1:] {
		name, value, found := strings.Cut(line, ":")
		if !found {
			return HttpRequest{}, fmt.Errorf("%w: %q", ErrMalformedHeaderLine, line)
		}

		// name stays verbatim: storage is case-preserving, lookups fold case
		headers.Add(name, strings.TrimLeft(value, " \t"))
	}

	return HttpRequest{
		HttpMethod:  method,
		Path:        path,
		HttpVersion: version,
		Headers:     headers,
	}, nil
}

func parseRequestLine(line string) (method, path, version string, err error) {
	tokens := strings.Split(line, " ")
	if len(tokens) != 3 {
		return "", "", "", fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}

	return tokens[0], tokens[1], tokens[2], nil
}
