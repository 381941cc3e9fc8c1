package http

import (
	"strconv"
	"strings"
)

/*
---------------------------------
RESPONSE
---------------------------------

// Status line
HTTP/1.1 200 OK
\r\n                           // CRLF that marks the end of the status line

// Headers (fixed, deterministic order)
Server: oneshot-http\r\n
Content-Length: 13\r\n         // size of the response body, in BYTES
Content-Type: text/plain\r\n
Connection: close\r\n          // no keep-alive in this server
\r\n                           // CRLF that marks the end of the headers

// Response body
Hello, world!

---------------------------------
*/

// BuildResponse serializes a response into its wire bytes. Content-Length is
// computed from the byte length of the body, never the character count, which
// matters for multi-byte text.
func BuildResponse(status Status, contentType string, body []byte) []byte {
	var builder strings.Builder

	// Status line
	builder.WriteString(Http1Dot1Version)
	builder.WriteString(" ")
	builder.WriteString(strconv.Itoa(status.Code))
	builder.WriteString(" ")
	builder.WriteString(status.Text)
	builder.WriteString(lineDelimiter)

	// Headers
	writeHeader(&builder, HeaderServer, ServerName)
	writeHeader(&builder, HeaderContentLength, strconv.Itoa(len(body)))
	writeHeader(&builder, HeaderContentType, contentType)
	writeHeader(&builder, HeaderConnection, ConnectionClose)

	builder.WriteString(lineDelimiter)

	return append([]byte(builder.String()), body...)
}

// BuildRequest serializes a request in the wire shape the parser consumes:
// request-line, headers in order, blank line, body. A Content-Length header
// is appended for non-empty bodies unless one was already supplied.
func BuildRequest(method, path string, headers *Headers, body []byte) []byte {
	var builder strings.Builder

	builder.WriteString(method)
	builder.WriteString(" ")
	builder.WriteString(path)
	builder.WriteString(" ")
	builder.WriteString(Http1Dot1Version)
	builder.WriteString(lineDelimiter)

	for _, pair := range headers.Pairs() {
		writeHeader(&builder, pair.Key, pair.Value)
	}

	if len(body) > 0 && !headers.Has(HeaderContentLength) {
		writeHeader(&builder, HeaderContentLength, strconv.Itoa(len(body)))
	}

	builder.WriteString(lineDelimiter)

	return append([]byte(builder.String()), body...)
}

func writeHeader(builder *strings.Builder, key string, val string) {
	builder.WriteString(key)
	builder.WriteString(": ")
	builder.WriteString(val)
	builder.WriteString(lineDelimiter)
}
