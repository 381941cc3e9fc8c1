package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn captures whatever the state machine writes, standing in for the
// transport's write side.
type fakeConn struct {
	out    bytes.Buffer
	closed bool
}

func (f *fakeConn) Write(p []byte) (int, error) {
	return f.out.Write(p)
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

type brokenConn struct {
	closed bool
}

func (b *brokenConn) Write(p []byte) (int, error) {
	return 0, errors.New("write: broken pipe")
}

func (b *brokenConn) Close() error {
	b.closed = true
	return nil
}

func testRouter() *Router {
	root := NewRouteHandler("/", func(req HttpRequest, body DecodedBody) (string, error) {
		return "Hello, world!", nil
	})
	details := NewRouteHandler("/details", func(req HttpRequest, body DecodedBody) (string, error) {
		return fmt.Sprintf("Hello %s, you live at address: %s", body["name"], body["address"]), nil
	})

	return NewRouter(root, details)
}

func testPipeline() HttpPipeline {
	return NewHttpPipeline(testRouter(), zerolog.Nop(), 0)
}

// run feeds a request through the event boundary in the given chunk size and
// returns the wire bytes the machine answered with.
func run(t *testing.T, request string, chunkSize int) (*fakeConn, *Conn) {
	t.Helper()

	conn := &fakeConn{}
	c := testPipeline().NewConn(conn)

	for offset := 0; offset < len(request); offset += chunkSize {
		end := offset + chunkSize
		if end > len(request) {
			end = len(request)
		}
		c.OnData([]byte(request[offset:end]))
	}
	c.OnEnd()

	require.True(t, conn.closed, "connection must always end up closed")
	require.Equal(t, StateClosed, c.State())

	return conn, c
}

func TestPipelineHelloWorld(t *testing.T) {
	// act
	conn, _ := run(t, "GET / HTTP/1.1\r\nHost: x\r\n\r\n", 1<<10)

	// assert
	response := conn.out.String()
	assert.True(t, strings.HasPrefix(response, "HTTP/1.1 200 OK\r\n"), response)
	assert.Contains(t, response, "Content-Length: 13\r\n")
	assert.Contains(t, response, "Connection: close\r\n")
	assert.True(t, strings.HasSuffix(response, "\r\n\r\nHello, world!"), response)
}

func TestPipelineFormPost(t *testing.T) {
	// arrange
	request := "POST /details HTTP/1.1\r\n" +
		"Content-Type: application/x-www-form-urlencoded\r\n" +
		"Content-Length: 21\r\n" +
		"\r\n" +
		"name=John&address=Doe"

	// act / assert: the response is identical no matter how the bytes arrive
	for _, chunkSize := range []int{len(request), 16, 3, 1} {
		conn, _ := run(t, request, chunkSize)

		response := conn.out.String()
		assert.True(t, strings.HasPrefix(response, "HTTP/1.1 200 OK\r\n"), response)
		assert.True(t, strings.HasSuffix(response, "\r\n\r\nHello John, you live at address: Doe"), response)
	}
}

func TestPipelineUnsupportedContentType(t *testing.T) {
	// arrange
	request := "POST /details HTTP/1.1\r\n" +
		"Content-Type: application/json\r\n" +
		"Content-Length: 21\r\n" +
		"\r\n" +
		`{"name":"John Doe"}  `

	// act
	conn, _ := run(t, request, 1<<10)

	// assert
	assert.True(t, strings.HasPrefix(conn.out.String(), "HTTP/1.1 500 Internal Server Error\r\n"), conn.out.String())
}

func TestPipelinePathNotFound(t *testing.T) {
	conn, _ := run(t, "GET /unknown HTTP/1.1\r\n\r\n", 1<<10)

	assert.True(t, strings.HasPrefix(conn.out.String(), "HTTP/1.1 404 Not Found\r\n"), conn.out.String())
}

func TestPipelineIncompleteRequest(t *testing.T) {
	// no header block terminator anywhere in the stream
	conn, _ := run(t, "GET / HTTP/1.1\r\nHost: x\r\n", 1<<10)

	assert.True(t, strings.HasPrefix(conn.out.String(), "HTTP/1.1 400 Bad Request\r\n"), conn.out.String())
}

func TestPipelineIncompleteBody(t *testing.T) {
	// declares 10 body bytes, delivers 5
	request := "POST /details HTTP/1.1\r\nContent-Length: 10\r\n\r\nhello"

	conn, _ := run(t, request, 1<<10)

	assert.True(t, strings.HasPrefix(conn.out.String(), "HTTP/1.1 400 Bad Request\r\n"), conn.out.String())
}

func TestPipelineEmptyStream(t *testing.T) {
	// arrange
	conn := &fakeConn{}
	c := testPipeline().NewConn(conn)

	// act: end-of-stream with no bytes at all
	c.OnEnd()

	// assert: "no request" closes without a response
	assert.True(t, conn.closed)
	assert.Zero(t, conn.out.Len())
	assert.Equal(t, StateClosed, c.State())
}

func TestPipelineTransportError(t *testing.T) {
	// arrange
	conn := &fakeConn{}
	c := testPipeline().NewConn(conn)
	c.OnData([]byte("GET / HT"))

	// act
	c.OnError(errors.New("read: connection reset by peer"))

	// assert: transport errors bypass the response pipeline entirely
	assert.True(t, conn.closed)
	assert.Zero(t, conn.out.Len())
	assert.Equal(t, StateClosed, c.State())
}

func TestPipelineEventsAfterCloseAreIgnored(t *testing.T) {
	// arrange
	conn, c := run(t, "GET / HTTP/1.1\r\nHost: x\r\n\r\n", 1<<10)
	responded := conn.out.Len()

	// act: the machine runs exactly once, late events change nothing
	c.OnData([]byte("GET / HTTP/1.1\r\n\r\n"))
	c.OnEnd()

	// assert
	assert.Equal(t, responded, conn.out.Len())
	assert.Equal(t, StateClosed, c.State())
}

func TestPipelineErrorResponseWriteFailure(t *testing.T) {
	// arrange
	conn := &brokenConn{}
	c := testPipeline().NewConn(conn)
	c.OnData([]byte("GET /unknown HTTP/1.1\r\n\r\n"))

	// act: the error response cannot be written either
	c.OnEnd()

	// assert: one attempt only, then the connection is abandoned
	assert.True(t, conn.closed)
	assert.Equal(t, StateClosed, c.State())
}

func TestHandleOverTCP(t *testing.T) {
	// arrange
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	pipeline := NewHttpPipeline(testRouter(), zerolog.Nop(), 5*time.Second)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		pipeline.Handle(conn)
	}()

	conn, err := net.Dial("tcp", l.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	// act: write the request, half-close to signal end-of-stream
	_, err = conn.Write([]byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)
	require.NoError(t, conn.(*net.TCPConn).CloseWrite())

	response, err := io.ReadAll(conn)
	require.NoError(t, err)

	// assert
	assert.True(t, strings.HasPrefix(string(response), "HTTP/1.1 200 OK\r\n"), string(response))
	assert.True(t, strings.HasSuffix(string(response), "Hello, world!"), string(response))
}
