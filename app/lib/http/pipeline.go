package http

import (
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"
)

type HttpPipeline struct {
	router      *Router
	logger      zerolog.Logger
	readTimeout time.Duration
}

// NewHttpPipeline builds the shared, immutable part of connection handling.
// readTimeout is the per-read deadline applied to accepted conns; zero
// disables it.
func NewHttpPipeline(router *Router, logger zerolog.Logger, readTimeout time.Duration) HttpPipeline {
	return HttpPipeline{
		router:      router,
		logger:      logger,
		readTimeout: readTimeout,
	}
}

// Conn is the state machine for exactly one connection's one logical
// request. It consumes the transport's event stream via OnData, OnEnd and
// OnError, and writes at most one response before closing.
type Conn struct {
	router *Router
	conn   io.WriteCloser
	acc    *Accumulator
	state  ConnState
	logger zerolog.Logger
}

func (p HttpPipeline) NewConn(conn io.WriteCloser) *Conn {
	return &Conn{
		router: p.router,
		conn:   conn,
		acc:    NewAccumulator(),
		state:  StateAwaitingData,
		logger: p.logger,
	}
}

func (c *Conn) State() ConnState {
	return c.state
}

// OnData buffers one delivered chunk. Chunks are appended strictly in
// arrival order; nothing is parsed until the end-of-stream signal.
func (c *Conn) OnData(chunk []byte) {
	if c.state != StateAwaitingData && c.state != StateBuffering {
		c.logger.Warn().Stringer("state", c.state).Msg("dropping data delivered outside the buffering phase")
		return
	}

	c.state = StateBuffering
	c.acc.Append(chunk)
}

// OnEnd runs the framing, parsing, decoding and routing stages over
// everything buffered, answers, and closes. An empty stream is "no request":
// the connection closes without a parse attempt or a response.
func (c *Conn) OnEnd() {
	if c.state != StateAwaitingData && c.state != StateBuffering {
		c.logger.Warn().Stringer("state", c.state).Msg("ignoring end-of-stream outside the buffering phase")
		return
	}

	c.state = StateEndSignaled

	raw := c.acc.Finalize()
	if len(raw) == 0 {
		c.logger.Debug().Msg("stream ended with no bytes, closing without a request")
		c.teardown()
		return
	}

	c.process(raw)
}

// OnError aborts the connection on a transport failure. No response is
// attempted; the bytes seen so far are discarded.
func (c *Conn) OnError(err error) {
	c.logger.Error().Err(err).Stringer("state", c.state).Msg("transport error, aborting connection")
	c.teardown()
}

func (c *Conn) process(raw RawMessage) {
	frame, err := FrameMessage(raw)
	if err != nil {
		c.fail(err)
		return
	}
	c.state = StateFramed

	req, err := ParseHead(frame.Head)
	if err != nil {
		c.fail(err)
		return
	}
	c.state = StateParsed
	req.Logger = c.logger.With().Str("path", req.Path).Str("method", req.HttpMethod).Logger()

	body, err := ResolveBody(req.Headers, frame.Body, req.Logger)
	if err != nil {
		c.fail(err)
		return
	}
	req.RawBody = body

	var decoded DecodedBody
	if len(body) > 0 {
		decoded, err = DecodeBody(req.Headers, body)
		if err != nil {
			c.fail(err)
			return
		}
	}
	c.state = StateDecoded

	text, err := c.router.Dispatch(req, decoded)
	if err != nil {
		c.fail(err)
		return
	}
	c.state = StateRouted

	req.Logger.Info().Msg("request handled")
	c.respond(Status200OK, text)
}

func (c *Conn) respond(status Status, body string) {
	if _, err := c.conn.Write(BuildResponse(status, TextPlainContentType, []byte(body))); err != nil {
		c.logger.Error().Err(err).Msg("failed to write response, abandoning connection")
		c.teardown()
		return
	}

	c.state = StateResponded
	c.teardown()
}

// fail maps a stage error onto an HTTP error response. One write attempt
// only: if the error response itself cannot be written the connection is
// abandoned, never retried.
func (c *Conn) fail(err error) {
	c.state = StateError
	status := StatusFor(err)
	c.logger.Warn().Err(err).Int("status", status.Code).Msg("request failed")

	if _, werr := c.conn.Write(BuildResponse(status, TextPlainContentType, []byte(err.Error()))); werr != nil {
		c.logger.Error().Err(werr).Msg("failed to write error response, abandoning connection")
	}

	c.teardown()
}

func (c *Conn) teardown() {
	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("error closing connection")
	}

	c.state = StateClosed
}

// Handle adapts a net.Conn's read loop into the event stream the state
// machine consumes: each successful Read is OnData, EOF is OnEnd, anything
// else is OnError.
func (p HttpPipeline) Handle(conn net.Conn) {
	c := p.NewConn(conn)

	buf := make([]byte, 4096)
	for {
		if p.readTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(p.readTimeout)); err != nil {
				c.OnError(err)
				return
			}
		}

		n, err := conn.Read(buf)
		if n > 0 {
			c.OnData(buf[:n])
		}

		if err == io.EOF {
			c.OnEnd()
			return
		}
		if err != nil {
			c.OnError(err)
			return
		}
	}
}
