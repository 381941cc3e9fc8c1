package http

type Status struct {
	Code int
	Text string
}

var (
	Status200OK                  = Status{200, "OK"}
	Status400BadRequest          = Status{400, "Bad Request"}
	Status404NotFound            = Status{404, "Not Found"}
	Status500InternalServerError = Status{500, "Internal Server Error"}
)

var (
	HeaderContentType      = "Content-Type"
	HeaderContentLength    = "Content-Length"
	HeaderTransferEncoding = "Transfer-Encoding"
	HeaderServer           = "Server"
	HeaderConnection       = "Connection"
)

var (
	TextPlainContentType      = "text/plain"
	FormUrlEncodedContentType = "application/x-www-form-urlencoded"
)

var (
	Http1Dot1Version         = "HTTP/1.1"
	ServerName               = "oneshot-http"
	ConnectionClose          = "close"
	IdentityTransferEncoding = "identity"
)
