package http

import (
	"fmt"
)

// HandlerFunction produces a plain text response body from the decoded
// request. Handlers read only the request's path and decoded body.
type HandlerFunction func(req HttpRequest, body DecodedBody) (string, error)

type RouteHandler struct {
	path   string
	handle HandlerFunction
}

func NewRouteHandler(path string, h HandlerFunction) RouteHandler {
	return RouteHandler{
		path:   path,
		handle: h,
	}
}

type Router struct {
	handlers []RouteHandler
}

func NewRouter(handlers ...RouteHandler) *Router {
	return &Router{
		handlers: handlers,
	}
}

// Dispatch matches on the exact path string only. The method is deliberately
// not consulted: an unmatched path is ErrPathNotFound regardless of method,
// a known limitation of this minimal router.
func (r *Router) Dispatch(req HttpRequest, body DecodedBody) (string, error) {
	for _, h := range r.handlers {
		if h.path == req.Path {
			return h.handle(req, body)
		}
	}

	return "", fmt.Errorf("%w: %s", ErrPathNotFound, req.Path)
}
