package internal

import (
	"errors"
	"log/slog"
	"net/http"
)

// Catch converts a *Response returned as an error by next into the regular
// response. Every other error is returned unchanged.
func Catch(next HandlerFunc) HandlerFunc {
	return func(req *Request) (*Response, error) {
		resp, err := next(req)
		if err == nil {
			return resp, nil
		}
		if short, ok := AsResponse(err); ok {
			return short, nil
		}
		return nil, err
	}
}

// Serve adapts h to net/http. It is the single place where short-circuit
// responses are caught; other errors go to eh, or DefaultErrorHandler when
// eh is nil.
func Serve(h HandlerFunc, eh ErrorHandler) http.Handler {
	return serveHandler(h, eh, DefaultMaxBodySize, nil)
}

func serveHandler(h HandlerFunc, eh ErrorHandler, maxBody int64, log *slog.Logger) http.Handler {
	if eh == nil {
		eh = DefaultErrorHandler(log, false)
	}
	h = Catch(h)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := NewRequest(r, maxBody)
		if err != nil {
			if errors.Is(err, ErrBodyTooLarge) {
				_ = NewResponse(http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge)).Send(w)
				return
			}
			_ = NewResponse(http.StatusBadRequest, http.StatusText(http.StatusBadRequest)).Send(w)
			return
		}

		resp, err := h(req)
		if err != nil {
			resp = eh(req, err)
		}
		if resp == nil {
			resp = NewResponse(http.StatusNoContent)
		}
		if err := resp.Send(w); err != nil && log != nil {
			log.DebugContext(req.Context(), "response write failed", slog.String("error", err.Error()))
		}
	})
}

// DefaultErrorHandler logs err and responds 500, or the code of an error
// with a StatusCode() int method. In dev mode the body carries the error
// text instead of the generic status text.
func DefaultErrorHandler(log *slog.Logger, dev bool) ErrorHandler {
	return func(req *Request, err error) *Response {
		if resp, ok := AsResponse(err); ok {
			return resp
		}
		if log != nil {
			log.ErrorContext(req.Context(), "request failed",
				slog.String("method", req.Method),
				slog.String("path", req.Path()),
				slog.String("error", err.Error()),
			)
		}

		code := http.StatusInternalServerError
		var coder interface{ StatusCode() int }
		if errors.As(err, &coder) && coder.StatusCode() >= 400 {
			code = coder.StatusCode()
		}

		body := http.StatusText(code)
		if dev {
			body = err.Error()
		}
		return NewResponse(code, body).
			WithHeader("Content-Type", "text/plain; charset=utf-8")
	}
}
