package internal

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/pando/pkg/logic"
	"github.com/dmitrymomot/pando/pkg/negotiate"
	"github.com/dmitrymomot/pando/pkg/renderer"
	"github.com/dmitrymomot/pando/pkg/simplate"
)

// compiledPage is a content page bound to its renderer.
type compiledPage struct {
	render    renderer.RenderFunc
	mediaType string
	renderer  string
}

// resource is a compiled simplate. It holds no request state and is shared
// by concurrent requests.
type resource struct {
	logic      *logic.Program
	path       string
	mediaTypes []string
	pages      []compiledPage
	negotiated bool
}

// compileResource parses raw and compiles its logic and content pages.
// Pages of a negotiated resource without a media type get defaultMediaType.
func compileResource(path string, raw []byte, reg *renderer.Registry, defaultMediaType string) (*resource, error) {
	s, err := simplate.Parse(path, raw)
	if err != nil {
		return nil, err
	}

	prog, err := logic.Compile(s.Logic, s.LogicLine)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	res := &resource{
		path:       path,
		logic:      prog,
		negotiated: s.Negotiated,
		pages:      make([]compiledPage, 0, len(s.Pages)),
	}

	for _, page := range s.Pages {
		mediaType := page.Specline.MediaType
		if mediaType == "" {
			mediaType = defaultMediaType
		}
		if slices.Contains(res.mediaTypes, mediaType) {
			return nil, fmt.Errorf("%s:%d: %w: %s", path, page.Line, simplate.ErrDuplicateMediaType, mediaType)
		}

		name, err := reg.Resolve(page.Specline.Renderer, mediaType)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, page.Line, err)
		}
		fn, err := reg.Compile(name, path, page.Body)
		if err != nil {
			return nil, err
		}

		res.pages = append(res.pages, compiledPage{
			render:    fn,
			mediaType: mediaType,
			renderer:  name,
		})
		res.mediaTypes = append(res.mediaTypes, mediaType)
	}

	return res, nil
}

// respond runs the Go logic and the logic page against c, then renders the
// page chosen by forced (a media type implied by the URL) or by the Accept
// header.
func (r *resource) respond(c *Context, forced string, goLogic LogicFunc) (*Response, error) {
	if goLogic != nil {
		if err := goLogic(c); err != nil {
			return nil, err
		}
		if c.Halted() {
			return nil, c.Halt()
		}
	}

	if err := r.logic.Run(c); err != nil {
		return nil, err
	}
	if c.Halted() {
		return nil, c.Halt()
	}

	page, err := r.selectPage(c.Headers.Get("Accept"), forced)
	if err != nil {
		return nil, err
	}

	body, err := renderer.Render(page.render, c.Vars())
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Code:   c.ResponseCode(),
		Header: c.ResponseHeader().Clone(),
		Body:   body,
	}
	if resp.Header.Get("Content-Type") == "" {
		resp.Header.Set("Content-Type", contentType(page.mediaType))
	}
	if r.negotiated {
		resp.Header.Add("Vary", "Accept")
	}
	return resp, nil
}

func (r *resource) selectPage(accept, forced string) (compiledPage, error) {
	if !r.negotiated {
		return r.pages[0], nil
	}

	if forced != "" {
		i := slices.Index(r.mediaTypes, forced)
		if i < 0 {
			return compiledPage{}, NewResponse(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		}
		return r.pages[i], nil
	}

	best, ok := negotiate.Best(accept, r.mediaTypes)
	if !ok {
		return compiledPage{}, NewResponse(http.StatusNotAcceptable,
			"The following media types are available: "+strings.Join(r.mediaTypes, ", ")+".").
			WithHeader("Content-Type", "text/plain; charset=utf-8")
	}
	return r.pages[slices.Index(r.mediaTypes, best)], nil
}

// contentType adds a UTF-8 charset to textual media types.
func contentType(mediaType string) string {
	if strings.HasPrefix(mediaType, "text/") || mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") {
		return mediaType + "; charset=utf-8"
	}
	return mediaType
}
