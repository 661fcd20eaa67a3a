package internal

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/dmitrymomot/pando/pkg/simplate"
)

// Index files tried, in order, for directory requests.
var indexFiles = []string{"index.html.spt", "index.spt", "index.html"}

// target is the file a URL path dispatches to.
type target struct {
	// file is the path within the www root.
	file string
	// mediaType is forced by the URL extension for negotiated resources.
	mediaType string
	static    bool
}

// dispatch maps a URL path to a file in fsys.
//
// Directory paths ("/" or ending in "/") try the index files. Other paths
// try the static file, then "<path>.spt", then the negotiated "<stem>.spt"
// with the media type implied by the extension. Hidden files and direct
// requests for simplates are not found.
func dispatch(fsys fs.FS, urlPath string) (target, error) {
	clean := path.Clean("/" + urlPath)
	for _, seg := range strings.Split(clean, "/") {
		if strings.HasPrefix(seg, ".") {
			return target{}, notFound()
		}
	}

	name := strings.TrimPrefix(clean, "/")
	if name == "" {
		name = "."
	}

	if name == "." || strings.HasSuffix(urlPath, "/") {
		if !isDir(fsys, name) {
			return target{}, notFound()
		}
		for _, index := range indexFiles {
			file := path.Join(name, index)
			if isFile(fsys, file) {
				return target{file: file, static: !strings.HasSuffix(file, simplate.Extension)}, nil
			}
		}
		return target{}, notFound()
	}

	if path.Ext(name) == simplate.Extension {
		return target{}, notFound()
	}

	if isDir(fsys, name) {
		return target{}, Redirect(clean+"/", http.StatusMovedPermanently)
	}
	if isFile(fsys, name) {
		return target{file: name, static: true}, nil
	}
	if file := name + simplate.Extension; isFile(fsys, file) {
		return target{file: file}, nil
	}

	if ext := path.Ext(name); ext != "" {
		file := strings.TrimSuffix(name, ext) + simplate.Extension
		if mt := simplate.MediaTypeByExtension(ext); mt != "" && isFile(fsys, file) {
			return target{file: file, mediaType: mt}, nil
		}
	}

	return target{}, notFound()
}

func notFound() *Response {
	return NewResponse(http.StatusNotFound, http.StatusText(http.StatusNotFound)).
		WithHeader("Content-Type", "text/plain; charset=utf-8")
}

func isFile(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.Mode().IsRegular()
}

func isDir(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}

// staticResponse reads a static file into a response.
func staticResponse(fsys fs.FS, name string) (*Response, error) {
	body, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound()
	}
	if err != nil {
		return nil, err
	}

	ct := simplate.MediaTypeByExtension(path.Ext(name))
	if ct == "" {
		ct = http.DetectContentType(body)
	} else {
		ct = contentType(ct)
	}

	resp := &Response{Code: http.StatusOK, Header: make(http.Header), Body: body}
	resp.Header.Set("Content-Type", ct)
	return resp, nil
}
