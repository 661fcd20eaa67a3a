package simplate

import (
	"bytes"
	"fmt"
	"mime"
	"path"
	"strings"
)

const (
	// Extension is the file extension of simplates.
	Extension = ".spt"

	// PageBreak separates pages when it appears alone on a line.
	PageBreak = "\f"

	// AltPageBreak is accepted as a page separator as well.
	AltPageBreak = "[---]"
)

// Page is one content page of a simplate.
type Page struct {
	Body     []byte
	Specline Specline
	// Line is the 1-based line number of the page body in the source file.
	Line int
}

// Simplate is a parsed simplate file.
type Simplate struct {
	Path       string
	Logic      []byte
	Pages      []Page
	MediaType  string // set for rendered resources
	Negotiated bool
	// LogicLine is the 1-based line where the logic page starts (0 if absent).
	LogicLine int
}

// MediaTypes returns the declared media type of each content page in order.
func (s *Simplate) MediaTypes() []string {
	out := make([]string, 0, len(s.Pages))
	for _, p := range s.Pages {
		out = append(out, p.Specline.MediaType)
	}
	return out
}

// Parse splits raw into logic and content pages.
// The file name decides whether the simplate is rendered ("name.ext.spt") or
// negotiated ("name.spt").
func Parse(filepath string, raw []byte) (*Simplate, error) {
	s := &Simplate{Path: filepath}

	stem := strings.TrimSuffix(path.Base(filepath), Extension)
	if ext := path.Ext(stem); ext != "" {
		s.MediaType = MediaTypeByExtension(ext)
	}
	s.Negotiated = s.MediaType == ""

	chunks := splitPages(raw)

	contents := chunks
	if len(chunks) > 1 {
		s.Logic = chunks[0].body
		s.LogicLine = chunks[0].line
		contents = chunks[1:]
	}

	seen := make(map[string]bool, len(contents))
	for _, c := range contents {
		page, err := parsePage(c)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filepath, c.line, err)
		}
		if mt := page.Specline.MediaType; mt != "" {
			if seen[mt] {
				return nil, fmt.Errorf("%s:%d: %w: %s", filepath, c.line, ErrDuplicateMediaType, mt)
			}
			seen[mt] = true
		}
		s.Pages = append(s.Pages, page)
	}

	if len(s.Pages) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath, ErrNoContent)
	}
	if !s.Negotiated {
		if len(s.Pages) > 1 {
			return nil, fmt.Errorf("%s: %w", filepath, ErrTooManyPages)
		}
		if s.Pages[0].Specline.MediaType == "" {
			s.Pages[0].Specline.MediaType = s.MediaType
		}
	}

	return s, nil
}

// MediaTypeByExtension returns the media type for ext ("." included) without
// parameters, or "" if unknown.
func MediaTypeByExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".txt", ".text":
		return "text/plain"
	case ".md", ".markdown":
		return "text/markdown"
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	}
	mt := mime.TypeByExtension(ext)
	if mt == "" {
		return ""
	}
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		return parsed
	}
	return mt
}

type chunk struct {
	body []byte
	line int
}

// splitPages cuts raw at page break lines.
func splitPages(raw []byte) []chunk {
	lines := bytes.SplitAfter(raw, []byte("\n"))

	var (
		chunks []chunk
		cur    bytes.Buffer
		start  = 1
	)
	for i, line := range lines {
		if isPageBreak(line) {
			chunks = append(chunks, chunk{body: bytes.Clone(cur.Bytes()), line: start})
			cur.Reset()
			start = i + 2
			continue
		}
		cur.Write(line)
	}
	chunks = append(chunks, chunk{body: bytes.Clone(cur.Bytes()), line: start})

	return chunks
}

func isPageBreak(line []byte) bool {
	trimmed := string(bytes.TrimRight(line, "\r\n"))
	return trimmed == PageBreak || trimmed == AltPageBreak
}

// parsePage extracts an optional specline from the first line of a content page.
func parsePage(c chunk) (Page, error) {
	page := Page{Body: c.body, Line: c.line}

	first, rest, _ := bytes.Cut(c.body, []byte("\n"))
	if !bytes.HasPrefix(bytes.TrimSpace(first), []byte(speclinePrefix)) {
		return page, nil
	}

	spec, err := ParseSpecline(string(first))
	if err != nil {
		return Page{}, err
	}
	page.Specline = spec
	page.Body = rest
	page.Line = c.line + 1

	return page, nil
}
