// Package negotiate picks a media type from an HTTP Accept header.
package negotiate

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLength caps how much of an Accept header is parsed.
const maxAcceptLength = 4096

// MediaRange is one entry of an Accept header.
type MediaRange struct {
	Type    string
	Subtype string
	Quality float64
	order   int
}

// String returns the range as "type/subtype".
func (m MediaRange) String() string {
	return m.Type + "/" + m.Subtype
}

// specificity ranks exact types above subtype wildcards above */*.
func (m MediaRange) specificity() int {
	switch {
	case m.Type == "*":
		return 0
	case m.Subtype == "*":
		return 1
	default:
		return 2
	}
}

// Matches reports whether mediaType falls within the range.
func (m MediaRange) Matches(mediaType string) bool {
	typ, sub, ok := splitType(mediaType)
	if !ok {
		return false
	}
	if m.Type == "*" {
		return true
	}
	if m.Type != typ {
		return false
	}
	return m.Subtype == "*" || m.Subtype == sub
}

// ParseAccept parses an Accept header into media ranges ordered by
// descending quality. Ranges with equal quality keep header order.
// Malformed entries are skipped.
//
// Example header: "text/html,application/json;q=0.9,*/*;q=0.1"
func ParseAccept(header string) []MediaRange {
	if len(header) > maxAcceptLength {
		header = header[:maxAcceptLength]
	}

	var ranges []MediaRange
	order := 0

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		typePart, params, _ := strings.Cut(part, ";")
		typ, sub, ok := splitType(typePart)
		if !ok {
			continue
		}

		quality := 1.0
		for param := range strings.SplitSeq(params, ";") {
			key, value, found := strings.Cut(strings.TrimSpace(param), "=")
			if !found || strings.TrimSpace(strings.ToLower(key)) != "q" {
				continue
			}
			if q, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && q >= 0 && q <= 1 {
				quality = q
			}
		}

		ranges = append(ranges, MediaRange{Type: typ, Subtype: sub, Quality: quality, order: order})
		order++
	}

	slices.SortStableFunc(ranges, func(a, b MediaRange) int {
		return cmp.Compare(b.Quality, a.Quality)
	})

	return ranges
}

// Best returns the available media type the Accept header prefers.
//
// Each available type takes the quality of the most specific range matching
// it. The highest quality wins; ties go to the more specific range, then to
// the earlier available type. Types with quality zero are never chosen.
// An empty header selects the first available type.
//
// Example header: "application/json;q=0.9,text/*"
// Available: ["application/json", "text/html"]
// Returns: "text/html"
func Best(header string, available []string) (string, bool) {
	if len(available) == 0 {
		return "", false
	}
	if strings.TrimSpace(header) == "" {
		return available[0], true
	}

	ranges := ParseAccept(header)

	best := ""
	bestQuality := 0.0
	bestSpecificity := -1

	for _, avail := range available {
		norm := normalize(avail)

		quality, specificity, matched := 0.0, -1, false
		for _, r := range ranges {
			if !r.Matches(norm) {
				continue
			}
			if s := r.specificity(); s > specificity {
				quality, specificity, matched = r.Quality, s, true
			}
		}
		if !matched || quality <= 0 {
			continue
		}

		if quality > bestQuality || (quality == bestQuality && specificity > bestSpecificity) {
			best, bestQuality, bestSpecificity = avail, quality, specificity
		}
	}

	return best, best != ""
}

// normalize lowercases a media type and strips its parameters.
func normalize(mediaType string) string {
	mediaType, _, _ = strings.Cut(mediaType, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}

// splitType splits "type/subtype" into its lowercase halves.
func splitType(s string) (string, string, bool) {
	typ, sub, ok := strings.Cut(normalize(s), "/")
	if !ok || typ == "" || sub == "" {
		return "", "", false
	}
	if typ == "*" && sub != "*" {
		return "", "", false
	}
	return typ, sub, true
}
