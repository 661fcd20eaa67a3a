package renderer

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// lookup resolves a dotted path such as "request.cookie.Foo" in data.
// Path segments index maps with string keys, slices by position and structs
// by exported field name.
func lookup(data map[string]any, path string) (any, error) {
	head, rest, _ := strings.Cut(path, ".")
	cur, ok := data[head]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, head)
	}

	walked := head
	for rest != "" {
		var seg string
		seg, rest, _ = strings.Cut(rest, ".")
		walked += "." + seg

		next, ok := index(cur, seg)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, walked)
		}
		cur = next
	}

	return cur, nil
}

func index(v any, seg string) (any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	case reflect.Struct:
		f := rv.FieldByName(seg)
		if !f.IsValid() || !f.CanInterface() {
			return nil, false
		}
		return f.Interface(), true
	}

	return nil, false
}

// stringify formats a value for text output.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}
