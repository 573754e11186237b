package extractor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

var (
	// ErrNoPayload means the response had no opening delimiter at all.
	ErrNoPayload = errors.New("no structured payload in response")
	// ErrMalformedPayload means a delimited span was found but did not parse.
	ErrMalformedPayload = errors.New("malformed structured payload")
)

const (
	arrayShape  = '['
	objectShape = '{'
)

// maxCandidates bounds how many opening delimiters are tried per response.
const maxCandidates = 32

func closerFor(open byte) byte {
	if open == arrayShape {
		return ']'
	}
	return '}'
}

// decodePayload finds and parses the first well-formed JSON value of the
// requested shape embedded in raw, ignoring any prose around it.
//
// Each opening delimiter is tried in order and matched to its balanced
// closing delimiter with string literals skipped. A parsed value that fails
// accept is skipped; an empty array is only returned when no later candidate
// is accepted. When no balanced span qualifies, the outermost
// first-open/last-close span is tried last.
func decodePayload(raw string, open byte, accept func(any) bool) (any, error) {
	if strings.IndexByte(raw, open) < 0 {
		return nil, ErrNoPayload
	}
	closer := closerFor(open)

	var (
		lastErr error
		empty   any
	)
	try := func(span string) (any, bool) {
		v, err := unmarshalShape(span, open)
		switch {
		case err != nil:
			lastErr = err
		case isEmptyArray(v):
			if empty == nil {
				empty = v
			}
		case accept(v):
			return v, true
		default:
			lastErr = errors.New("payload has none of the expected fields")
		}
		return nil, false
	}

	tried := 0
	for i := 0; i < len(raw) && tried < maxCandidates; i++ {
		if raw[i] != open {
			continue
		}
		end := balancedEnd(raw, i, open, closer)
		if end < 0 {
			continue
		}
		tried++
		if v, ok := try(raw[i : end+1]); ok {
			return v, nil
		}
	}

	if span, ok := outermostSpan(raw, open); ok {
		if v, ok := try(span); ok {
			return v, nil
		}
	}

	if empty != nil {
		return empty, nil
	}
	if lastErr == nil {
		lastErr = errors.New("unbalanced delimiters")
	}
	return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, lastErr)
}

func isEmptyArray(v any) bool {
	arr, ok := v.([]any)
	return ok && len(arr) == 0
}

// balancedEnd returns the index of the delimiter closing the one at start,
// or -1 if the text ends first.
func balancedEnd(s string, start int, open, closer byte) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// outermostSpan slices from the first opening delimiter to the last closing
// one. It misreads responses with trailing prose that contains a closing
// delimiter, so it is only the last resort.
func outermostSpan(raw string, open byte) (string, bool) {
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, closerFor(open))
	if start < 0 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

func unmarshalShape(span string, open byte) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(span), &v); err != nil {
		return nil, err
	}
	switch v.(type) {
	case []any:
		if open == arrayShape {
			return v, nil
		}
	case map[string]any:
		if open == objectShape {
			return v, nil
		}
	}
	return nil, fmt.Errorf("unexpected payload type %T", v)
}

// decodeObject returns the first object carrying at least one of keys.
func decodeObject(raw string, keys ...string) (map[string]any, error) {
	v, err := decodePayload(raw, objectShape, func(v any) bool {
		m := v.(map[string]any)
		for _, k := range keys {
			if _, ok := m[k]; ok {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

// decodeArray returns the first array holding at least one object, or an
// empty array when that is all the response offers.
func decodeArray(raw string) ([]any, error) {
	v, err := decodePayload(raw, arrayShape, func(v any) bool {
		for _, el := range v.([]any) {
			if _, ok := el.(map[string]any); ok {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return v.([]any), nil
}
