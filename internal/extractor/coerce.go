package extractor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	defaultConfidence = 0.5
	dateLayout        = "2006-01-02"
)

// text returns the field as a string, formatting non-string scalars.
// Missing and null fields return def.
func text(m map[string]any, key, def string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// optionalText is nil for missing, null or blank fields.
func optionalText(m map[string]any, key string) *string {
	s := strings.TrimSpace(text(m, key, ""))
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}

// number coerces numeric-looking values. Anything else, including NaN and
// infinities, returns def.
func number(m map[string]any, key string, def float64) float64 {
	var f float64
	switch v := m[key].(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return def
		}
		f = parsed
	default:
		return def
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// integer truncates numeric values toward zero.
func integer(m map[string]any, key string, def int) int {
	f := number(m, key, math.NaN())
	if math.IsNaN(f) {
		return def
	}
	return int(f)
}

func textList(m map[string]any, key string) []string {
	items, ok := m[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if s, ok := it.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(it))
	}
	return out
}

// isoDate normalises a due date to YYYY-MM-DD. Unparseable values are
// dropped.
func isoDate(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	if _, err := time.Parse(dateLayout, v); err == nil {
		return &v
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		d := t.Format(dateLayout)
		return &d
	}
	if len(v) > len(dateLayout) {
		if _, err := time.Parse(dateLayout, v[:len(dateLayout)]); err == nil {
			d := v[:len(dateLayout)]
			return &d
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
