package genai

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON indicates no parsable JSON object could be recovered from
// the assistant text. Callers treat it exactly like ErrUnavailable and
// fall back to heuristic scoring.
var ErrNoJSON = errors.New("no JSON object found in text")

// ExtractJSONObject recovers a single structured JSON object from
// free-form assistant output. It tolerates surrounding prose, code
// fences with or without a language tag, single-quoted keys or strings,
// and trailing commentary after the object.
func ExtractJSONObject(text string) (map[string]any, error) {
	frag, ok := firstObject(text)
	if !ok {
		return nil, ErrNoJSON
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(frag), &out); err == nil {
		return out, nil
	}

	// common LLM failure mode: single quotes in place of double quotes
	fixed := strings.ReplaceAll(frag, "'", `"`)
	if err := json.Unmarshal([]byte(fixed), &out); err == nil {
		return out, nil
	}

	return nil, ErrNoJSON
}

// firstObject returns the first balanced {...} span in s. It tracks
// string-literal boundaries (double or single quoted, with escapes) so
// braces inside strings do not affect the depth count. String tracking
// starts only once an object is open, so apostrophes in the surrounding
// prose cannot swallow the object.
func firstObject(s string) (string, bool) {
	start := -1
	depth := 0
	var quote byte
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			if start >= 0 {
				quote = c
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
