package ai

import (
	"encoding/json"
	"strings"
)

// ExtractObject parses model output expected to be a JSON object. If the raw
// text is not valid JSON on its own (models like to wrap output in prose or
// code fences), the largest {...} substring is tried before giving up.
func ExtractObject(raw string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		return obj, true
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil, false
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// ExtractArray parses model output expected to be a JSON array, using the
// largest [...] substring.
func ExtractArray(raw string) ([]any, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end <= start {
		return nil, false
	}

	var arr []any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &arr); err != nil {
		return nil, false
	}
	return arr, true
}
