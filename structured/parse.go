package structured

import (
	"strings"

	"github.com/bytedance/sonic"
)

// Keys present in the fallback mapping returned by Decode when no recovery
// heuristic produced valid JSON.
const (
	FallbackErrorKey = "error"
	FallbackRawKey   = "raw_response"
)

const fallbackErrorMessage = "failed to parse model response"

// Decode turns raw model output into a mapping without ever failing. It tries
// a direct JSON parse, then the substring between the first '{' and the last
// '}', and finally returns a fallback mapping carrying the raw text under
// FallbackRawKey so callers can degrade instead of crash.
func Decode(raw string) map[string]any {
	var m map[string]any
	if err := sonic.UnmarshalString(raw, &m); err == nil && m != nil {
		return m
	}
	if inner, ok := braceSubstring(raw); ok {
		m = nil
		if err := sonic.UnmarshalString(inner, &m); err == nil && m != nil {
			return m
		}
	}
	return map[string]any{
		FallbackErrorKey: fallbackErrorMessage,
		FallbackRawKey:   raw,
	}
}

// IsFallback reports whether a mapping is the marked Decode fallback.
func IsFallback(m map[string]any) bool {
	_, hasErr := m[FallbackErrorKey]
	_, hasRaw := m[FallbackRawKey]
	return hasErr && hasRaw
}

// DecodeInto applies the same recovery heuristics as Decode but into a typed
// value. The second return is false when nothing parseable was found.
func DecodeInto[T any](raw string) (*T, bool) {
	var out T
	if err := sonic.UnmarshalString(raw, &out); err == nil {
		return &out, true
	}
	if inner, ok := braceSubstring(raw); ok {
		var recovered T
		if err := sonic.UnmarshalString(inner, &recovered); err == nil {
			return &recovered, true
		}
	}
	return nil, false
}

func braceSubstring(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}
