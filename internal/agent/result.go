package agent

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Kind tags the three shapes an agent call can produce.
type Kind int

const (
	// KindStructured means the model returned a well-formed JSON object.
	KindStructured Kind = iota
	// KindFallback means parsing failed and the raw text is wrapped under the
	// agent's well-known fallback key.
	KindFallback
	// KindError means the remote call itself failed.
	KindError
)

// Result is the transient outcome of one agent call. It never escapes as an
// error: downstream consumers pattern-match on Kind and treat absent fields
// as unknown.
type Result struct {
	Kind   Kind
	Fields map[string]any
	// Raw is the verbatim model text, kept for consumers whose extraction
	// rule falls back to it.
	Raw string
	// Err and Input are set for error results: the failure description plus
	// the original input echoed back.
	Err   string
	Input string
}

// Structured wraps a parsed payload.
func Structured(fields map[string]any) Result {
	if fields == nil {
		fields = map[string]any{}
	}
	return Result{Kind: KindStructured, Fields: fields}
}

// Fallback wraps raw model text under the agent's fallback key so downstream
// consumers can still probe for it.
func Fallback(key, raw string) Result {
	return Result{
		Kind:   KindFallback,
		Fields: map[string]any{key: raw},
		Raw:    raw,
	}
}

// Failure wraps a remote-call failure with the original input echoed back.
func Failure(err error, input string) Result {
	return Result{
		Kind:   KindError,
		Fields: map[string]any{},
		Err:    err.Error(),
		Input:  input,
	}
}

// Failed reports whether the remote call itself failed.
func (r Result) Failed() bool {
	return r.Kind == KindError
}

// Set stores a field on the result payload, used for post-call stamping.
func (r *Result) Set(key string, value any) {
	if r.Fields == nil {
		r.Fields = map[string]any{}
	}
	r.Fields[key] = value
}

// Has reports whether a field is present.
func (r Result) Has(key string) bool {
	_, ok := r.Fields[key]
	return ok
}

// String returns the named field coerced to text, or the default when the
// field is absent. Non-string values are formatted rather than rejected.
func (r Result) String(key, def string) string {
	v, ok := r.Fields[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Float returns the named numeric field, or the default when absent or not a
// number.
func (r Result) Float(key string, def float64) float64 {
	switch v := r.Fields[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// StringSlice returns the named list field with every element coerced to
// text. Absent or non-list values yield nil.
func (r Result) StringSlice(key string) []string {
	items, ok := r.Fields[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprintf("%v", item))
		}
	}
	return out
}

// Nested returns the named sub-object as a Result so the same probing
// helpers apply one level down. Absent or non-object values yield an empty
// structured result.
func (r Result) Nested(key string) Result {
	if m, ok := r.Fields[key].(map[string]any); ok {
		return Structured(m)
	}
	return Structured(nil)
}

// tryParse attempts to decode model output as a JSON object. Parse failure
// is the expected common case, not an error.
func tryParse(text string) (map[string]any, bool) {
	var fields map[string]any
	if err := sonic.Unmarshal([]byte(text), &fields); err != nil {
		return nil, false
	}
	return fields, true
}
