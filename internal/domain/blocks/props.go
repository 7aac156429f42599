package blocks

import "fmt"

// Props is the open field bag carried by a block. Its shape is decided by the
// block type.
type Props map[string]any

// Clone returns a deep copy. Nested maps and slices produced by JSON decoding
// are copied too, so callers can mutate the result freely.
func (p Props) Clone() Props {
	if p == nil {
		return Props{}
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge shallow-merges partial into a copy of p. Keys in partial win.
func (p Props) Merge(partial Props) Props {
	out := p.Clone()
	for k, v := range partial {
		out[k] = cloneValue(v)
	}
	return out
}

// String returns the field as a string, or "" when it is missing.
func (p Props) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Props:
		return t.Clone()
	case map[string]any:
		return map[string]any(Props(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = map[string]any(Props(e).Clone())
		}
		return out
	default:
		return v
	}
}
