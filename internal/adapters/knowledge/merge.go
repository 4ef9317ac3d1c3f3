package knowledge

// DeepMerge merges overlay into base and returns the result. Nested objects
// merge key by key; any other overlay value replaces the base value. Neither
// argument is modified.
func DeepMerge(base, overlay any) any {
	b, bok := base.(map[string]any)
	o, ook := overlay.(map[string]any)
	if !bok || !ook {
		return clone(overlay)
	}

	out := make(map[string]any, len(b)+len(o))
	for k, v := range b {
		out[k] = clone(v)
	}
	for k, v := range o {
		if existing, ok := out[k]; ok {
			out[k] = DeepMerge(existing, v)
			continue
		}
		out[k] = clone(v)
	}
	return out
}

func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = clone(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = clone(item)
		}
		return out
	default:
		return v
	}
}
