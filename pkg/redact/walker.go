package redact

// Direction selects forward (mask) or inverse (unmask) substitution for the
// structured walker.
type Direction int

const (
	DirectionMask Direction = iota
	DirectionUnmask
)

// Transform recursively applies Mask or Unmask to every string leaf of v,
// reproducing the same shape. The supported shapes are the closed set the
// API boundary produces from decoded JSON: string, []any, and
// map[string]any. Map keys are never rewritten, only values; sequence
// ordering and key sets are preserved. Any other leaf (numbers, booleans,
// nil) is returned unchanged.
func Transform(v any, m *Mapping, dir Direction) any {
	switch x := v.(type) {
	case string:
		if dir == DirectionUnmask {
			return Unmask(x, m)
		}
		return Mask(x, m)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Transform(item, m, dir)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = Transform(item, m, dir)
		}
		return out
	default:
		return v
	}
}

// MaskValue applies Mask across a nested value, preserving its shape.
func MaskValue(v any, m *Mapping) any {
	return Transform(v, m, DirectionMask)
}

// UnmaskValue applies Unmask across a nested value, preserving its shape.
func UnmaskValue(v any, m *Mapping) any {
	return Transform(v, m, DirectionUnmask)
}
