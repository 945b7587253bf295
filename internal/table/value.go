package table

// Value is either a static value or one computed from the row at render time.
// It replaces scattered "is this a function?" checks with a single Resolve.
type Value[T, V any] struct {
	static  V
	compute func(T) V
}

// Static wraps a fixed value.
func Static[T, V any](v V) Value[T, V] {
	return Value[T, V]{static: v}
}

// Computed wraps a per-row function.
func Computed[T, V any](fn func(T) V) Value[T, V] {
	return Value[T, V]{compute: fn}
}

// Resolve returns the value for the given row.
func (v Value[T, V]) Resolve(row T) V {
	if v.compute != nil {
		return v.compute(row)
	}
	return v.static
}
