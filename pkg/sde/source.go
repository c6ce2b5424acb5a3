package sde

// Source is the static-data boundary: it resolves Type records (and the
// Attribute metadata that governs how modifiers targeting them behave) from
// whatever bundle backs a fit. Implementations must be safe for concurrent
// use: a fit may switch sources while other fits keep reading the old one.
type Source interface {
	// Name identifies the bundle for logging (e.g. a file path or version tag).
	Name() string

	// Type resolves a type by ID. ok is false if the type is unknown to this
	// source; callers fall back to defaults, they never treat this as a
	// hard error.
	Type(typeID int64) (*Type, bool)

	// Attribute resolves attribute metadata by ID. ok is false if unknown,
	// in which case the calculator applies no default value, never
	// stacking-penalizes modifiers to the attribute, and treats it as
	// low_is_good for assignment operators.
	Attribute(attr AttrID) (Attribute, bool)
}

// NullSource is the sentinel bound to a fit with no static-data bundle, or
// substituted for a holder whose type is unknown in a newly-bound source.
// All lookups miss; callers fall back to attribute defaults.
type NullSource struct{}

// Name implements Source.
func (NullSource) Name() string { return "<null-source>" }

// Type implements Source; always a miss.
func (NullSource) Type(int64) (*Type, bool) { return nil, false }

// Attribute implements Source; always a miss.
func (NullSource) Attribute(AttrID) (Attribute, bool) { return Attribute{}, false }

var _ Source = NullSource{}

// TypeOrNull resolves typeID against src, falling back to NullSource's
// behavior (a nil Type) when src itself is nil.
func TypeOrNull(src Source, typeID int64) *Type {
	if src == nil {
		return nil
	}
	t, _ := src.Type(typeID)
	return t
}
