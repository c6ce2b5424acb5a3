package fit

import (
	"github.com/evefit/fitcalc/internal/metrics"
	"github.com/evefit/fitcalc/pkg/sde"
)

// attributeMap is a holder's lazy, per-attribute cache. It inlines the
// mutable "volatile-cache mixin" the source composes via inheritance
// directly into the holder it describes rather than layering it behind an
// interface.
type attributeMap struct {
	holder *Holder
	cache  map[sde.AttrID]float64
}

func newAttributeMap(h *Holder) *attributeMap {
	return &attributeMap{holder: h, cache: make(map[sde.AttrID]float64)}
}

// containsCached reports whether attr already has a cached value.
func (m *attributeMap) containsCached(attr sde.AttrID) bool {
	_, ok := m.cache[attr]
	return ok
}

// clearAttribute drops one cached entry. Transitive invalidation of
// dependents is the caller's (Fit's) responsibility.
func (m *attributeMap) clearAttribute(attr sde.AttrID) {
	delete(m.cache, attr)
}

// clear drops every cached entry, used on source switch.
func (m *attributeMap) clear() {
	m.cache = make(map[sde.AttrID]float64)
}

// get returns the cached value for attr, computing and caching it first if
// necessary.
func (m *attributeMap) get(attr sde.AttrID) (float64, error) {
	if v, ok := m.cache[attr]; ok {
		metrics.AttributeCacheHitsTotal.Inc()
		return v, nil
	}
	metrics.AttributeCacheMissesTotal.Inc()
	v, err := m.calculate(attr)
	if err != nil {
		return 0, err
	}
	m.cache[attr] = v
	return v, nil
}

// operatorBucket holds one operator's penalizable and non-penalizable
// normalized magnitudes.
type operatorBucket struct {
	penalized []float64
	normal    []float64
}

// calculate runs the full resolution algorithm for one (holder, attr) pair:
// base/default lookup, cycle detection, penalizability classification,
// magnitude normalization, operator bucketing, stacking-penalty merge, and
// a canonical-order fold.
func (m *attributeMap) calculate(attr sde.AttrID) (float64, error) {
	h := m.holder

	base, hasBase := m.baseValue(attr)

	var meta sde.Attribute
	var hasMeta bool
	if h.fit != nil {
		meta, hasMeta = h.fit.attributeMeta(attr)
	}

	acc, accSet := base, hasBase
	if !accSet && hasMeta {
		acc, accSet = meta.DefaultValue, true
	}

	if h.fit == nil {
		// Unbound holder: no registry, no affectors, nothing to fold.
		if accSet {
			return acc, nil
		}
		return 0, &AttributeMissingError{TypeID: h.typeID, Attr: attr}
	}

	if !h.fit.beginCalc(h, attr) {
		h.fit.logger.Warn("attribute calculation cycle detected, using unmodified base",
			"type_id", h.typeID, "attr", int64(attr))
		if accSet {
			return acc, nil
		}
		return 0, &AttributeMissingError{TypeID: h.typeID, Attr: attr}
	}
	defer h.fit.endCalc(h, attr)

	buckets := make(map[sde.Operator]*operatorBucket)
	bucket := func(op sde.Operator) *operatorBucket {
		b, ok := buckets[op]
		if !ok {
			b = &operatorBucket{}
			buckets[op] = b
		}
		return b
	}

	for _, aff := range h.fit.affectorsFor(h) {
		mod := aff.Modifier
		if mod.TgtAttr != attr {
			continue
		}

		magnitude, err := aff.Carrier.Attribute(mod.SrcAttr)
		if h.fit != nil {
			h.fit.recordDependency(aff.Carrier, mod.SrcAttr, h, attr)
		}
		if err != nil {
			h.fit.warnOnce(aff.Carrier, "modifier source attribute unavailable",
				"carrier_type", aff.Carrier.typeID, "src_attr", int64(mod.SrcAttr))
			continue
		}

		if !mod.Operator.IsValid() {
			h.fit.warnOnce(aff.Carrier, "modifier has unknown operator",
				"operator", int(mod.Operator))
			continue
		}

		penalizable := hasMeta && !meta.Stackable &&
			!aff.Carrier.Kind().penaltyImmune() &&
			mod.Operator.IsMultiplicative()

		normalized := normalizeMagnitude(mod.Operator, magnitude)

		b := bucket(mod.Operator)
		if penalizable {
			b.penalized = append(b.penalized, normalized)
		} else {
			b.normal = append(b.normal, normalized)
		}
	}

	for _, b := range buckets {
		if len(b.penalized) > 0 {
			b.normal = append(b.normal, Penalize(b.penalized))
		}
	}

	for _, op := range sde.OperatorOrder {
		b, ok := buckets[op]
		if !ok || len(b.normal) == 0 {
			continue
		}
		switch {
		case op.IsAssignment():
			acc, accSet = foldAssignment(b.normal, hasMeta && meta.HighIsGood)
		case op.IsMultiplicative():
			for _, v := range b.normal {
				acc *= v
			}
		default: // mod_add, mod_sub
			for _, v := range b.normal {
				acc += v
			}
		}
	}

	if !accSet {
		return 0, &AttributeMissingError{TypeID: h.typeID, Attr: attr}
	}
	return acc, nil
}

// baseValue resolves the holder's unmodified starting value for attr,
// before any modifier is folded in.
func (m *attributeMap) baseValue(attr sde.AttrID) (float64, bool) {
	h := m.holder
	if attr == AttrSkillLevel && h.kind == KindSkill {
		return float64(h.level), true
	}
	if h.typ == nil {
		return 0, false
	}
	return h.typ.Attr(attr)
}

// normalizeMagnitude puts a modifier's source magnitude into the shape its
// operator's bucket accumulates in: subtraction negates, division reciprocates,
// and percentage becomes a multiplicative factor.
func normalizeMagnitude(op sde.Operator, v float64) float64 {
	switch op {
	case sde.ModSub:
		return -v
	case sde.PreDiv, sde.PostDiv:
		if v == 0 {
			return 0
		}
		return 1 / v
	case sde.PostPercent:
		return v/100 + 1
	default:
		return v
	}
}

// foldAssignment picks max (high_is_good) or min among modifier values,
// ignoring any prior accumulator value: an assignment operator replaces,
// it does not combine.
func foldAssignment(values []float64, highIsGood bool) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	best := values[0]
	for _, v := range values[1:] {
		if highIsGood && v > best {
			best = v
		} else if !highIsGood && v < best {
			best = v
		}
	}
	return best, true
}
