package fit

import (
	"sort"

	"github.com/evefit/fitcalc/internal/metrics"
	"github.com/evefit/fitcalc/pkg/logger"
	"github.com/evefit/fitcalc/pkg/sde"
)

// depKey identifies one (holder, attribute) calculation.
type depKey struct {
	h *Holder
	a sde.AttrID
}

// warnKey dedups a malformed-data warning to once per carrier per message.
type warnKey struct {
	h   *Holder
	msg string
}

// Fit is the CalculationService facade: it owns a set of holders
// sharing one source, one ship, and one character, and ties together
// LinkTracker and the AffectorRegistry to keep every holder's AttributeMap
// coherent as the fit is mutated.
type Fit struct {
	source sde.Source

	ship            *Holder
	character       *Holder
	shipItems       []*Holder
	characterItems  []*Holder
	projectedTarget *Holder
	members         map[*Holder]struct{}
	seqCounter      uint64

	registry *affectorRegistry
	lt       *linkTracker

	inProgress map[depKey]bool
	dependents map[depKey]map[depKey]struct{}

	warned map[warnKey]bool

	logger *logger.Logger
}

// NewFit creates an empty fit backed by src. A nil src is treated as
// sde.NullSource{}.
func NewFit(src sde.Source) *Fit {
	return NewFitWithLogger(src, logger.New("fit"))
}

// NewFitWithLogger is NewFit with an explicit logger, for callers composing
// their own logging hierarchy.
func NewFitWithLogger(src sde.Source, log *logger.Logger) *Fit {
	if src == nil {
		src = sde.NullSource{}
	}
	f := &Fit{
		source:     src,
		members:    make(map[*Holder]struct{}),
		inProgress: make(map[depKey]bool),
		dependents: make(map[depKey]map[depKey]struct{}),
		warned:     make(map[warnKey]bool),
		logger:     log,
	}
	f.registry = newAffectorRegistry(f)
	f.lt = newLinkTracker(f)
	return f
}

// Ship returns the fit's ship holder, or nil if none is bound.
func (f *Fit) Ship() *Holder { return f.ship }

// Character returns the fit's character holder, or nil if none is bound.
func (f *Fit) Character() *Holder { return f.character }

// Source returns the fit's current static-data source.
func (f *Fit) Source() sde.Source { return f.source }

// Project designates target as the fit's projected-target holder, resolving
// domain=target modifiers with context=projected. Pass nil to clear it.
func (f *Fit) Project(target *Holder) {
	f.projectedTarget = target
}

// Add binds h to the fit. Returns ErrAlreadyBound if h
// already belongs to a fit.
func (f *Fit) Add(h *Holder) error {
	if h.fit != nil {
		return ErrAlreadyBound
	}
	h.fit = f
	f.seqCounter++
	h.seq = f.seqCounter
	f.resolveType(h)

	switch h.kind {
	case KindShip:
		f.ship = h
	case KindCharacter:
		f.character = h
	case KindModule, KindDrone, KindSubsystem, KindCharge:
		f.shipItems = append(f.shipItems, h)
	case KindSkill, KindImplant:
		f.characterItems = append(f.characterItems, h)
	}
	f.members[h] = struct{}{}

	f.lt.join(h)
	metrics.InvalidationsTotal.WithLabelValues("add").Inc()
	return nil
}

// Remove unbinds h from the fit, deactivating every affector it carries and
// leaving the remaining holders' observable attributes exactly as if h had
// never been added.
func (f *Fit) Remove(h *Holder) error {
	if h.fit != f {
		return ErrNotBound
	}
	f.lt.leave(h)
	f.registry.unregisterAll(h)

	switch h.kind {
	case KindShip:
		f.ship = nil
	case KindCharacter:
		f.character = nil
	case KindModule, KindDrone, KindSubsystem, KindCharge:
		f.shipItems = removeHolder(f.shipItems, h)
	case KindSkill, KindImplant:
		f.characterItems = removeHolder(f.characterItems, h)
	}
	delete(f.members, h)
	h.fit = nil
	h.attrs.clear()
	metrics.InvalidationsTotal.WithLabelValues("remove").Inc()
	return nil
}

func removeHolder(pool []*Holder, h *Holder) []*Holder {
	for i, p := range pool {
		if p == h {
			return append(pool[:i], pool[i+1:]...)
		}
	}
	return pool
}

// SetSource switches the fit's static-data bundle: every holder's
// Type is re-acquired, the entire attribute cache is dropped, and affectors
// are re-registered from the new types' effects.
func (f *Fit) SetSource(src sde.Source) {
	if src == nil {
		src = sde.NullSource{}
	}
	f.source = src
	metrics.AffectorsRegistered.Sub(float64(len(f.registry.affectors)))
	f.registry = newAffectorRegistry(f)
	f.dependents = make(map[depKey]map[depKey]struct{})

	for h := range f.members {
		f.resolveType(h)
		h.attrs.clear()
	}
	for _, h := range f.allHolders() {
		f.lt.join(h)
	}
	metrics.InvalidationsTotal.WithLabelValues("source_change").Inc()
}

func (f *Fit) resolveType(h *Holder) {
	t, ok := f.source.Type(h.typeID)
	if !ok {
		h.typ = nil
		return
	}
	h.typ = t
}

// setHolderState is the routing point for Holder.SetState once bound.
func (f *Fit) setHolderState(h *Holder, s sde.State) error {
	if h.fit != f {
		return ErrNotBound
	}
	from := h.state
	h.state = s
	f.lt.transition(h, from, s)
	metrics.InvalidationsTotal.WithLabelValues("state_change").Inc()
	return nil
}

// onSkillWrite invalidates the dependents of a bound skill's level write.
func (f *Fit) onSkillWrite(h *Holder) {
	f.invalidate(h, AttrSkillLevel)
	metrics.InvalidationsTotal.WithLabelValues("write").Inc()
}

// attributeMeta looks up attribute metadata from the current source.
func (f *Fit) attributeMeta(attr sde.AttrID) (sde.Attribute, bool) {
	return f.source.Attribute(attr)
}

// beginCalc marks (h, attr) as under active computation. It returns false,
// without marking anything, if the pair is already on the stack: a cycle.
func (f *Fit) beginCalc(h *Holder, attr sde.AttrID) bool {
	k := depKey{h, attr}
	if f.inProgress[k] {
		return false
	}
	f.inProgress[k] = true
	return true
}

// endCalc pops (h, attr) off the active-computation stack.
func (f *Fit) endCalc(h *Holder, attr sde.AttrID) {
	delete(f.inProgress, depKey{h, attr})
}

// recordDependency notes that (dstHolder, dstAttr)'s cached value depended
// on (srcHolder, srcAttr), so that invalidating the latter invalidates the
// former.
func (f *Fit) recordDependency(srcHolder *Holder, srcAttr sde.AttrID, dstHolder *Holder, dstAttr sde.AttrID) {
	sk := depKey{srcHolder, srcAttr}
	dk := depKey{dstHolder, dstAttr}
	set, ok := f.dependents[sk]
	if !ok {
		set = make(map[depKey]struct{})
		f.dependents[sk] = set
	}
	set[dk] = struct{}{}
}

// invalidate clears (h, attr)'s cached value and walks its recorded
// dependents transitively, clearing each in turn.
func (f *Fit) invalidate(h *Holder, attr sde.AttrID) {
	f.invalidateKey(depKey{h, attr}, make(map[depKey]bool))
}

func (f *Fit) invalidateKey(k depKey, seen map[depKey]bool) {
	if seen[k] {
		return
	}
	seen[k] = true
	k.h.attrs.clearAttribute(k.a)

	deps := f.dependents[k]
	delete(f.dependents, k)
	for d := range deps {
		f.invalidateKey(d, seen)
	}
}

// invalidateAffected clears the cached attributes of every holder eff's
// modifiers could reach, carried by carrier.
func (f *Fit) invalidateAffected(carrier *Holder, eff sde.Effect) {
	for _, mod := range eff.Modifiers {
		for _, target := range f.registry.affected(carrier, mod) {
			f.invalidate(target, mod.TgtAttr)
		}
	}
}

// affectorsFor returns the affectors currently live against h, in
// deterministic (registration) order.
func (f *Fit) affectorsFor(h *Holder) []Affector {
	return f.registry.affecting(h)
}

// allHolders returns every bound holder ordered by join sequence, so
// enumeration is deterministic regardless of map iteration order.
func (f *Fit) allHolders() []*Holder {
	out := make([]*Holder, 0, len(f.members))
	for h := range f.members {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// warnOnce logs msg at WARNING level the first time it is seen for carrier,
// and silently discards repeats.
func (f *Fit) warnOnce(carrier *Holder, msg string, keysAndValues ...interface{}) {
	k := warnKey{carrier, msg}
	if f.warned[k] {
		return
	}
	f.warned[k] = true
	f.logger.Warn(msg, keysAndValues...)
}
