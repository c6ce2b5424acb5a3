package fit

import "github.com/evefit/fitcalc/pkg/sde"

// Kind distinguishes the holder "capability sets" the source's mixin
// composition expressed as dynamic dispatch: which relations a holder
// can carry (charge, ship location, skill level) and whether its category
// is penalty-immune.
type Kind int

const (
	KindCharacter Kind = iota
	KindShip
	KindModule
	KindCharge
	KindDrone
	KindSkill
	KindImplant
	KindSubsystem
)

// String renders the kind for log messages.
func (k Kind) String() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindShip:
		return "ship"
	case KindModule:
		return "module"
	case KindCharge:
		return "charge"
	case KindDrone:
		return "drone"
	case KindSkill:
		return "skill"
	case KindImplant:
		return "implant"
	case KindSubsystem:
		return "subsystem"
	default:
		return "unknown"
	}
}

// penaltyImmune reports whether affectors carried by this kind are exempt
// from the stacking-penalty discipline regardless of operator.
func (k Kind) penaltyImmune() bool {
	switch k {
	case KindShip, KindCharge, KindSkill, KindImplant, KindSubsystem:
		return true
	default:
		return false
	}
}

// AttrSkillLevel is the one attribute SetAttribute permits writing to, and
// only on KindSkill holders.
const AttrSkillLevel sde.AttrID = -1

// Holder is a runtime instance of a typed item bound to at most one Fit. Its
// identity is the pointer itself. Holders are compared by identity, never
// by value.
type Holder struct {
	seq    uint64 // assignment order, for deterministic enumeration
	typeID int64
	typ    *sde.Type
	kind   Kind
	state  sde.State
	fit    *Fit

	charge *Holder // loaded charge, for KindModule carriers
	level  int     // skill level, for KindSkill holders

	attrs *attributeMap
}

// NewHolder creates an unbound holder of the given type and kind. Bind it to
// a fit with Fit.Add.
func NewHolder(typeID int64, kind Kind) *Holder {
	h := &Holder{typeID: typeID, kind: kind, state: sde.StateOffline}
	h.attrs = newAttributeMap(h)
	return h
}

// NewShip creates an unbound ship holder.
func NewShip(typeID int64) *Holder { return NewHolder(typeID, KindShip) }

// NewCharacter creates an unbound character holder.
func NewCharacter(typeID int64) *Holder { return NewHolder(typeID, KindCharacter) }

// NewModule creates an unbound module holder.
func NewModule(typeID int64) *Holder { return NewHolder(typeID, KindModule) }

// NewCharge creates an unbound charge holder.
func NewCharge(typeID int64) *Holder { return NewHolder(typeID, KindCharge) }

// NewDrone creates an unbound drone holder.
func NewDrone(typeID int64) *Holder { return NewHolder(typeID, KindDrone) }

// NewImplant creates an unbound implant holder.
func NewImplant(typeID int64) *Holder { return NewHolder(typeID, KindImplant) }

// NewSubsystem creates an unbound subsystem holder.
func NewSubsystem(typeID int64) *Holder { return NewHolder(typeID, KindSubsystem) }

// NewSkill creates an unbound skill holder at the given level. Its level is
// read back through Attribute(AttrSkillLevel) like any other attribute.
func NewSkill(typeID int64, level int) *Holder {
	h := NewHolder(typeID, KindSkill)
	h.level = level
	return h
}

// TypeID returns the holder's static type ID.
func (h *Holder) TypeID() int64 { return h.typeID }

// Kind returns the holder's capability kind.
func (h *Holder) Kind() Kind { return h.kind }

// Fit returns the fit this holder is bound to, or nil if unbound.
func (h *Holder) Fit() *Fit { return h.fit }

// State returns the holder's current activation level.
func (h *Holder) State() sde.State { return h.state }

// SetState changes the holder's activation level, routing through the fit
// (if bound) so LinkTracker can diff affector activations. On an
// unbound holder the state is simply recorded.
func (h *Holder) SetState(s sde.State) error {
	if h.fit == nil {
		h.state = s
		return nil
	}
	return h.fit.setHolderState(h, s)
}

// Type returns the holder's resolved static Type, or nil if its source has
// no record for it (NullSource) or it has never been bound to a fit. A
// holder removed from a fit keeps the Type it last resolved.
func (h *Holder) Type() *sde.Type { return h.typ }

// GroupID returns the resolved type's group, or 0 if unresolved.
func (h *Holder) GroupID() int64 {
	if h.typ == nil {
		return 0
	}
	return h.typ.GroupID
}

// Charge returns the charge currently loaded in this holder, if any.
func (h *Holder) Charge() *Holder { return h.charge }

// SetCharge loads (or clears, with nil) a charge into this holder. Only the
// relation is recorded: the charge is not a fit member, so its own effects
// are not registered and no modifier's domain/filter resolution reaches it.
func (h *Holder) SetCharge(c *Holder) { h.charge = c }

// SkillLevel returns the current skill level (0 for non-skill holders).
func (h *Holder) SkillLevel() int { return h.level }

// Attribute returns the holder's computed value for attr, triggering
// calculation if not already cached.
func (h *Holder) Attribute(attr sde.AttrID) (float64, error) {
	return h.attrs.get(attr)
}

// AttributeOr returns the holder's computed value for attr, or fallback if
// calculation fails with AttributeMissingError.
func (h *Holder) AttributeOr(attr sde.AttrID, fallback float64) float64 {
	v, err := h.attrs.get(attr)
	if err != nil {
		return fallback
	}
	return v
}

// SetAttribute writes attr, if it is on this holder's writable whitelist,
// and invalidates everything that depended on the old value. The only whitelisted write in this module is a skill's own
// level.
func (h *Holder) SetAttribute(attr sde.AttrID, v float64) error {
	if h.kind != KindSkill || attr != AttrSkillLevel {
		return ErrAttributeNotWritable
	}
	h.level = int(v)
	if h.fit != nil {
		h.fit.onSkillWrite(h)
	} else {
		h.attrs.clearAttribute(attr)
	}
	return nil
}

// contains reports whether attr is already cached or present on the base
// type.
func (h *Holder) contains(attr sde.AttrID) bool {
	if h.attrs.containsCached(attr) {
		return true
	}
	if attr == AttrSkillLevel {
		return h.kind == KindSkill
	}
	if h.typ == nil {
		return false
	}
	_, ok := h.typ.Attr(attr)
	return ok
}

// effects returns the holder's type's effects, or nil if unresolved.
func (h *Holder) effects() []sde.Effect {
	if h.typ == nil {
		return nil
	}
	return h.typ.Effects
}
