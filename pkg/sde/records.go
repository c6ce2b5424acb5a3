// Package sde provides the static-data records (types, attributes, effects,
// modifiers) that the attribute calculation engine composes at runtime.
//
// Everything in this file is immutable once loaded: the records are produced
// by an external data pipeline (out of scope here) and shared freely across
// fits and goroutines.
package sde

// AttrID identifies a dogma attribute.
type AttrID int64

// Attribute is immutable metadata about a dogma attribute.
type Attribute struct {
	ID           AttrID
	Stackable    bool // if false, multiplicative modifiers to it may be penalized
	HighIsGood   bool // tiebreak for assignment operators
	DefaultValue float64
}

// EffectCategory determines the minimum holder state at which an effect's
// modifiers become live.
type EffectCategory int

const (
	EffectPassive  EffectCategory = 0
	EffectActive   EffectCategory = 1
	EffectTarget   EffectCategory = 2
	effectArea     EffectCategory = 3 // unused in SDE, treated as error
	EffectOnline   EffectCategory = 4
	EffectOverload EffectCategory = 5
	effectDungeon  EffectCategory = 6 // unused in SDE, treated as error
	EffectSystem   EffectCategory = 7
)

// MinState returns the holder state at which the category's modifiers
// activate, and whether the category is one the calculator recognizes.
func (c EffectCategory) MinState() (State, bool) {
	switch c {
	case EffectPassive, EffectSystem:
		return StateOffline, true
	case EffectOnline:
		return StateOnline, true
	case EffectActive, EffectTarget:
		return StateActive, true
	case EffectOverload:
		return StateOverload, true
	default:
		return StateOffline, false
	}
}

// Operator is how a modifier's magnitude combines with the accumulator.
type Operator int

const (
	PreAssignment Operator = iota
	PreMul
	PreDiv
	ModAdd
	ModSub
	PostMul
	PostDiv
	PostPercent
	PostAssignment
)

// OperatorOrder is the canonical order operator buckets fold in.
var OperatorOrder = [...]Operator{
	PreAssignment, PreMul, PreDiv, ModAdd, ModSub, PostMul, PostDiv, PostPercent, PostAssignment,
}

// IsAssignment reports whether op is one of the two assignment operators,
// which pick max/min among modifier values rather than accumulating.
func (op Operator) IsAssignment() bool {
	return op == PreAssignment || op == PostAssignment
}

// IsValid reports whether op is one of the nine recognized operator codes.
func (op Operator) IsValid() bool {
	return op >= PreAssignment && op <= PostAssignment
}

// IsMultiplicative reports whether op is one of the operators eligible for
// the stacking penalty.
func (op Operator) IsMultiplicative() bool {
	switch op {
	case PreMul, PreDiv, PostMul, PostDiv, PostPercent:
		return true
	default:
		return false
	}
}

// Domain is the holder, relative to a modifier's carrier, that roots the
// modifier's filter.
type Domain int

const (
	DomainSelf Domain = iota
	DomainCharacter
	DomainShip
	DomainTarget
	DomainOther
)

// FilterType selects which holders under a Domain a modifier targets.
type FilterType int

const (
	FilterNone FilterType = iota
	FilterAll
	FilterGroup
	FilterSkill
	FilterSkillSelf
)

// Context distinguishes local (same fit), projected (onto a target fit) and
// gang-wide modifiers. The engine only resolves local and projected; gang is
// accepted as a valid value but always resolves to no holders (no multi-fit
// sharing, per the Non-goals).
type Context int

const (
	ContextLocal Context = iota
	ContextProjected
	ContextGang
)

// State is a holder's activation level.
type State int

const (
	StateOffline State = iota
	StateOnline
	StateActive
	StateOverload
)

// String renders the state for log messages.
func (s State) String() string {
	switch s {
	case StateOffline:
		return "offline"
	case StateOnline:
		return "online"
	case StateActive:
		return "active"
	case StateOverload:
		return "overload"
	default:
		return "unknown"
	}
}

// Modifier is a declarative rule: combine src_attr's value into tgt_attr via
// operator, scoped to domain/filter_type/filter_value. State is loaded from
// the data but not consulted by the calculator: a modifier is live exactly
// when its effect is, at the threshold its EffectCategory sets.
type Modifier struct {
	State      State
	Context    Context
	SrcAttr    AttrID
	Operator   Operator
	TgtAttr    AttrID
	Domain     Domain
	FilterType FilterType
	FilterValue int64
}

// Effect groups modifiers under a single activation category.
type Effect struct {
	ID        int64
	Category  EffectCategory
	Modifiers []Modifier
}

// Type is the immutable descriptor of an item as shipped by the data
// pipeline: base attribute values, the effects it carries, and the skills
// required to use it (consulted by filter_type=skill/skill_self).
type Type struct {
	ID              int64
	GroupID         int64
	CategoryID      int64
	Attributes      map[AttrID]float64
	Effects         []Effect
	DefaultEffect   *Effect
	RequiredSkills  []int64
}

// Attr returns the type's base value for attr and whether it was present.
func (t *Type) Attr(attr AttrID) (float64, bool) {
	if t == nil || t.Attributes == nil {
		return 0, false
	}
	v, ok := t.Attributes[attr]
	return v, ok
}

// RequiresSkill reports whether typeID is among this type's skill
// prerequisites.
func (t *Type) RequiresSkill(typeID int64) bool {
	if t == nil {
		return false
	}
	for _, s := range t.RequiredSkills {
		if s == typeID {
			return true
		}
	}
	return false
}
