// Package testutil provides test utilities and fixtures for the attribute
// calculation engine.
package testutil

import (
	"github.com/evefit/fitcalc/pkg/sde"
)

// FixtureAttribute creates attribute metadata for testing.
func FixtureAttribute(id sde.AttrID, stackable, highIsGood bool, defaultValue float64) sde.Attribute {
	return sde.Attribute{
		ID:           id,
		Stackable:    stackable,
		HighIsGood:   highIsGood,
		DefaultValue: defaultValue,
	}
}

// FixtureModifier creates a modifier for testing, defaulting to
// context=local and state=offline unless overridden by the caller.
func FixtureModifier(srcAttr sde.AttrID, op sde.Operator, tgtAttr sde.AttrID, domain sde.Domain, filter sde.FilterType, filterValue int64) sde.Modifier {
	return sde.Modifier{
		Context:     sde.ContextLocal,
		SrcAttr:     srcAttr,
		Operator:    op,
		TgtAttr:     tgtAttr,
		Domain:      domain,
		FilterType:  filter,
		FilterValue: filterValue,
	}
}

// FixtureEffect creates an effect for testing.
func FixtureEffect(id int64, category sde.EffectCategory, mods ...sde.Modifier) sde.Effect {
	return sde.Effect{ID: id, Category: category, Modifiers: mods}
}

// FixtureType creates a type for testing with the given base attributes.
func FixtureType(typeID, groupID int64, attrs map[sde.AttrID]float64, effects ...sde.Effect) *sde.Type {
	return &sde.Type{
		ID:         typeID,
		GroupID:    groupID,
		Attributes: attrs,
		Effects:    effects,
	}
}

// FixtureTypeWithSkill creates a type that requires requiredSkillTypeID, for
// exercising filter_type=skill/skill_self.
func FixtureTypeWithSkill(typeID, groupID int64, attrs map[sde.AttrID]float64, requiredSkillTypeID int64, effects ...sde.Effect) *sde.Type {
	t := FixtureType(typeID, groupID, attrs, effects...)
	t.RequiredSkills = []int64{requiredSkillTypeID}
	return t
}

// NewFakeSource creates an empty in-memory Source, ready for Types/Attrs to
// be registered with PutType/PutAttribute.
func NewFakeSource(name string) *FakeSource {
	return &FakeSource{
		name:  name,
		types: make(map[int64]*sde.Type),
		attrs: make(map[sde.AttrID]sde.Attribute),
	}
}

// FakeSource is an in-memory sde.Source for tests, standing in for the
// data-pipeline bundle a SQLiteSource would otherwise serve.
type FakeSource struct {
	name  string
	types map[int64]*sde.Type
	attrs map[sde.AttrID]sde.Attribute
}

// Name implements sde.Source.
func (s *FakeSource) Name() string { return s.name }

// Type implements sde.Source.
func (s *FakeSource) Type(typeID int64) (*sde.Type, bool) {
	t, ok := s.types[typeID]
	return t, ok
}

// Attribute implements sde.Source.
func (s *FakeSource) Attribute(attr sde.AttrID) (sde.Attribute, bool) {
	a, ok := s.attrs[attr]
	return a, ok
}

// PutType registers t for lookup by its own ID.
func (s *FakeSource) PutType(t *sde.Type) { s.types[t.ID] = t }

// PutAttribute registers attribute metadata for lookup by its own ID.
func (s *FakeSource) PutAttribute(a sde.Attribute) { s.attrs[a.ID] = a }

var _ sde.Source = (*FakeSource)(nil)
