package fit

import (
	"testing"

	"github.com/evefit/fitcalc/internal/testutil"
	"github.com/evefit/fitcalc/pkg/sde"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffectorRegistry_FilterGroupMatchesOnlySameGroup(t *testing.T) {
	src := testutil.NewFakeSource("test")
	const attrDmg sde.AttrID = 64
	const attrBoost sde.AttrID = 11
	src.PutAttribute(testutil.FixtureAttribute(attrDmg, false, true, 0))

	mod := testutil.FixtureModifier(attrBoost, sde.ModAdd, attrDmg, sde.DomainShip, sde.FilterGroup, 55)
	carrierType := testutil.FixtureType(9000, 1, map[sde.AttrID]float64{attrBoost: 10},
		testutil.FixtureEffect(1, sde.EffectPassive, mod))
	inGroupType := testutil.FixtureType(9001, 55, map[sde.AttrID]float64{attrDmg: 100})
	outGroupType := testutil.FixtureType(9002, 56, map[sde.AttrID]float64{attrDmg: 100})
	shipType := testutil.FixtureType(600, 1, nil)
	src.PutType(carrierType)
	src.PutType(inGroupType)
	src.PutType(outGroupType)
	src.PutType(shipType)

	f := NewFit(src)
	require.NoError(t, f.Add(NewShip(600)))
	require.NoError(t, f.Add(NewModule(9000)))
	inGroup := NewModule(9001)
	outGroup := NewModule(9002)
	require.NoError(t, f.Add(inGroup))
	require.NoError(t, f.Add(outGroup))

	v, err := inGroup.Attribute(attrDmg)
	require.NoError(t, err)
	assert.Equal(t, 110.0, v)

	v, err = outGroup.Attribute(attrDmg)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)
}

func TestAffectorRegistry_FilterSkillSelfMatchesRequiredSkillOnCarrierType(t *testing.T) {
	src := testutil.NewFakeSource("test")
	const attrDmg sde.AttrID = 64
	const attrBoost sde.AttrID = 11
	src.PutAttribute(testutil.FixtureAttribute(attrDmg, false, true, 0))

	mod := testutil.FixtureModifier(attrBoost, sde.ModAdd, attrDmg, sde.DomainShip, sde.FilterSkillSelf, 0)
	skillType := testutil.FixtureType(3300, 1, map[sde.AttrID]float64{attrBoost: 25},
		testutil.FixtureEffect(1, sde.EffectPassive, mod))
	requiresType := testutil.FixtureTypeWithSkill(9001, 1, map[sde.AttrID]float64{attrDmg: 100}, 3300)
	doesNotRequireType := testutil.FixtureType(9002, 1, map[sde.AttrID]float64{attrDmg: 100})
	shipType := testutil.FixtureType(600, 1, nil)
	src.PutType(skillType)
	src.PutType(requiresType)
	src.PutType(doesNotRequireType)
	src.PutType(shipType)

	f := NewFit(src)
	require.NoError(t, f.Add(NewShip(600)))
	require.NoError(t, f.Add(NewSkill(3300, 5)))
	requires := NewModule(9001)
	doesNotRequire := NewModule(9002)
	require.NoError(t, f.Add(requires))
	require.NoError(t, f.Add(doesNotRequire))

	v, err := requires.Attribute(attrDmg)
	require.NoError(t, err)
	assert.Equal(t, 125.0, v)

	v, err = doesNotRequire.Attribute(attrDmg)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)
}

func TestAffectorRegistry_DomainOtherAlwaysUnresolvable(t *testing.T) {
	src := testutil.NewFakeSource("test")
	const attrDmg sde.AttrID = 64
	src.PutAttribute(testutil.FixtureAttribute(attrDmg, false, true, 0))

	mod := testutil.FixtureModifier(10, sde.ModAdd, attrDmg, sde.DomainOther, sde.FilterNone, 0)
	carrierType := testutil.FixtureType(9000, 1, map[sde.AttrID]float64{10: 50, attrDmg: 100},
		testutil.FixtureEffect(1, sde.EffectPassive, mod))
	src.PutType(carrierType)

	f := NewFit(src)
	h := NewModule(9000)
	require.NoError(t, f.Add(h))

	v, err := h.Attribute(attrDmg)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v, "domain=other never resolves, base value is unaffected")
}
