package sde_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evefit/fitcalc/pkg/sde"
)

func TestEffectCategory_MinState(t *testing.T) {
	tests := []struct {
		name       string
		category   sde.EffectCategory
		wantState  sde.State
		wantKnown  bool
	}{
		{"passive gates at offline", sde.EffectPassive, sde.StateOffline, true},
		{"system gates at offline", sde.EffectSystem, sde.StateOffline, true},
		{"online gates at online", sde.EffectOnline, sde.StateOnline, true},
		{"active gates at active", sde.EffectActive, sde.StateActive, true},
		{"target gates at active", sde.EffectTarget, sde.StateActive, true},
		{"overload gates at overload", sde.EffectOverload, sde.StateOverload, true},
		{"unused area category is unrecognized", sde.EffectCategory(3), sde.StateOffline, false},
		{"unused dungeon category is unrecognized", sde.EffectCategory(6), sde.StateOffline, false},
		{"out of range category is unrecognized", sde.EffectCategory(99), sde.StateOffline, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, known := tt.category.MinState()
			assert.Equal(t, tt.wantKnown, known)
			if known {
				assert.Equal(t, tt.wantState, state)
			}
		})
	}
}

func TestOperator_IsAssignment(t *testing.T) {
	assert.True(t, sde.PreAssignment.IsAssignment())
	assert.True(t, sde.PostAssignment.IsAssignment())
	assert.False(t, sde.ModAdd.IsAssignment())
	assert.False(t, sde.PreMul.IsAssignment())
}

func TestOperator_IsMultiplicative(t *testing.T) {
	for _, op := range []sde.Operator{sde.PreMul, sde.PreDiv, sde.PostMul, sde.PostDiv, sde.PostPercent} {
		assert.True(t, op.IsMultiplicative(), "operator %v should be multiplicative", op)
	}
	for _, op := range []sde.Operator{sde.PreAssignment, sde.ModAdd, sde.ModSub, sde.PostAssignment} {
		assert.False(t, op.IsMultiplicative(), "operator %v should not be multiplicative", op)
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "offline", sde.StateOffline.String())
	assert.Equal(t, "online", sde.StateOnline.String())
	assert.Equal(t, "active", sde.StateActive.String())
	assert.Equal(t, "overload", sde.StateOverload.String())
}

func TestType_Attr(t *testing.T) {
	typ := &sde.Type{Attributes: map[sde.AttrID]float64{9: 1000}}
	v, ok := typ.Attr(9)
	assert.True(t, ok)
	assert.Equal(t, 1000.0, v)

	_, ok = typ.Attr(10)
	assert.False(t, ok)

	var nilType *sde.Type
	_, ok = nilType.Attr(9)
	assert.False(t, ok)
}

func TestType_RequiresSkill(t *testing.T) {
	typ := &sde.Type{RequiredSkills: []int64{3300, 3301}}
	assert.True(t, typ.RequiresSkill(3300))
	assert.False(t, typ.RequiresSkill(9999))

	var nilType *sde.Type
	assert.False(t, nilType.RequiresSkill(3300))
}
