// Package testutil_test verifies fixture and mock functionality
package testutil_test

import (
	"testing"

	"github.com/evefit/fitcalc/internal/testutil"
	"github.com/evefit/fitcalc/pkg/sde"
	"github.com/stretchr/testify/assert"
)

func TestFixtureType(t *testing.T) {
	typ := testutil.FixtureType(34, 18, map[sde.AttrID]float64{9: 1000})

	assert.Equal(t, int64(34), typ.ID)
	assert.Equal(t, int64(18), typ.GroupID)
	v, ok := typ.Attr(9)
	assert.True(t, ok)
	assert.Equal(t, 1000.0, v)
}

func TestFixtureTypeWithSkill(t *testing.T) {
	typ := testutil.FixtureTypeWithSkill(3001, 1, nil, 3300)
	assert.True(t, typ.RequiresSkill(3300))
	assert.False(t, typ.RequiresSkill(9999))
}

func TestFakeSource_RoundTrip(t *testing.T) {
	src := testutil.NewFakeSource("test-bundle")
	src.PutType(testutil.FixtureType(34, 18, map[sde.AttrID]float64{9: 1000}))
	src.PutAttribute(testutil.FixtureAttribute(9, false, true, 0))

	assert.Equal(t, "test-bundle", src.Name())

	typ, ok := src.Type(34)
	assert.True(t, ok)
	assert.Equal(t, int64(34), typ.ID)

	_, ok = src.Type(999)
	assert.False(t, ok)

	attr, ok := src.Attribute(9)
	assert.True(t, ok)
	assert.True(t, attr.HighIsGood)
}

func TestMockSource_DefaultBehaviorAlwaysMisses(t *testing.T) {
	mock := testutil.NewMockSourceAlwaysMissing()

	_, ok := mock.Type(1)
	assert.False(t, ok)

	_, ok = mock.Attribute(1)
	assert.False(t, ok)

	assert.Equal(t, "mock-source", mock.Name())
}

func TestMockSource_InjectedBehavior(t *testing.T) {
	mock := &testutil.MockSource{
		TypeFunc: func(typeID int64) (*sde.Type, bool) {
			return testutil.FixtureType(typeID, 1, nil), true
		},
	}

	typ, ok := mock.Type(42)
	assert.True(t, ok)
	assert.Equal(t, int64(42), typ.ID)
}
