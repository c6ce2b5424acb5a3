package sde_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evefit/fitcalc/pkg/sde"
)

type countingSource struct {
	types map[int64]*sde.Type
	calls int
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) Type(typeID int64) (*sde.Type, bool) {
	s.calls++
	t, ok := s.types[typeID]
	return t, ok
}

func (s *countingSource) Attribute(attr sde.AttrID) (sde.Attribute, bool) {
	return sde.Attribute{}, false
}

func TestCachedSource_TypeCacheHitAvoidsInnerCall(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	inner := &countingSource{types: map[int64]*sde.Type{
		34: {ID: 34, GroupID: 18, Attributes: map[sde.AttrID]float64{9: 1000}},
	}}
	cached := sde.NewCachedSource(inner, client, time.Minute)

	t1, ok := cached.Type(34)
	require.True(t, ok)
	assert.Equal(t, int64(34), t1.ID)
	assert.Equal(t, 1, inner.calls)

	t2, ok := cached.Type(34)
	require.True(t, ok)
	assert.Equal(t, int64(34), t2.ID)
	assert.Equal(t, 1, inner.calls, "second read should be served from cache")
}

func TestCachedSource_UnknownTypeMissesWithoutCaching(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	inner := &countingSource{types: map[int64]*sde.Type{}}
	cached := sde.NewCachedSource(inner, client, time.Minute)

	_, ok := cached.Type(999)
	assert.False(t, ok)
	assert.Equal(t, 1, inner.calls)

	_, ok = cached.Type(999)
	assert.False(t, ok)
	assert.Equal(t, 2, inner.calls, "a miss is never cached")
}

func TestCachedSource_AttributeBypassesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	inner := &countingSource{}
	cached := sde.NewCachedSource(inner, client, time.Minute)

	_, ok := cached.Attribute(9)
	assert.False(t, ok)
}

func TestCachedSource_Name(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cached := sde.NewCachedSource(&countingSource{}, client, time.Minute)
	assert.Equal(t, "counting", cached.Name())
}
