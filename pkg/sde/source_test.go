package sde_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evefit/fitcalc/pkg/sde"
)

func TestNullSource_AlwaysMisses(t *testing.T) {
	var src sde.NullSource

	_, ok := src.Type(34)
	assert.False(t, ok)

	_, ok = src.Attribute(9)
	assert.False(t, ok)

	assert.Equal(t, "<null-source>", src.Name())
}

func TestTypeOrNull(t *testing.T) {
	assert.Nil(t, sde.TypeOrNull(nil, 34))
	assert.Nil(t, sde.TypeOrNull(sde.NullSource{}, 34))
}
