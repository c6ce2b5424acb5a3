// Package testutil provides test utilities and mocks for the attribute
// calculation engine.
package testutil

import "github.com/evefit/fitcalc/pkg/sde"

// MockSource is a mock implementation of sde.Source whose behavior is
// injected per-call, for tests that need to simulate lookup failures
// (unknown type, unknown attribute) without building a FakeSource.
type MockSource struct {
	NameFunc      func() string
	TypeFunc      func(typeID int64) (*sde.Type, bool)
	AttributeFunc func(attr sde.AttrID) (sde.Attribute, bool)
}

// Name calls the mock function or returns a default name.
func (m *MockSource) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "mock-source"
}

// Type calls the mock function or reports every type as unknown.
func (m *MockSource) Type(typeID int64) (*sde.Type, bool) {
	if m.TypeFunc != nil {
		return m.TypeFunc(typeID)
	}
	return nil, false
}

// Attribute calls the mock function or reports every attribute as unknown.
func (m *MockSource) Attribute(attr sde.AttrID) (sde.Attribute, bool) {
	if m.AttributeFunc != nil {
		return m.AttributeFunc(attr)
	}
	return sde.Attribute{}, false
}

// NewMockSourceAlwaysMissing creates a MockSource whose lookups miss exactly
// like sde.NullSource{}'s (its Name is the mock default), for tests that want
// an explicit mock rather than the sentinel itself.
func NewMockSourceAlwaysMissing() *MockSource {
	return &MockSource{}
}

// Compile-time interface compliance check.
var _ sde.Source = (*MockSource)(nil)
