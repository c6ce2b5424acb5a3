package fit

import (
	"errors"
	"fmt"

	"github.com/evefit/fitcalc/pkg/sde"
)

// AttributeMissingError is returned by Holder.Attribute when neither the
// type, any assignment modifier, nor the attribute's metadata supplies a
// value. Callers that can tolerate a zero value should prefer
// Holder.AttributeOr.
type AttributeMissingError struct {
	TypeID int64
	Attr   sde.AttrID
}

func (e *AttributeMissingError) Error() string {
	return fmt.Sprintf("fit: no base value, default, or assignment modifier for attribute %d on type %d", e.Attr, e.TypeID)
}

// ErrAlreadyBound is returned by Fit.Add when the holder already belongs to
// a fit (its own or another). Structural errors are reported before any
// mutation takes place.
var ErrAlreadyBound = errors.New("fit: holder is already bound to a fit")

// ErrNotBound is returned by Fit.Remove when the holder does not belong to
// this fit.
var ErrNotBound = errors.New("fit: holder does not belong to this fit")

// ErrAttributeNotWritable is returned by SetAttribute for any attribute
// outside the per-kind whitelist.
var ErrAttributeNotWritable = errors.New("fit: attribute is not writable")
