package compliance

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is the sentinel for unrecognized procurement
// categories. Use errors.Is against this, or errors.As against
// *UnknownCategoryError to recover the offending name.
var ErrUnknownCategory = errors.New("unknown procurement category")

// UnknownCategoryError reports a category identifier outside the four
// recognized procurement flows. It is the only error the engine returns;
// callers are expected to log it, skip the case or file, and continue the
// batch.
type UnknownCategoryError struct {
	// Category is the unrecognized identifier as supplied by the caller.
	Category string
}

// Error returns the error message.
func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown procurement category %q (expected one of %v)", e.Category, Categories())
}

// Is makes the error match ErrUnknownCategory.
func (e *UnknownCategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}
