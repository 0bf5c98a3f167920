package structure

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCyclicParent is matched by errors describing descriptors whose parent
// chain loops back on itself.
var ErrCyclicParent = errors.New("structure: cyclic parent reference")

// CycleError lists the keys that could not be attached to the tree because
// their parent chain never reaches a root.
type CycleError struct {
	Keys []string
}

func (e *CycleError) Error() string {
	if e == nil || len(e.Keys) == 0 {
		return ErrCyclicParent.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCyclicParent.Error(), strings.Join(e.Keys, ", "))
}

// Is lets errors.Is match ErrCyclicParent.
func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicParent
}
