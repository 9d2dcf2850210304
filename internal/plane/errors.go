package plane

import "errors"

// ErrInvalidConfig marks a configuration error: a non-positive resolution
// passed to Reset. Callers at the process boundary turn this into a fatal
// exit per spec.md §7.
var ErrInvalidConfig = errors.New("plane: invalid configuration")
