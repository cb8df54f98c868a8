package ports

import "errors"

// ErrConcurrentModification is returned by conditional repository writes when
// the row no longer satisfies the expected precondition, meaning another
// transaction won the race. Callers must re-read the aggregate and retry or
// surface a conflict.
var ErrConcurrentModification = errors.New("aggregate was modified concurrently")
