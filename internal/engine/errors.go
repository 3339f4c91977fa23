package engine

import "errors"

// ErrOddLength reports an interleaved I/Q buffer whose length is not a
// multiple of two. The input cannot be split into complex samples; the caller
// must repair it and call again.
var ErrOddLength = errors.New("input length must be even (interleaved I/Q pairs)")
