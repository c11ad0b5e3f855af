package common

import (
	"errors"
	"fmt"

	"github.com/bnbchain/ptau-setup/parameters"
)

var (
	ErrInvalidEncoding     = errors.New("invalid point encoding")
	ErrPointAtInfinity     = errors.New("point at infinity")
	ErrNotOnCurve          = errors.New("point is not on the curve")
	ErrNotInSubgroup       = errors.New("point is not in the prime order subgroup")
	ErrExhaustedChunkBound = errors.New("chunk exceeds the maximum batch size")
	ErrRatioCheckFailed    = errors.New("ratio check failed")
)

// DecodeError is returned for any point of a buffer that can't be decoded or
// fails validation. It is fatal for the operation that reads it.
type DecodeError struct {
	Element parameters.ElementType
	Index   int
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s[%d]: %v", e.Element, e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
