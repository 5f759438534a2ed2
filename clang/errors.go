package clang

import (
	"github.com/cockroachdb/errors"
)

// ErrContractViolation marks errors caused by a frontend handing out data
// the decoders cannot interpret, such as an unknown kind tag.
var ErrContractViolation = errors.New("frontend contract violation")

// ContractViolationf returns an assertion failure marked with
// ErrContractViolation.
func ContractViolationf(format string, args ...any) error {
	return errors.WithAssertionFailure(errors.Mark(errors.Newf(format, args...), ErrContractViolation))
}

// IsContractViolation reports whether err was produced by ContractViolationf.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrContractViolation)
}
