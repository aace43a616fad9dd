package errorz

import "errors"

var (
	Forbidden         = errors.New("forbidden")
	NotFound          = errors.New("not found")
	InvalidOrigin     = errors.New("invalid origin")
	AssertionRequired = errors.New("assertion required")
	InvalidAssertion  = errors.New("invalid assertion or email")
)
