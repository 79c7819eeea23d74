package plinksplit

import "errors"

var (
	// ErrInvalidProportions is returned when the train, val and test
	// percentages do not describe a partition of 100%.
	ErrInvalidProportions = errors.New("invalid split proportions")

	// ErrInputNotFound is returned when the sample registry does not exist.
	ErrInputNotFound = errors.New("sample registry not found")

	// ErrMalformedInput is returned when a registry line has fewer than two
	// fields.
	ErrMalformedInput = errors.New("malformed sample registry")

	// ErrWriteFailed is returned when a subset sample list cannot be written.
	ErrWriteFailed = errors.New("could not write sample list")

	// ErrExternalTool is returned when PLINK could not be run or exited
	// non-zero.
	ErrExternalTool = errors.New("external tool failure")
)
