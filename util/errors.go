package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Root errors
	ErrInvalidInputRoot = errors.New("input root does not exist or is not readable")
	ErrOutputRoot       = errors.New("output root cannot be created")

	// Copy errors
	ErrSameFile = errors.New("source and destination are the same file")
)
