package service

import "errors"

var (
	// ErrSourceUnavailable indicates discovery against the external catalog
	// source failed. It is distinct from "zero candidates found": a failed
	// discovery never turns into an empty successful result.
	ErrSourceUnavailable = errors.New("external catalog source unavailable")

	// ErrSinkUnavailable indicates the analytics store could not serve a
	// write or a read it exclusively backs.
	ErrSinkUnavailable = errors.New("analytics store unavailable")

	// ErrInvalidMonth indicates a malformed month parameter.
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
)
