package domain

import "errors"

var (
	// ErrInvalidService marks a requested service that is not a well-formed (name, cost, in_network) record
	ErrInvalidService = errors.New("invalid service")
	// ErrNegativeAmount marks a cost, threshold, or premium below zero
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrHorizonTooLong marks a scenario spanning more than MaxMonths
	ErrHorizonTooLong = errors.New("scenario horizon too long")
	// ErrNotFound marks a plan or scenario name missing from the configuration
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransform marks a what-if template or transform that cannot be built
	ErrInvalidTransform = errors.New("invalid transform")
)
