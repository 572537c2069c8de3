package domain

import "errors"

var (
	// ErrInvalidSelection reports a clothing or activity name outside the catalog.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrOutOfRange reports an environmental input outside the accepted bounds.
	ErrOutOfRange = errors.New("input out of range")

	// ErrInvalidPrediction reports a predictor result that is not a finite number.
	ErrInvalidPrediction = errors.New("invalid prediction")
)
