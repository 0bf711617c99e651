package lod

import "errors"

var (
	// ErrEmptyThresholds is returned when an object is registered without thresholds.
	ErrEmptyThresholds = errors.New("threshold array is empty")
	// ErrThresholdCount is returned when the threshold array is not 2 or 3 entries long.
	ErrThresholdCount = errors.New("threshold array must hold 2 or 3 entries")
	// ErrThresholdOrder is returned when thresholds are not strictly ascending.
	ErrThresholdOrder = errors.New("thresholds must be strictly ascending")
	// ErrNonPositiveThreshold is returned when a threshold is zero, negative or NaN.
	ErrNonPositiveThreshold = errors.New("thresholds must be positive")
	// ErrNilObject is returned when a nil object handle is registered.
	ErrNilObject = errors.New("object handle is nil")
)
