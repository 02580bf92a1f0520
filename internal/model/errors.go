package model

import "errors"

var (
	ErrModelNotLoaded    = errors.New("model not loaded")
	ErrInvalidInput      = errors.New("invalid input")
	ErrProcessingFailure = errors.New("processing failure")
)

// InputError rejects a request before it reaches the model.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ProcessingError reports a decode or inference failure for one request.
type ProcessingError struct {
	Stage string
	Err   error
}

func (e *ProcessingError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

func (e *ProcessingError) Is(target error) bool {
	return target == ErrProcessingFailure
}
