package domain

import "errors"

var (
	// Common domain errors
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrServiceUnavailable = errors.New("AI service temporarily unavailable. Please try again.")
	ErrInvalidArgument    = errors.New("invalid argument")
)

// ValidationError carries the human-readable reasons a request body was
// rejected. The HTTP boundary surfaces the reasons verbatim in the 400 body.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	if len(e.Reasons) == 0 {
		return "validation failed"
	}
	return e.Reasons[0]
}

func NewValidationError(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}

// AsValidation unwraps err into a *ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
