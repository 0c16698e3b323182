package services

import "errors"

// ValidationError je lokalna greška pre upisa - nijedan zahtev ka bazi se ne
// šalje kada validacija padne. Handleri je mapiraju na 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
