package apperrors

import "errors"

// BadRequestError marks invalid client input or a business-rule violation:
// duplicate product name, missing image, missing category, failed file delete.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// NotFoundError marks a referenced entity that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// BadRequest creates a BadRequestError with the given message.
func BadRequest(message string) error {
	return &BadRequestError{Message: message}
}

// NotFound creates a NotFoundError with the given message.
func NotFound(message string) error {
	return &NotFoundError{Message: message}
}

// IsBadRequest reports whether err is (or wraps) a BadRequestError.
func IsBadRequest(err error) bool {
	var target *BadRequestError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
