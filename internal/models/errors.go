package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes for operational (expected, user-facing) failures.
const (
	CodeMissingInput       = "MISSING_INPUT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeAlreadyCommented   = "ALREADY_COMMENTED"
	CodeNotLiked           = "NOT_LIKED"
	CodeNotFollowed        = "NOT_FOLLOWED"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError represents a custom application error. Operational errors carry a
// human-readable message and an HTTP status; programmer errors wrap the
// underlying cause and never leak it to clients.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Operational reports whether the error is an expected, user-facing failure
// as opposed to an internal one.
func (e *AppError) Operational() bool {
	return e.Code != CodeInternal
}

// Predefined error constructors

func NewMissingInputError(message string) *AppError {
	return &AppError{Code: CodeMissingInput, Message: message, Status: fiber.StatusBadRequest}
}

func NewInvalidCredentialsError(message string) *AppError {
	return &AppError{Code: CodeInvalidCredentials, Message: message, Status: fiber.StatusUnauthorized}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Code: CodeUnauthenticated, Message: message, Status: fiber.StatusUnauthorized}
}

// NewNotFoundError builds a not-found error with an explicit status because
// some routes report a missing resource as 400 rather than 404.
func NewNotFoundError(message string, status int) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Status: status}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message, Status: fiber.StatusBadRequest}
}

func NewAlreadyCommentedError(message string) *AppError {
	return &AppError{Code: CodeAlreadyCommented, Message: message, Status: fiber.StatusBadRequest}
}

func NewNotLikedError(message string) *AppError {
	return &AppError{Code: CodeNotLiked, Message: message, Status: fiber.StatusBadRequest}
}

func NewNotFollowedError(message string) *AppError {
	return &AppError{Code: CodeNotFollowed, Message: message, Status: fiber.StatusBadRequest}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Status: fiber.StatusBadRequest}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Status:  fiber.StatusInternalServerError,
		Err:     err,
	}
}

// RespondWithError writes the standardized error envelope. Operational errors
// render as status "fail" with their message; everything else renders as
// status "error" with no internal detail leaked.
func RespondWithError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*AppError); ok && appErr.Operational() {
		return c.Status(appErr.Status).JSON(fiber.Map{
			"status":  "fail",
			"message": appErr.Message,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "Internal server error",
	})
}
