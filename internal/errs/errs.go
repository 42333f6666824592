// Package errs содержит ошибки приложения и их HTTP статусы.
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ValidationError - отклоненное поле. Status равен 400 для ресурсов и 422 для регистрации.
type ValidationError struct {
	Field   string
	Message string
	Status  int
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid возвращает ошибку валидации со статусом 400.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message, Status: http.StatusBadRequest}
}

// Unprocessable возвращает ошибку валидации со статусом 422.
func Unprocessable(field, message string) error {
	return &ValidationError{Field: field, Message: message, Status: http.StatusUnprocessableEntity}
}

// AuthKind - вид ошибки аутентификации.
type AuthKind int

const (
	AuthMissing AuthKind = iota
	AuthInvalid
	// AuthExpired - подпись верна, но срок действия токена истек.
	AuthExpired
)

func (k AuthKind) String() string {
	switch k {
	case AuthMissing:
		return "missing"
	case AuthExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// AuthenticationError - неудачный вход или проверка токена.
type AuthenticationError struct {
	Kind AuthKind
	Err  error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication %s: %v", e.Kind, e.Err)
	}
	return "authentication " + e.Kind.String()
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// Unauthenticated создает ошибку аутентификации.
func Unauthenticated(kind AuthKind, cause error) error {
	return &AuthenticationError{Kind: kind, Err: cause}
}

// NotFoundError - ресурс не найден у текущего пользователя.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// ConflictError - нарушение уникальности имени.
type ConflictError struct {
	Entity string
	Err    error
}

func (e *ConflictError) Error() string {
	if e.Entity == "user" {
		return "The username already exists"
	}
	return fmt.Sprintf("The %s name already exists", e.Entity)
}

func (e *ConflictError) Unwrap() error { return e.Err }

func Conflict(entity string, cause error) error {
	return &ConflictError{Entity: entity, Err: cause}
}

// TooManyRequestsError возвращается, пока вход для пользователя заблокирован.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e *TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// InternalError оборачивает непредвиденную ошибку. Причина только логируется.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return "internal error"
	}
	return "internal error: " + e.Err.Error()
}

func (e *InternalError) Unwrap() error { return e.Err }

func Internal(cause error) error {
	return &InternalError{Err: cause}
}

// HTTPStatus возвращает HTTP статус для ошибки. Неизвестные ошибки дают 500.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		auth       *AuthenticationError
		notFound   *NotFoundError
		conflict   *ConflictError
		tooMany    *TooManyRequestsError
	)

	switch {
	case errors.As(err, &validation):
		if validation.Status == 0 {
			return http.StatusBadRequest
		}
		return validation.Status
	case errors.As(err, &auth):
		if auth.Kind == AuthMissing {
			return http.StatusBadRequest
		}
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusBadRequest
	case errors.As(err, &tooMany):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
