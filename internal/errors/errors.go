package errors

import (
	stderrors "errors"
	"fmt"

	"modboard/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the outermost AppError code, classifying domain sentinels
// when no AppError is present.
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case err == nil:
		return ""
	case core.IsNotFoundError(err):
		return CodeNotFound
	case core.IsValidationError(err):
		return CodeValidationError
	case stderrors.Is(err, core.ErrNoData):
		return CodeNoData
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeNoData          = "NO_DATA"
	CodeExportFailed    = "EXPORT_FAILED"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// ExternalServiceError carries the message the upstream service returned,
// which is what the dashboard shows.
func ExternalServiceError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeExternalService,
		Message: message,
		Cause:   cause,
	}
}

// ExportFailed marks a report that could not be produced
func ExportFailed(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeExportFailed,
		Message: message,
		Cause:   cause,
	}
}

// GenericAPIMessage is shown when the API gave no usable error text
const GenericAPIMessage = "Ошибка API"

// UserMessage returns the single line shown to a moderator for err: the
// innermost AppError message (the most specific one), or a generic text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var msg string
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if appErr, ok := e.(*AppError); ok && appErr.Message != "" {
			msg = appErr.Message
		}
	}
	if msg != "" {
		return msg
	}
	for _, m := range sentinelMessages {
		if stderrors.Is(err, m.err) {
			return m.text
		}
	}
	return GenericAPIMessage
}

// sentinelMessages is checked in order, so specific sentinels come before
// the ones they wrap.
var sentinelMessages = []struct {
	err  error
	text string
}{
	{core.ErrNoData, "Нет данных за выбранный период"},
	{core.ErrSuperseded, "Запрос заменен более новым выбором периода"},
	{core.ErrInvalidPeriod, "Неизвестный период. Доступны: сегодня, 7 дней, 30 дней"},
	{core.ErrUnknownFormat, "Неизвестный формат отчета. Доступны: csv, detailed, xlsx"},
	{core.ErrInvalidQuery, "Некорректные параметры поиска объявлений"},
	{core.ErrNoReasons, "Выберите хотя бы одну причину"},
	{core.ErrOtherReasonEmpty, "Укажите причину в поле «Другое»"},
	{core.ErrFormState, "Форма уже отправлена"},
	{core.ErrInvalidInput, "Некорректные данные запроса"},
	{core.ErrNotFound, "Объявление не найдено"},
}
