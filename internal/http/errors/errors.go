// Package errors define el error estándar de la API HTTP y su serialización JSON.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/contacts/internal/store/core"
)

// AppError es el error que ven los clientes HTTP.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // causa original, solo para logs
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithDetail devuelve una COPIA con detalle (no muta los errores base).
func (e *AppError) WithDetail(detail string) *AppError {
	c := *e
	c.Detail = detail
	return &c
}

// WithCause devuelve una COPIA con la causa original.
func (e *AppError) WithCause(err error) *AppError {
	c := *e
	c.Err = err
	return &c
}

var (
	ErrBadRequest          = &AppError{Code: "bad_request", Message: "invalid request", HTTPStatus: http.StatusBadRequest}
	ErrNotFound            = &AppError{Code: "not_found", Message: "resource not found", HTTPStatus: http.StatusNotFound}
	ErrConflict            = &AppError{Code: "constraint_violation", Message: "rejected by database constraint", HTTPStatus: http.StatusConflict}
	ErrInternalServerError = &AppError{Code: "internal_error", Message: "internal server error", HTTPStatus: http.StatusInternalServerError}
	ErrServiceUnavailable  = &AppError{Code: "unavailable", Message: "service unavailable", HTTPStatus: http.StatusServiceUnavailable}
)

// FromError traduce errores de otras capas (store) a AppError.
func FromError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	switch {
	case stderrors.Is(err, core.ErrNotFound):
		return ErrNotFound.WithCause(err)
	case stderrors.Is(err, core.ErrInvalid):
		return ErrBadRequest.WithCause(err).WithDetail(err.Error())
	case core.IsConstraintViolation(err), core.IsForeignKeyViolation(err):
		return ErrConflict.WithCause(err)
	default:
		return ErrInternalServerError.WithCause(err)
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// WriteError escribe err como JSON con el status correspondiente.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	})
}
