package ui

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"modboard/domain/core"
	"modboard/internal/errors"
)

// CodeSuperseded marks a stats response replaced by a newer selection
const CodeSuperseded = "SUPERSEDED"

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error to its HTTP status
func statusFor(err error) (int, string) {
	switch {
	case stderrors.Is(err, core.ErrSuperseded):
		return http.StatusConflict, CodeSuperseded
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errors.CodeExternalService
	}

	code := errors.GetCode(err)
	switch code {
	case errors.CodeValidationError, errors.CodeInvalidInput:
		return http.StatusBadRequest, code
	case errors.CodeExternalService:
		if core.IsNotFoundError(err) {
			return http.StatusNotFound, errors.CodeNotFound
		}
		return http.StatusBadGateway, code
	case errors.CodeNotFound:
		return http.StatusNotFound, code
	case errors.CodeNoData:
		return http.StatusConflict, code
	}
	return http.StatusInternalServerError, code
}

func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		a.logger.Debug("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorBody{Error: errors.UserMessage(err), Code: code})
}
