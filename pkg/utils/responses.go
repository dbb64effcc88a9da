package utils

import (
	"encoding/json"
	"net/http"

	"ticket-service/pkg/apperror"
)

// Response is the envelope every endpoint answers with. On failure Errors
// carries either the field -> message map of a validation failure or the
// apperror body ({"code", "subject", "message"}).
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// ResponseBadRequest answers 400 with per-field validation messages.
func ResponseBadRequest(w http.ResponseWriter, message string, fields map[string]string) {
	if len(fields) == 0 {
		ResponseAppError(w, apperror.Validation(message))
		return
	}
	ResponseJSON(w, http.StatusBadRequest, false, message, nil, fields)
}

// ResponseAppError writes a typed domain error with the status its kind maps to.
func ResponseAppError(w http.ResponseWriter, e *apperror.Error) {
	ResponseJSON(w, e.Status(), false, e.Message, nil, e)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseAppError(w, apperror.New(apperror.KindUnauthorized, message))
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseAppError(w, apperror.New(apperror.KindForbidden, message))
}

// ResponseInternalError hides the cause; callers log it first.
func ResponseInternalError(w http.ResponseWriter) {
	ResponseAppError(w, internalError)
}

var internalError = apperror.New(apperror.KindInternal, "Internal server error")
