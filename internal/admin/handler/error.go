package handler

import (
	"errors"
	"net/http"

	"secadmin/internal/admin/matrix"
	"secadmin/internal/admin/model"
)

var ErrUnauthorized = errors.New("unauthorized")

// Helper to map errors to HTTP status and body
func httpError(err error) (int, interface{}) {
	var code string
	var msg string
	var status int

	switch {
	case errors.Is(err, ErrUnauthorized):
		status = http.StatusUnauthorized
		code = "unauthorized"
		msg = "Unauthorized"
	case errors.Is(err, matrix.ErrLoadFailed):
		status = http.StatusServiceUnavailable
		code = "load_failed"
		msg = "Grid load failed; retry"
	case errors.Is(err, matrix.ErrAccessRequired):
		status = http.StatusConflict
		code = "access_required"
		msg = "Grant access before editing capabilities"
	case errors.Is(err, matrix.ErrCellBusy):
		status = http.StatusConflict
		code = "edit_in_flight"
		msg = "An edit for this cell is still pending"
	case errors.Is(err, matrix.ErrInvariant):
		status = http.StatusInternalServerError
		code = "invariant_violation"
		msg = "Capabilities require access"
	case errors.Is(err, matrix.ErrCommitFailed):
		status = http.StatusBadGateway
		code = "store_unavailable"
		msg = "Permission store rejected the write"
	default:
		status = http.StatusInternalServerError
		code = "internal_error"
		msg = err.Error()
	}

	return status, model.ErrorResponse{
		Error: model.ErrorDetail{Code: code, Message: msg},
	}
}

func validationError(err error) (int, interface{}) {
	var detail *model.ErrorDetail
	if errors.As(err, &detail) {
		return http.StatusBadRequest, model.ErrorResponse{Error: *detail}
	}
	return http.StatusBadRequest, model.ErrorResponse{
		Error: model.ErrorDetail{Code: "bad_request", Message: err.Error()},
	}
}
