package http

import (
	"net/http"

	"morna/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every rejected request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func statusOf(reason errs.Reason) int {
	switch reason {
	case errs.ReasonNotFound:
		return http.StatusNotFound
	case errs.ReasonConflict:
		return http.StatusConflict
	case errs.ReasonInvalidTransition,
		errs.ReasonInvalidJump,
		errs.ReasonAlreadyShipped,
		errs.ReasonEmptyBox:
		return http.StatusUnprocessableEntity
	case errs.ReasonInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}

func (s *Server) fail(ctx echo.Context, operation string, err error) error {
	reason := errs.ReasonOf(err)
	status := statusOf(reason)

	message := err.Error()
	if reason == errs.ReasonStoreFailure {
		s.logger.Error("store failure", "operation", operation, "error", err)
		message = "store is unavailable, retry later"
	} else {
		s.logger.Debug("request rejected", "operation", operation, "reason", reason, "error", err)
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Reason:  string(reason),
		Message: message,
	})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Reason:  string(errs.ReasonInvalidInput),
		Message: message,
	})
}
