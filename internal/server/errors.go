package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	attachmentdomain "github.com/founderspw/somanager/internal/attachment/domain"
	bulkdomain "github.com/founderspw/somanager/internal/bulk/domain"
	catalogdomain "github.com/founderspw/somanager/internal/catalog/domain"
	customerdomain "github.com/founderspw/somanager/internal/customer/domain"
	invoicedomain "github.com/founderspw/somanager/internal/invoice/domain"
	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
	staffdomain "github.com/founderspw/somanager/internal/staff/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, catalogdomain.ErrInvalidID),
		errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidPrice),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidMethod),
		errors.Is(err, staffdomain.ErrInvalidID),
		errors.Is(err, staffdomain.ErrInvalidName),
		errors.Is(err, sodomain.ErrInvalidID),
		errors.Is(err, sodomain.ErrUnknownStatus),
		errors.Is(err, sodomain.ErrInvalidQuantity),
		errors.Is(err, sodomain.ErrInvalidPrice),
		errors.Is(err, sodomain.ErrNoCadence),
		errors.Is(err, bulkdomain.ErrInvalidAction),
		errors.Is(err, bulkdomain.ErrEmptySelection),
		errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, attachmentdomain.ErrInvalidID),
		errors.Is(err, attachmentdomain.ErrInvalidName):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, catalogdomain.ErrDuplicateName),
		errors.Is(err, customerdomain.ErrDuplicateName),
		errors.Is(err, sodomain.ErrIllegalTransition),
		errors.Is(err, sodomain.ErrOrderFrozen),
		errors.Is(err, invoicedomain.ErrNotInvoiceable),
		errors.Is(err, invoicedomain.ErrAlreadyInvoiced),
		errors.Is(err, invoicedomain.ErrEmptyOrder),
		errors.Is(err, invoicedomain.ErrNotReopenable):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrProfileNotFound),
		errors.Is(err, staffdomain.ErrNotFound),
		errors.Is(err, sodomain.ErrNotFound),
		errors.Is(err, sodomain.ErrLineNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, attachmentdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if code == "invalid_request" {
		return "request"
	}
	return ""
}
