package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	ErrorCode string      `json:"error_code,omitempty"`
	Message   string      `json:"message,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusCreated, data, message)
}

func RespondStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	RespondErrorCode(c, code, defaultErrorCode(code), message, nil)
}

func RespondErrorCode(c *gin.Context, code int, errorCode, message string, data interface{}) {
	c.AbortWithStatusJSON(code, APIResponse{
		Status:    "error",
		Code:      code,
		ErrorCode: errorCode,
		Message:   message,
		TraceID:   c.GetString("trace_id"),
		Data:      data,
	})
}

// RespondBindingError reports request decoding failures, with per-field detail
// when the validator produced it.
func RespondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		RespondErrorCode(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", fields)
		return
	}
	RespondErrorCode(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request format", nil)
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var errorTable = []errorMapping{
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials"},
	{ErrInvalidOrExpiredToken, http.StatusUnauthorized, "INVALID_OR_EXPIRED_TOKEN", "Invalid or expired token"},
	{ErrMalformedToken, http.StatusBadRequest, "MALFORMED_TOKEN", "Malformed 2FA token"},
	{ErrCodeMismatch, http.StatusUnauthorized, "CODE_MISMATCH", "Invalid verification code"},
	{ErrMissingInput, http.StatusBadRequest, "MISSING_INPUT", "Token and code are required"},
	{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN", "Forbidden: insufficient permissions"},
	{ErrAccountExists, http.StatusConflict, "ACCOUNT_EXISTS", "Account is already taken"},
	{ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION", ""},
	{ErrVehicleUnavailable, http.StatusConflict, "VEHICLE_UNAVAILABLE", ""},
	{ErrShipmentInUse, http.StatusConflict, "SHIPMENT_IN_USE", "Shipment still has linked orders"},
	{ErrTooManyRequests, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many requests"},
}

func HandleServiceError(c *gin.Context, err error) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		RespondErrorCode(c, http.StatusNotFound, nf.Code(), nf.Error(), nil)
		return
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		RespondErrorCode(c, http.StatusBadRequest, "VALIDATION_FAILED", ve.Error(),
			[]FieldError{{Field: ve.Field, Rule: ve.Reason}})
		return
	}

	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			RespondErrorCode(c, m.status, m.code, msg, nil)
			return
		}
	}

	zap.L().Error("unhandled service error",
		zap.String("trace_id", c.GetString("trace_id")),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	RespondErrorCode(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

func defaultErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		return "INTERNAL_ERROR"
	}
}
