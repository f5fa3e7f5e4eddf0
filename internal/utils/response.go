// internal/utils/response.go
package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"printer-service/pkg/fault"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIError carries the machine-readable failure details. Retryable tells
// the POS frontend whether offering a retry button makes sense.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Retryable bool   `json:"retryable"`
}

// SuccessResponse sends a successful response
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	send(c, statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse sends a failure whose status the handler chose itself.
func ErrorResponse(c *gin.Context, statusCode int, message string, err error) {
	apiError := &APIError{
		Code:    codeForStatus(statusCode),
		Message: message,
	}
	if err != nil {
		apiError.Details = err.Error()
	}

	send(c, statusCode, APIResponse{
		Success: false,
		Message: message,
		Error:   apiError,
	})
}

// FailureResponse sends a failure that still carries data, for flows like
// printer setup where the caller needs the resulting state snapshot even
// though the operation did not succeed.
func FailureResponse(c *gin.Context, statusCode int, message, code string, retryable bool, data interface{}) {
	send(c, statusCode, APIResponse{
		Success: false,
		Message: message,
		Data:    data,
		Error: &APIError{
			Code:      code,
			Message:   message,
			Retryable: retryable,
		},
	})
}

// FaultResponse sends a failure mapped from a printer fault. Status, code
// and retryability all come from the fault taxonomy.
func FaultResponse(c *gin.Context, message string, err error) {
	apiError := &APIError{
		Code:      fault.Code(err),
		Message:   message,
		Retryable: fault.Retryable(err),
	}
	if err != nil {
		apiError.Details = err.Error()
	}

	send(c, fault.HTTPStatus(err), APIResponse{
		Success: false,
		Message: message,
		Error:   apiError,
	})
}

func send(c *gin.Context, statusCode int, response APIResponse) {
	response.Timestamp = time.Now()
	if requestID, ok := c.Get("request_id"); ok {
		response.RequestID = requestID.(string)
	}
	c.JSON(statusCode, response)
}

func codeForStatus(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
