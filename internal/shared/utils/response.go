package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
)

// APIResponse is the envelope every JSON endpoint answers with:
// {"success": true, "data": ...} or {"success": false, "error": "..."}.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Type    string      `json:"type,omitempty"`
	Details string      `json:"details,omitempty"`
}

// MessageData is the payload of operations that only acknowledge success
type MessageData struct {
	Message string `json:"message"`
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
	})
}

// OKResponse sends a 200 response
func OKResponse(c *gin.Context, data interface{}) {
	SuccessResponse(c, http.StatusOK, data)
}

// CreatedResponse sends a created response
func CreatedResponse(c *gin.Context, data interface{}) {
	SuccessResponse(c, http.StatusCreated, data)
}

// MessageResponse sends a 200 response carrying only a message
func MessageResponse(c *gin.Context, message string) {
	OKResponse(c, MessageData{Message: message})
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   message,
	})
}

// ErrorResponseWithError sends an error response based on error type
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		c.JSON(appErr.Code, APIResponse{
			Success: false,
			Error:   appErr.Message,
			Type:    string(appErr.Type),
			Details: appErr.Details,
		})
		return
	}

	// Non-AppErrors never expose internal details
	c.JSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Error:   constants.ErrMsgInternalServerError,
		Type:    string(errors.ErrorTypeInternal),
	})
}

// AbortWithError writes the error envelope and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	ErrorResponseWithError(c, err)
	c.Abort()
}
