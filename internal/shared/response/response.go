package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope:
//
//	{ "success": bool, "message": string, ...payload }
//
// Error responses may additionally carry an "error" field with upstream
// detail, only when the app runs in debug mode.

var debugMode bool

// Init sets whether error envelopes expose upstream error detail.
// Called once at startup from the APP_DEBUG flag.
func Init(debug bool) {
	debugMode = debug
}

// Success writes the envelope with extra payload keys merged in
func Success(c *gin.Context, statusCode int, message string, payload gin.H) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Error writes a failure envelope. err detail is only exposed in debug mode.
func Error(c *gin.Context, statusCode int, message string, err error) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil && debugMode {
		body["error"] = err.Error()
	}
	c.JSON(statusCode, body)
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message, nil)
}

func InternalServerError(c *gin.Context, message string, err error) {
	Error(c, http.StatusInternalServerError, message, err)
}
