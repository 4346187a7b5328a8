package httptransport

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
)

// ErrorBody is the uniform failure payload. Handlers never leak internal
// error chains through it, only a caller-facing message.
type ErrorBody struct {
	Error string `json:"error"`
}

// APIResponse is the envelope used by the operational endpoints. Analysis
// results are returned bare instead; their shape is the caller contract.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
}

// WriteJSON serialises v with sonic and writes it with the given status.
// Falls back to a plain 500 if serialisation itself fails.
func WriteJSON(c *gin.Context, httpStatus int, v interface{}) {
	payload, err := sonic.Marshal(v)
	if err != nil {
		c.Data(http.StatusInternalServerError, "application/json; charset=utf-8",
			[]byte(`{"error":"response serialization failed"}`))
		return
	}
	c.Data(httpStatus, "application/json; charset=utf-8", payload)
}

// RespondError writes the uniform {"error": message} failure body.
func RespondError(c *gin.Context, httpStatus int, message string) {
	WriteJSON(c, httpStatus, ErrorBody{Error: message})
}

// RespondSuccess writes an enveloped success response.
func RespondSuccess(c *gin.Context, httpStatus int, data interface{}, message string) {
	if message == "" {
		message = "ok"
	}
	WriteJSON(c, httpStatus, APIResponse{
		Success: true,
		Message: message,
		Code:    httpStatus,
		Data:    data,
	})
}
