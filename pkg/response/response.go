package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint writes.
// Data is an interface so an empty list still serializes as [].
type APIResponse struct {
	Success   bool              `json:"success"`
	Count     *int              `json:"count,omitempty"`
	Data      any               `json:"data,omitempty"`
	Webhook   string            `json:"webhook,omitempty"`
	Error     string            `json:"error,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Option adjusts a success envelope before it is written.
type Option func(*APIResponse)

// WithCount sets count, including zero.
func WithCount(n int) Option {
	return func(r *APIResponse) { r.Count = &n }
}

func WithWebhook(status string) Option {
	return func(r *APIResponse) { r.Webhook = status }
}

func Success(ctx *gin.Context, status int, data any, opts ...Option) APIResponse {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse{
		Success:   true,
		Data:      data,
		RequestID: ctx.GetString("request_id"),
		Timestamp: time.Now().UTC(),
	}
	for _, o := range opts {
		o(&resp)
	}
	ctx.JSON(status, resp)
	return resp
}

// List writes items with their count.
func List[T any](ctx *gin.Context, items []T) APIResponse {
	if items == nil {
		items = []T{}
	}
	return Success(ctx, http.StatusOK, items, WithCount(len(items)))
}

func Error(ctx *gin.Context, status int, message string, details map[string]string) APIResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse{
		Success:   false,
		Error:     message,
		Details:   details,
		RequestID: ctx.GetString("request_id"),
		Timestamp: time.Now().UTC(),
	}
	ctx.JSON(status, resp)
	return resp
}

// Abort writes an error envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string) {
	Error(ctx, status, message, nil)
	ctx.Abort()
}
