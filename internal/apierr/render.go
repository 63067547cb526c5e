package apierr

import "github.com/gin-gonic/gin"

// Envelope is the JSON body written for every classified error.
type Envelope struct {
	// Mirrors the HTTP status line
	Status int `json:"status" example:"401"`
	// Stable, machine-readable kind
	Type Kind `json:"type" example:"SessionExpired"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"session expired"`
	// Optional structured detail, e.g. {"field":"email"} or {"cookie":"USSID"}
	Data any `json:"data" swaggertype:"object"`
}

// Envelope renders the client-visible form of e. Internal errors always
// render the fixed kind and message regardless of their cause.
func (e *Error) Envelope() Envelope {
	if e.IsInternal() {
		return Envelope{Status: e.Status, Type: KindInternal, Message: InternalMessage}
	}
	return Envelope{Status: e.Status, Type: e.Kind, Message: e.Message, Data: e.Data}
}

// Write aborts the request with the envelope of e.
func Write(c *gin.Context, e *Error) {
	env := e.Envelope()
	c.AbortWithStatusJSON(env.Status, env)
}
