package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotentReplayed marks an order reply answered from a previous
// submission with the same Idempotency-Key.
const HeaderIdempotentReplayed = "Idempotent-Replayed"

// FieldResponse is the reply of a registration field read. Data is null
// while the field has not been filled.
type FieldResponse struct {
	Data *string `json:"data" example:"alice@example.com"`
}

// text writes a 200 plain-text confirmation.
func text(c *gin.Context, msg string) error {
	c.String(http.StatusOK, msg)
	return nil
}

// done acknowledges a request whose only effect is a cookie.
func done(c *gin.Context) error {
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	return nil
}

// image writes raw image bytes with a sniffed content type.
func image(c *gin.Context, data []byte) error {
	c.Data(http.StatusOK, http.DetectContentType(data), data)
	return nil
}
