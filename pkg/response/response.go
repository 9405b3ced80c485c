package response

import (
	"github.com/gin-gonic/gin"
)

// The wire format is fixed by the public API contract: success and
// failure bodies carry a bare "message", field validation failures
// carry a "validationErrors" object keyed by field name.

type MessageBody struct {
	Message string `json:"message"`
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageBody{Message: message})
}

func ValidationErrors(c *gin.Context, status int, errs any) {
	c.JSON(status, gin.H{"validationErrors": errs})
}
