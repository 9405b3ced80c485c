package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/yudistiraa/signup-api/internal/interface/http"
)

// Module wires the registration endpoints under the versioned API group:
// POST /api/1.0/users and POST /api/1.0/users/token/:token.

type Module struct {
	Handler *handlers.UserHandler
}

func New(h *handlers.UserHandler) *Module {
	return &Module{Handler: h}
}

func (m *Module) Register(rg *gin.RouterGroup) {
	v1 := rg.Group("/1.0")
	{
		v1.POST("/users", m.Handler.Register)
		v1.POST("/users/token/:token", m.Handler.Activate)
	}
}
