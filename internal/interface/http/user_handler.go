package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/yudistiraa/signup-api/internal/application"
	"github.com/yudistiraa/signup-api/pkg/response"
)

type UserHandler struct {
	Svc       *userapp.Service
	Validator *userapp.RegistrationValidator
	Logger    *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, v *userapp.RegistrationValidator, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Validator: v, Logger: logger}
}

// Register handles POST /api/1.0/users.
func (h *UserHandler) Register(c *gin.Context) {
	var req userapp.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrs, err := h.Validator.Validate(c.Request.Context(), req)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("registration validation lookup failed")
		}
		response.Message(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !fieldErrs.Empty() {
		response.ValidationErrors(c, http.StatusBadRequest, fieldErrs)
		return
	}

	if err := h.Svc.Register(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, userapp.ErrEmailInUse):
			// Lost the insert race after the pre-check passed.
			response.ValidationErrors(c, http.StatusBadRequest, &userapp.FieldErrors{Email: "Email in use"})
		case errors.Is(err, userapp.ErrEmailDelivery):
			response.Message(c, http.StatusBadGateway, "Failed to deliver email")
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("registration failed")
			}
			response.Message(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	response.Message(c, http.StatusOK, "User Created")
}

// Activate handles POST /api/1.0/users/token/:token.
func (h *UserHandler) Activate(c *gin.Context) {
	token := c.Param("token")

	if err := h.Svc.Activate(c.Request.Context(), token); err != nil {
		if !errors.Is(err, userapp.ErrActivation) && h.Logger != nil {
			h.Logger.WithError(err).Error("activation failed")
		}
		// Unknown token, already active and store failures all collapse
		// into one body; the endpoint never confirms a token exists.
		response.Message(c, http.StatusBadRequest, "Account is either active or token is invalid")
		return
	}

	response.Message(c, http.StatusOK, "Success!")
}
