package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/auth"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

// Register creates a patient account. Doctors are provisioned by
// admins, never through self-registration.
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	account, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(account))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(token))
}

// Logout is a no-op on the server: tokens are stateless and expire on
// their own. The endpoint exists so clients have a uniform flow.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, &handler.Response{
		Status:  "success",
		Message: "logged out",
	})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", authMW, h.Logout)
	}
}
