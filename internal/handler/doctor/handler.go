package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/middleware"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/appointment"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/doctor"
	apperrors "github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/errors"
)

type Handler struct {
	doctors      *doctor.Service
	appointments *appointment.Service
}

func NewHandler(doctors *doctor.Service, appointments *appointment.Service) *Handler {
	return &Handler{doctors: doctors, appointments: appointments}
}

// Dashboard lists every appointment assigned to the logged-in doctor,
// oldest first.
func (h *Handler) Dashboard(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		handler.Error(c, apperrors.AccessDenied())
		return
	}

	doc, err := h.doctors.GetByAccount(c.Request.Context(), actor.AccountID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	appointments, err := h.appointments.ListForDoctor(c.Request.Context(), doc.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"doctor":       doc,
		"appointments": appointments,
	}))
}

// CompleteAppointment marks the appointment Completed and records the
// treatment. Repeat completions overwrite the existing treatment.
func (h *Handler) CompleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	actor, _ := middleware.ActorFrom(c)
	treatment, err := h.appointments.Complete(c.Request.Context(), id, &req, actor)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(treatment))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Dashboard)
	r.POST("/appointments/:id/complete", h.CompleteAppointment)
}
