package patient

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/middleware"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/appointment"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/doctor"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/patient"
	apperrors "github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/errors"
)

type Handler struct {
	patients     *patient.Service
	doctors      *doctor.Service
	appointments *appointment.Service
}

func NewHandler(patients *patient.Service, doctors *doctor.Service, appointments *appointment.Service) *Handler {
	return &Handler{
		patients:     patients,
		doctors:      doctors,
		appointments: appointments,
	}
}

func (h *Handler) profile(c *gin.Context) (*model.Patient, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return nil, apperrors.AccessDenied()
	}
	return h.patients.GetByAccount(c.Request.Context(), actor.AccountID)
}

// Dashboard returns the doctor directory alongside the patient's own
// appointments, oldest first.
func (h *Handler) Dashboard(c *gin.Context) {
	p, err := h.profile(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	doctors, err := h.doctors.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	appointments, err := h.appointments.ListForPatient(c.Request.Context(), p.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"patient":      p,
		"doctors":      doctors,
		"appointments": appointments,
	}))
}

// History lists the patient's appointments newest first.
func (h *Handler) History(c *gin.Context) {
	p, err := h.profile(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	appointments, err := h.appointments.History(c.Request.Context(), p.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

// BookAppointment reserves a slot with the given doctor. The time field
// is an opaque label; only the date is parsed.
func (h *Handler) BookAppointment(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		handler.Error(c, apperrors.BadRequest("invalid date, expected YYYY-MM-DD", err))
		return
	}

	p, err := h.profile(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	apt, err := h.appointments.Book(c.Request.Context(), doctorID, p.ID, date, req.Time)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	actor, _ := middleware.ActorFrom(c)
	apt, err := h.appointments.Cancel(c.Request.Context(), id, actor)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Dashboard)
	r.GET("/history", h.History)
	r.POST("/doctors/:id/book", h.BookAppointment)
	r.POST("/appointments/:id/cancel", h.CancelAppointment)
}
