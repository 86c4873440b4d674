package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/middleware"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/appointment"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/audit"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/doctor"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/patient"
)

type Handler struct {
	doctors      *doctor.Service
	patients     *patient.Service
	appointments *appointment.Service
	auditor      *audit.Service
}

func NewHandler(doctors *doctor.Service, patients *patient.Service, appointments *appointment.Service, auditor *audit.Service) *Handler {
	return &Handler{
		doctors:      doctors,
		patients:     patients,
		appointments: appointments,
		auditor:      auditor,
	}
}

// Dashboard returns platform totals plus the full doctor directory.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	doctorCount, err := h.doctors.Count(ctx)
	if err != nil {
		handler.Error(c, err)
		return
	}
	patientCount, err := h.patients.Count(ctx)
	if err != nil {
		handler.Error(c, err)
		return
	}
	appointmentCount, err := h.appointments.Count(ctx)
	if err != nil {
		handler.Error(c, err)
		return
	}
	doctors, err := h.doctors.List(ctx)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(&model.AdminDashboard{
		TotalDoctors:      doctorCount,
		TotalPatients:     patientCount,
		TotalAppointments: appointmentCount,
		Doctors:           doctors,
	}))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.doctors.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	actor, _ := middleware.ActorFrom(c)
	doc, err := h.doctors.Create(c.Request.Context(), &req, actor)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doc))
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	actor, _ := middleware.ActorFrom(c)
	doc, err := h.doctors.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doc))
}

// DeleteDoctor removes the doctor and its login account together.
func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	actor, _ := middleware.ActorFrom(c)
	if err := h.doctors.Delete(c.Request.Context(), id, actor); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{Status: "success", Message: "doctor deleted"})
}

// AccountAudit returns the most recent audit entries for one account.
func (h *Handler) AccountAudit(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid account ID"))
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.auditor.ListForAccount(c.Request.Context(), accountID, limit)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Dashboard)
	r.GET("/audit/:id", h.AccountAudit)

	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.ListDoctors)
		doctors.POST("", h.CreateDoctor)
		doctors.PUT("/:id", h.UpdateDoctor)
		doctors.DELETE("/:id", h.DeleteDoctor)
	}
}
