package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler/admin"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler/auth"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler/doctor"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler/patient"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/middleware"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
)

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	authH    *auth.Handler
	adminH   *admin.Handler
	doctorH  *doctor.Handler
	patientH *patient.Handler
	h        *handler.Handler
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimitRPS  float64
	RateBurst     int
	Timeout       time.Duration
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

func NewRouter(
	authMW *middleware.AuthMiddleware,
	authH *auth.Handler,
	adminH *admin.Handler,
	doctorH *doctor.Handler,
	patientH *patient.Handler,
	h *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine:   gin.New(),
		auth:     authMW,
		authH:    authH,
		adminH:   adminH,
		doctorH:  doctorH,
		patientH: patientH,
		h:        h,
		metrics:  initRouterMetrics(config.MetricsPrefix),
	}

	r.engine.Use(
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(config.Timeout),
		middleware.RequestID(),
	)

	r.engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(config.RateLimitRPS, config.RateBurst)
	r.engine.Use(rateLimiter.Limit())

	r.engine.Use(middleware.Validation(middleware.DefaultValidationConfig()))

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	// Public auth routes; logout requires a valid token.
	r.authH.RegisterRoutes(api, r.auth.Authenticate())

	adminGroup := api.Group("/admin")
	adminGroup.Use(r.auth.Authenticate(), r.auth.RequireRole(model.RoleAdmin))
	r.adminH.RegisterRoutes(adminGroup)

	doctorGroup := api.Group("/doctor")
	doctorGroup.Use(r.auth.Authenticate(), r.auth.RequireRole(model.RoleDoctor))
	r.doctorH.RegisterRoutes(doctorGroup)

	patientGroup := api.Group("/patient")
	patientGroup.Use(r.auth.Authenticate(), r.auth.RequireRole(model.RolePatient))
	r.patientH.RegisterRoutes(patientGroup)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
