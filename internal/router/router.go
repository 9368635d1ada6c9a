// Package router assembles the HTTP surface: middleware chain, versioned
// API routes and the system endpoints.
package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayursutra/clinic-api/internal/handler"
	appointmenthandler "github.com/ayursutra/clinic-api/internal/handler/appointment"
	authhandler "github.com/ayursutra/clinic-api/internal/handler/auth"
	patienthandler "github.com/ayursutra/clinic-api/internal/handler/patient"
	practitionerhandler "github.com/ayursutra/clinic-api/internal/handler/practitioner"
	resourcehandler "github.com/ayursutra/clinic-api/internal/handler/resource"
	treatmenthandler "github.com/ayursutra/clinic-api/internal/handler/treatment"
	"github.com/ayursutra/clinic-api/internal/middleware"
	"github.com/ayursutra/clinic-api/internal/model"
	"github.com/ayursutra/clinic-api/pkg/logger"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clinic_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

// Handlers carries everything the router mounts.
type Handlers struct {
	System       *handler.SystemHandler
	Auth         *authhandler.Handler
	Appointment  *appointmenthandler.Handler
	Practitioner *practitionerhandler.Handler
	Patient      *patienthandler.Handler
	Treatment    *treatmenthandler.Handler
	Resource     *resourcehandler.Handler
}

type Options struct {
	Log            *logger.Logger
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
}

func Setup(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(metricsMiddleware())
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware())
	}

	r.GET("/health/live", h.System.Health)
	r.GET("/health/ready", h.System.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	authed := v1.Group("")
	authed.Use(opts.AuthMiddleware.Authenticate())
	{
		cached := middleware.CacheControl(30 * time.Second)
		authed.GET("/treatments", cached, h.Treatment.List)
		authed.GET("/treatments/:id", cached, h.Treatment.Get)
		authed.GET("/resources", cached, h.Resource.List)
		authed.GET("/resources/:id", cached, h.Resource.Get)
		authed.GET("/practitioners", cached, h.Practitioner.List)

		staff := authed.Group("")
		staff.Use(middleware.RequireRoles(model.RolePractitioner, model.RoleAdmin))
		{
			staff.POST("/appointments", h.Appointment.Create)
			staff.GET("/appointments", h.Appointment.List)
			staff.PATCH("/appointments/:id/status", h.Appointment.UpdateStatus)
		}

		authed.GET("/practitioners/:id/dashboard", cached, h.Practitioner.Dashboard)

		patients := authed.Group("/patients")
		{
			patients.GET("/:id/dashboard", cached, h.Patient.Dashboard)
			patients.GET("/:id/appointments", h.Patient.Appointments)
			// No role guard: the booking engine turns non-patient callers
			// into role-specific errors rather than a blanket 403.
			patients.POST("/me/appointments", h.Patient.RequestAppointment)
		}
	}

	return r
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
