package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartclinic/clinic-system/internal/api/handler"
	"github.com/smartclinic/clinic-system/internal/api/middleware"
	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/service"
	clinicmongo "github.com/smartclinic/clinic-system/internal/infrastructure/db/mongo"
	clinicredis "github.com/smartclinic/clinic-system/internal/infrastructure/db/redis"
	"github.com/smartclinic/clinic-system/internal/infrastructure/queue"
	"github.com/smartclinic/clinic-system/pkg/logger"
)

const (
	tokenTTL   = 24 * time.Hour
	sessionTTL = 24 * time.Hour
)

// NewRouter builds and returns the Echo instance with all routes
// registered, plus the event dispatcher (started by the caller).
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string) (*echo.Echo, *queue.Dispatcher) {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("clinic"))

	// --- Repositories ---
	accounts := clinicmongo.NewAccountRepository(db)
	doctors := clinicmongo.NewDoctorRepository(db)
	patients := clinicmongo.NewPatientRepository(db)
	appointments := clinicmongo.NewAppointmentRepository(db)
	prescriptions := clinicmongo.NewPrescriptionRepository(db)

	// --- Infrastructure ---
	sessions := clinicredis.NewSessionCache(rdb, sessionTTL)
	dedup := clinicredis.NewDedupChecker(rdb)
	csrf := middleware.NewCSRFIssuer(jwtSecret)

	// --- Services ---
	authService := service.NewAuthService(accounts, patients, jwtSecret, tokenTTL)
	doctorService := service.NewDoctorService(doctors, appointments, log)
	patientService := service.NewPatientService(patients, appointments, doctors)
	appointmentService := service.NewAppointmentService(appointments, doctors, patients, log)
	prescriptionService := service.NewPrescriptionService(prescriptions, appointments, patients)
	eventService := service.NewAppointmentEventService(appointments, dedup, log)
	dispatcher := queue.NewDispatcher(0, eventService, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, sessions, csrf)
	doctorHandler := handler.NewDoctorHandler(doctorService)
	patientHandler := handler.NewPatientHandler(patientService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionService)
	eventHandler := handler.NewEventHandler(dispatcher)

	auth := middleware.Auth(jwtSecret, sessions)
	adminOnly := middleware.RBAC(string(domain.RoleAdmin))
	doctorOnly := middleware.RBAC(string(domain.RoleDoctor))
	patientOnly := middleware.RBAC(string(domain.RolePatient))
	staffOnly := middleware.RBAC(string(domain.RoleAdmin), string(domain.RoleDoctor))
	requireCSRF := middleware.CSRF(csrf)

	// --- Auth routes ---
	e.GET("/csrf", authHandler.CSRFToken)
	e.POST("/auth/admin/login", authHandler.AdminLogin, requireCSRF)
	e.POST("/auth/doctor/login", authHandler.DoctorLogin, requireCSRF)
	e.POST("/auth/patient/login", authHandler.PatientLogin, requireCSRF)
	e.POST("/auth/patient/register", authHandler.RegisterPatient, requireCSRF)
	e.POST("/auth/logout", authHandler.Logout, auth)

	// --- Doctor routes ---
	e.GET("/doctors", doctorHandler.List)
	e.GET("/doctors/:id", doctorHandler.Get)
	e.GET("/doctors/:id/availability", doctorHandler.Availability)
	e.POST("/doctors", doctorHandler.Create, auth, adminOnly)
	e.PUT("/doctors/:id", doctorHandler.Update, auth, adminOnly)
	e.DELETE("/doctors/:id", doctorHandler.Delete, auth, adminOnly)

	// --- Patient routes ---
	e.GET("/patients/me", patientHandler.Me, auth, patientOnly)
	e.GET("/patients/me/appointments", patientHandler.Appointments, auth, patientOnly)

	// --- Appointment routes ---
	e.POST("/appointments", appointmentHandler.Book, auth, patientOnly)
	e.PUT("/appointments/:id", appointmentHandler.Reschedule, auth, patientOnly)
	e.DELETE("/appointments/:id", appointmentHandler.Cancel, auth, patientOnly)
	e.GET("/appointments", appointmentHandler.ForDoctor, auth, doctorOnly)

	// --- Prescription routes ---
	e.POST("/prescriptions", prescriptionHandler.Save, auth, doctorOnly)
	e.GET("/appointments/:id/prescriptions", prescriptionHandler.ForAppointment, auth, doctorOnly)

	// --- Event ingestion (staff systems only) ---
	e.POST("/events", eventHandler.Receive, auth, staffOnly)
	e.POST("/events/batch", eventHandler.ReceiveBatch, auth, staffOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, dispatcher
}
