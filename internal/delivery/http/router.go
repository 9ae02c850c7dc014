package http

import (
	"net/http"

	"bsdoc-server/internal/delivery/http/handler"
	"bsdoc-server/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	verificationHandler *handler.VerificationHandler
	doctorHandler       *handler.DoctorHandler
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	verificationHandler *handler.VerificationHandler,
	doctorHandler *handler.DoctorHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	notificationHandler *handler.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		verificationHandler: verificationHandler,
		doctorHandler:       doctorHandler,
		availabilityHandler: availabilityHandler,
		appointmentHandler:  appointmentHandler,
		notificationHandler: notificationHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor registration (public, multipart with proof document)
	api.HandleFunc("/doctors/registration", r.verificationHandler.Submit).Methods(http.MethodPost)

	// Doctor directory (public)
	api.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.Get).Methods(http.MethodGet)

	// Slot lookup (public)
	api.HandleFunc("/availability/{doctorId}", r.availabilityHandler.GetSlots).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctor-verifications", r.verificationHandler.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/doctor-verifications/{id}/approve", r.verificationHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/doctor-verifications/{id}/reject", r.verificationHandler.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/profile", r.doctorHandler.UpdateProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/availability", r.availabilityHandler.Create).Methods(http.MethodPost)
	doctor.HandleFunc("/availability", r.availabilityHandler.List).Methods(http.MethodGet)
	doctor.HandleFunc("/availability/{id}", r.availabilityHandler.Update).Methods(http.MethodPut)
	doctor.HandleFunc("/availability/{id}", r.availabilityHandler.Delete).Methods(http.MethodDelete)
	doctor.HandleFunc("/appointments", r.appointmentHandler.ListForDoctor).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.Complete).Methods(http.MethodPatch)

	// Appointment routes (protected)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.ListMine).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}/hide", r.appointmentHandler.Hide).Methods(http.MethodPatch)

	// Notification routes (protected)
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.List).Methods(http.MethodGet)
	notifications.HandleFunc("/read", r.notificationHandler.MarkRead).Methods(http.MethodPatch)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
