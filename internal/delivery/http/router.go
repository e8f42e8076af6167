package http

import (
	"net/http"

	"github.com/frontandrew/weighbridge/internal/delivery/http/middleware"
	"github.com/frontandrew/weighbridge/internal/domain"
	"github.com/frontandrew/weighbridge/internal/pkg/config"
	"github.com/frontandrew/weighbridge/internal/pkg/jwt"
	"github.com/frontandrew/weighbridge/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	tripHandler  *TripHandler
	fleetHandler *FleetHandler
	authHandler  *AuthHandler
	tokenService *jwt.TokenService
	config       *config.Config
	logger       logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(
	tripHandler *TripHandler,
	fleetHandler *FleetHandler,
	authHandler *AuthHandler,
	tokenService *jwt.TokenService,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		tripHandler:  tripHandler,
		fleetHandler: fleetHandler,
		authHandler:  authHandler,
		tokenService: tokenService,
		config:       config,
		logger:       logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
	}))

	// Health check endpoint (публичный)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (без аутентификации)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.authHandler.Register)
			r.Post("/login", rt.authHandler.Login)
			r.Post("/refresh", rt.authHandler.Refresh)
		})

		// Protected routes (требуют аутентификации)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(rt.tokenService))

			r.Get("/auth/me", rt.authHandler.GetMe)

			// Trip endpoints: чтение - любой аутентифицированный,
			// мутации - только роли с доступом к весовой
			r.Route("/trips", func(r chi.Router) {
				r.Get("/", rt.tripHandler.ListTrips)
				r.Get("/{id}", rt.tripHandler.GetTrip)
				r.Get("/vehicle/{vehicleNo}", rt.tripHandler.FindOpenTripByVehicle)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleOperator, domain.RoleSupervisor))
					r.Post("/", rt.tripHandler.OpenTrip)
					r.Post("/{id}/weigh-in", rt.tripHandler.RecordFirstWeighment)
					r.Post("/{id}/weigh-out", rt.tripHandler.RecordSecondWeighment)
					r.Post("/{id}/gate-out", rt.tripHandler.GateOut)
					r.Post("/{id}/cancel", rt.tripHandler.CancelTrip)
				})
			})

			// Fleet endpoints: справочники правит только администратор
			r.Route("/vehicles", func(r chi.Router) {
				r.Get("/", rt.fleetHandler.ListVehicles)
				r.Get("/{id}", rt.fleetHandler.GetVehicleByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.RoleAdmin))
					r.Post("/", rt.fleetHandler.CreateVehicle)
				})
			})

			r.Route("/transporters", func(r chi.Router) {
				r.Get("/", rt.fleetHandler.ListTransporters)
				r.Get("/{id}", rt.fleetHandler.GetTransporterByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.RoleAdmin))
					r.Post("/", rt.fleetHandler.CreateTransporter)
				})
			})
		})
	})

	return r
}
