package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/isdelr/mesto-api/internal/api/handlers"
	"github.com/isdelr/mesto-api/internal/api/render"
	"github.com/isdelr/mesto-api/internal/apperr"
	"github.com/isdelr/mesto-api/internal/auth"
	"github.com/isdelr/mesto-api/internal/logger"
	"github.com/isdelr/mesto-api/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	allowedOrigins []string,
	tokens auth.TokenVerifier,
	userService services.UserServiceProvider,
	cardService services.CardServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Registered first so mounted subrouters inherit them.
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	cardHandler := handlers.NewCardHandler(cardService)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"message": "Mesto API server is running"})
	})

	r.Post("/signup", userHandler.Register)
	r.Post("/signin", userHandler.Login)

	// Auth is attached per route so unmatched paths still reach NotFound.
	authn := auth.JWTMiddleware(tokens, render.Error)

	r.Route("/users", func(r chi.Router) {
		r.With(authn).Get("/", userHandler.GetAll)
		r.With(authn).Get("/me", userHandler.GetMe)
		r.With(authn).Patch("/me", userHandler.UpdateProfile)
		r.With(authn).Patch("/me/avatar", userHandler.UpdateAvatar)
		r.With(authn).Get("/{userId}", userHandler.Get)
	})

	r.Route("/cards", func(r chi.Router) {
		r.With(authn).Get("/", cardHandler.GetAll)
		r.With(authn).Post("/", cardHandler.Create)
		r.With(authn).Delete("/{cardId}", cardHandler.Delete)
		r.With(authn).Put("/{cardId}/likes", cardHandler.Like)
		r.With(authn).Delete("/{cardId}/likes", cardHandler.Dislike)
	})

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusNotFound, render.ErrorResponse{Message: apperr.MsgNotFound})
}
