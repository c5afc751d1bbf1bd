package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/lexilearn-be/internal/api/handlers"
	"github.com/isdelr/lexilearn-be/internal/auth"
	"github.com/isdelr/lexilearn-be/internal/services"
	"github.com/isdelr/lexilearn-be/internal/speech"
	"github.com/isdelr/lexilearn-be/internal/websocket"
)

// Deps holds everything the router needs to build its handlers.
type Deps struct {
	Codec          *auth.TokenCodec
	Users          services.UserServiceProvider
	Content        services.ContentServiceProvider
	Performance    services.PerformanceServiceProvider
	Speaker        speech.Speaker
	Transcriber    speech.Transcriber
	Stats          handlers.StatsSource
	Hub            *websocket.Hub
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	gate := auth.NewGate(d.Codec)

	healthHandler := handlers.NewHealthHandler(d.Stats)
	userHandler := handlers.NewUserHandler(d.Users, d.Codec)
	contentHandler := handlers.NewContentHandler(d.Content)
	analyticsHandler := handlers.NewAnalyticsHandler(d.Performance)
	speechHandler := handlers.NewSpeechHandler(d.Speaker, d.Transcriber)
	wsHandler := handlers.NewWebSocketHandler(d.Hub, d.AllowedOrigins)

	// Public routes
	r.Get("/", healthHandler.Home)
	r.Get("/health", healthHandler.Health)
	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)
	r.Get("/content", contentHandler.GetAll)

	// Protected routes
	r.Get("/profile", gate.Protect(userHandler.GetProfile))
	r.Post("/profile", gate.Protect(userHandler.UpdateProfile))
	r.Get("/recommendations", gate.Protect(contentHandler.Recommendations))
	r.Get("/content/{id}", gate.Protect(contentHandler.Get))
	r.Post("/performance", gate.Protect(analyticsHandler.RecordPerformance))

	r.Route("/analytics/report", func(r chi.Router) {
		r.Get("/personalized", gate.Protect(analyticsHandler.PersonalizedReport))
		r.Get("/overall", gate.Protect(analyticsHandler.OverallReport))
	})
	r.Get("/api/analytics", gate.Protect(analyticsHandler.ActivityAnalytics))

	r.Post("/tts", gate.Protect(speechHandler.TextToSpeech))
	r.Post("/stt", gate.Protect(speechHandler.SpeechToText))

	// WebSocket connection endpoint
	r.Get("/ws", gate.Protect(wsHandler.Serve))

	return r
}
