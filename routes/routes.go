package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/matchdaylab/finalday/handlers"
)

func InitRoutes(scheduleHandler *handlers.ScheduleHandler) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/tournaments/{tournamentID}/final-day", func(r chi.Router) {
		r.Get("/matches", scheduleHandler.List)
		r.Post("/schedule", scheduleHandler.Regenerate)
		r.Post("/resolve", scheduleHandler.Resolve)
	})

	return router
}
