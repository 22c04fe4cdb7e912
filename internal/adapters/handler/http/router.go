package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vncsmyrnk/pollview/internal/core/services"
)

func NewHandler(authHandler *AuthHandler, pollHandler *PollHandler, marker *services.ContinuityMarker) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(markNavigation(marker))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/session", authHandler.Session)

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.Post("/", pollHandler.CreatePoll)
			r.Post("/{id}/vote", pollHandler.Vote)
			r.Put("/{id}/expand", pollHandler.SetExpanded)
		})

		r.Get("/leaderboard", pollHandler.Leaderboard)
	})

	return r
}

// markNavigation records each request as an in-app navigation event. A fresh
// process starts unmarked, so a restored identity without any prior request
// in this process is force-logged-out by the session controller.
func markNavigation(marker *services.ContinuityMarker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			marker.Mark()
		})
	}
}
