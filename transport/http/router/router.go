package router

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"todos/config"
	"todos/internal/handlers/health"
	"todos/internal/handlers/todo"
	"todos/shared/constant"
	"todos/shared/failure"
	"todos/transport/http/middleware"
	"todos/transport/http/response"
)

type DomainHandlers struct {
	Health health.Handler
	Todo   todo.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(r.AppMiddleware.Recover)
	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.RateLimit())

	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	// Unmatched routes and wrong verbs keep the JSON error contract.
	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WithError(w, failure.RouteNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		if allowed := allowedMethods(r.URL.Path); allowed != "" {
			w.Header().Set(constant.RequestHeaderAllow, allowed)
		}

		response.WithMessage(w, http.StatusMethodNotAllowed, constant.ResponseErrorMethodNotAllowed)
	})

	r.DomainHandlers.Health.Router(router)
	r.DomainHandlers.Todo.Router(router)
}

var todoItemPath = regexp.MustCompile(`^/todos/[0-9]+$`)

// allowedMethods names the verbs a known resource answers to, for the Allow
// header on 405 responses.
func allowedMethods(path string) string {
	switch {
	case todoItemPath.MatchString(path):
		return "GET, PATCH, DELETE"
	case path == "/todos":
		return "GET, POST"
	case path == "/health":
		return "GET"
	}

	return ""
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		Config:         cfg,
	}
}
