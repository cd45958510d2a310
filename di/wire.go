//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"todos/config"
	"todos/infras/otel"
	"todos/infras/redis"
	todoRepository "todos/internal/domains/todo/repository"
	todoService "todos/internal/domains/todo/service"
	healthHandler "todos/internal/handlers/health"
	todoHandler "todos/internal/handlers/todo"
	"todos/shared/cache"
	"todos/transport/http"
	"todos/transport/http/middleware"
	"todos/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoService.New,
)

var domains = wire.NewSet(
	todoDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	todoHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
