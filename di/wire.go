//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"stillhouse/config"
	"stillhouse/infras/briefing"
	"stillhouse/infras/calendarhook"
	"stillhouse/infras/jwt"
	"stillhouse/infras/kafka"
	"stillhouse/infras/metrics"
	"stillhouse/infras/otel"
	"stillhouse/infras/postgres"
	"stillhouse/infras/redis"
	"stillhouse/permissions"
	"stillhouse/shared/cache"
	"stillhouse/transport/http"
	"stillhouse/transport/http/middleware"
	"stillhouse/transport/http/router"

	authService "stillhouse/internal/domains/auth/service"
	eventRepository "stillhouse/internal/domains/event/repository"
	eventService "stillhouse/internal/domains/event/service"
	userRepository "stillhouse/internal/domains/user/repository"
	authHandler "stillhouse/internal/handlers/auth"
	eventHandler "stillhouse/internal/handlers/event"
	inquiryHandler "stillhouse/internal/handlers/inquiry"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	metrics.New,
	calendarhook.New,
	briefing.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var eventDomain = wire.NewSet(
	eventRepository.New,
	eventService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	eventDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	eventHandler.New,
	inquiryHandler.New,
	authHandler.New,
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
