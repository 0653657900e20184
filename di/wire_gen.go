// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

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
	"stillhouse/internal/domains/auth/service"
	repository2 "stillhouse/internal/domains/event/repository"
	service2 "stillhouse/internal/domains/event/service"
	"stillhouse/internal/domains/user/repository"
	"stillhouse/internal/handlers/auth"
	"stillhouse/internal/handlers/event"
	"stillhouse/internal/handlers/inquiry"
	"stillhouse/permissions"
	"stillhouse/shared/cache"
	"stillhouse/transport/http"
	"stillhouse/transport/http/middleware"
	"stillhouse/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	user := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(user, configConfig, otelOtel, jwtJWT)
	handler := auth.New(serviceAuth, otelOtel)
	repositoryEvent := repository2.New(connection, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	kafkaClient := kafka.New(configConfig)
	metricsMetrics := metrics.New()
	pusher := calendarhook.New(configConfig, otelOtel)
	generator := briefing.New(configConfig, otelOtel)
	serviceEvent := service2.New(repositoryEvent, configConfig, redisCache, kafkaClient, metricsMetrics, pusher, generator, otelOtel)
	eventHandler := event.New(serviceEvent, otelOtel)
	inquiryHandler := inquiry.New(serviceEvent, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:    handler,
		Event:   eventHandler,
		Inquiry: inquiryHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	httpHTTP := http.New(configConfig, routerRouter, connection, appMiddleware, authRole)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get, permissions.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, kafka.New, metrics.New, calendarhook.New, briefing.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var eventDomain = wire.NewSet(repository2.New, service2.New)

var authDomain = wire.NewSet(repository.New, service.New)

var domains = wire.NewSet(
	eventDomain,
	authDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), event.New, inquiry.New, auth.New, router.New)
