//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"quickgig/config"
	"quickgig/infras/jwt"
	"quickgig/infras/kafka"
	"quickgig/infras/otel"
	"quickgig/infras/postgres"
	"quickgig/infras/redis"
	"quickgig/internal/events"
	"quickgig/shared/cache"
	"quickgig/transport/http"
	"quickgig/transport/http/middleware"
	"quickgig/transport/http/router"

	bookingRepository "quickgig/internal/domains/booking/repository"
	bookingService "quickgig/internal/domains/booking/service"
	catalogRepository "quickgig/internal/domains/catalog/repository"
	catalogService "quickgig/internal/domains/catalog/service"
	slotRepository "quickgig/internal/domains/slot/repository"
	slotService "quickgig/internal/domains/slot/service"

	bookingHandler "quickgig/internal/handlers/booking"
	catalogHandler "quickgig/internal/handlers/catalog"
	slotHandler "quickgig/internal/handlers/slot"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var eventPublishers = wire.NewSet(
	events.NewPublisher,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var slotDomain = wire.NewSet(
	slotRepository.New,
	slotService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	wire.Bind(new(bookingService.Transactioner), new(*postgres.Connection)),
)

var domains = wire.NewSet(
	catalogDomain,
	slotDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	slotHandler.New,
	bookingHandler.New,
	catalogHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		eventPublishers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
