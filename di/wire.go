//go:build wireinject
// +build wireinject

package di

import (
	"yadoya/config"
	"yadoya/infras/jwt"
	"yadoya/infras/otel"
	"yadoya/infras/redis"
	"yadoya/infras/s3"
	"yadoya/internal/backup"
	"yadoya/internal/export"
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/cache"
	"yadoya/shared/metrics"
	"yadoya/transport/http"
	"yadoya/transport/http/middleware"
	"yadoya/transport/http/router"

	adminRepository "yadoya/internal/domains/admin/repository"
	adminService "yadoya/internal/domains/admin/service"
	bookingRepository "yadoya/internal/domains/booking/repository"
	bookingService "yadoya/internal/domains/booking/service"
	messageRepository "yadoya/internal/domains/message/repository"
	messageService "yadoya/internal/domains/message/service"
	newsRepository "yadoya/internal/domains/news/repository"
	newsService "yadoya/internal/domains/news/service"
	roomRepository "yadoya/internal/domains/room/repository"
	roomService "yadoya/internal/domains/room/service"
	sitecontentRepository "yadoya/internal/domains/sitecontent/repository"
	sitecontentService "yadoya/internal/domains/sitecontent/service"

	authHandler "yadoya/internal/handlers/auth"
	backupHandler "yadoya/internal/handlers/backup"
	bookingHandler "yadoya/internal/handlers/booking"
	messageHandler "yadoya/internal/handlers/message"
	newsHandler "yadoya/internal/handlers/news"
	roomHandler "yadoya/internal/handlers/room"
	sitecontentHandler "yadoya/internal/handlers/sitecontent"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	jsonstore.New,
	metrics.InitRegistry,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var messageDomain = wire.NewSet(
	messageRepository.New,
	messageService.New,
)

var newsDomain = wire.NewSet(
	newsRepository.New,
	newsService.New,
)

var sitecontentDomain = wire.NewSet(
	sitecontentRepository.New,
	sitecontentService.New,
)

var adminDomain = wire.NewSet(
	adminRepository.New,
	adminRepository.NewUsers,
	adminService.New,
)

var backupDomain = wire.NewSet(
	backup.New,
	export.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	messageDomain,
	newsDomain,
	sitecontentDomain,
	adminDomain,
	backupDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	messageHandler.New,
	newsHandler.New,
	sitecontentHandler.New,
	backupHandler.New,
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
