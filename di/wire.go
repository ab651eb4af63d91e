//go:build wireinject
// +build wireinject

package di

import (
	"guesthouse/config"
	"guesthouse/infras/jwt"
	"guesthouse/infras/kafka"
	"guesthouse/infras/otel"
	"guesthouse/infras/pdf"
	"guesthouse/infras/postgres"
	"guesthouse/infras/redis"
	"guesthouse/infras/s3"
	"guesthouse/permissions"
	"guesthouse/shared/cache"
	"guesthouse/transport/http"
	"guesthouse/transport/http/middleware"
	"guesthouse/transport/http/router"

	"github.com/google/wire"

	amenityRepository "guesthouse/internal/domains/amenity/repository"
	amenityService "guesthouse/internal/domains/amenity/service"
	authService "guesthouse/internal/domains/auth/service"
	bookingEvent "guesthouse/internal/domains/booking/event"
	bookingRepository "guesthouse/internal/domains/booking/repository"
	bookingService "guesthouse/internal/domains/booking/service"
	documentRepository "guesthouse/internal/domains/document/repository"
	documentService "guesthouse/internal/domains/document/service"
	guestRepository "guesthouse/internal/domains/guest/repository"
	guestService "guesthouse/internal/domains/guest/service"
	paymentRepository "guesthouse/internal/domains/payment/repository"
	paymentService "guesthouse/internal/domains/payment/service"
	reportRepository "guesthouse/internal/domains/report/repository"
	reportService "guesthouse/internal/domains/report/service"
	reviewRepository "guesthouse/internal/domains/review/repository"
	reviewService "guesthouse/internal/domains/review/service"
	roomRepository "guesthouse/internal/domains/room/repository"
	roomService "guesthouse/internal/domains/room/service"
	roomOfferRepository "guesthouse/internal/domains/roomoffer/repository"
	roomOfferService "guesthouse/internal/domains/roomoffer/service"
	sliderRepository "guesthouse/internal/domains/slider/repository"
	sliderService "guesthouse/internal/domains/slider/service"
	specialOfferRepository "guesthouse/internal/domains/specialoffer/repository"
	specialOfferService "guesthouse/internal/domains/specialoffer/service"
	userRepository "guesthouse/internal/domains/user/repository"
	userService "guesthouse/internal/domains/user/service"

	bookingConsumer "guesthouse/internal/consumers/booking"

	amenityHandler "guesthouse/internal/handlers/amenity"
	authHandler "guesthouse/internal/handlers/auth"
	bookingHandler "guesthouse/internal/handlers/booking"
	documentHandler "guesthouse/internal/handlers/document"
	guestHandler "guesthouse/internal/handlers/guest"
	paymentHandler "guesthouse/internal/handlers/payment"
	reportHandler "guesthouse/internal/handlers/report"
	reviewHandler "guesthouse/internal/handlers/review"
	roomHandler "guesthouse/internal/handlers/room"
	roomOfferHandler "guesthouse/internal/handlers/roomoffer"
	sliderHandler "guesthouse/internal/handlers/slider"
	specialOfferHandler "guesthouse/internal/handlers/specialoffer"
	userHandler "guesthouse/internal/handlers/user"
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
	s3.New,
	kafka.New,
	pdf.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var roomDomain = wire.NewSet(
	amenityRepository.New,
	amenityService.New,
	roomRepository.New,
	roomService.New,
	roomOfferRepository.New,
	roomOfferService.New,
	specialOfferRepository.New,
	specialOfferService.New,
)

var bookingDomain = wire.NewSet(
	bookingEvent.New,
	bookingRepository.New,
	bookingService.New,
	paymentRepository.New,
	paymentService.New,
	reviewRepository.New,
	reviewService.New,
)

var contentDomain = wire.NewSet(
	sliderRepository.New,
	sliderService.New,
	documentRepository.New,
	documentService.New,
)

var reportDomain = wire.NewSet(
	reportRepository.New,
	reportService.New,
)

var domains = wire.NewSet(
	authDomain,
	guestDomain,
	roomDomain,
	bookingDomain,
	contentDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	guestHandler.New,
	amenityHandler.New,
	roomHandler.New,
	roomOfferHandler.New,
	specialOfferHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	reviewHandler.New,
	sliderHandler.New,
	documentHandler.New,
	reportHandler.New,
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

func InitializeWorker() *bookingConsumer.Consumer {
	wire.Build(
		config.Get,
		otel.New,
		redis.New,
		kafka.New,
		sharedHelpers,
		bookingConsumer.New,
	)

	return &bookingConsumer.Consumer{}
}
