package router

import (
	"guesthouse/internal/handlers/amenity"
	"guesthouse/internal/handlers/auth"
	"guesthouse/internal/handlers/booking"
	"guesthouse/internal/handlers/document"
	"guesthouse/internal/handlers/guest"
	"guesthouse/internal/handlers/payment"
	"guesthouse/internal/handlers/report"
	"guesthouse/internal/handlers/review"
	"guesthouse/internal/handlers/room"
	"guesthouse/internal/handlers/roomoffer"
	"guesthouse/internal/handlers/slider"
	"guesthouse/internal/handlers/specialoffer"
	"guesthouse/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Guest        guest.Handler
	Amenity      amenity.Handler
	Room         room.Handler
	RoomOffer    roomoffer.Handler
	SpecialOffer specialoffer.Handler
	Booking      booking.Handler
	Payment      payment.Handler
	Review       review.Handler
	Slider       slider.Handler
	Document     document.Handler
	Report       report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Amenity.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.RoomOffer.Router(routerGroup)
		r.DomainHandlers.SpecialOffer.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Slider.Router(routerGroup)
		r.DomainHandlers.Document.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
