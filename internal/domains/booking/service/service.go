package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/booking/event"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/booking/model/dto"
	"guesthouse/internal/domains/booking/repository"
	guestModel "guesthouse/internal/domains/guest/model"
	guestRepo "guesthouse/internal/domains/guest/repository"
	roomModel "guesthouse/internal/domains/room/model"
	roomRepo "guesthouse/internal/domains/room/repository"
	roomOfferModel "guesthouse/internal/domains/roomoffer/model"
	roomOfferService "guesthouse/internal/domains/roomoffer/service"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	"guesthouse/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	msgBookingNotFound    = "booking not found"
	msgRoomNotFound       = "room does not exist"
	msgRoomBooked         = "room is already booked for the requested dates"
	msgNoGuestProfile     = "a guest profile is required, create one first"
	msgNotYourBooking     = "you can only access your own bookings"
	msgOverCapacity       = "guests_count exceeds the room capacity"
	msgRoomUnavailable    = "room is not available for booking"
	msgNotModifiable      = "cancelled bookings cannot be modified"
	msgAlreadyCancelled   = "booking is already cancelled"
	msgOnlyPending        = "only pending bookings can be confirmed"
	msgCancelWindowShut   = "bookings can only be cancelled more than %d hours before check-in"
	msgAuthRequired       = "authentication required"
	msgDaysMustBePositive = "days must be greater than zero"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Modify(ctx context.Context, req dto.ModifyBookingRequest, id string) (dto.BookingResponse, error)
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Mine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Active(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Upcoming(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Past(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Cancelled(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	LongStays(ctx context.Context, req gDto.QueryParams, nights int) (dto.GetBookingsResponse, error)
	Recent(ctx context.Context, req gDto.QueryParams, days int) (dto.GetBookingsResponse, error)
	FutureByRoom(ctx context.Context, roomID string, req gDto.QueryParams) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	roomRepo   roomRepo.Room
	guestRepo  guestRepo.Guest
	roomOffers roomOfferService.RoomOffer
	publisher  event.Publisher
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	roomOffers roomOfferService.RoomOffer,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		guestRepo:  guestRepo,
		roomOffers: roomOffers,
		publisher:  publisher,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// Create books a room for the signed-in guest as a pending booking.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guestID, err := s.callerGuestID(ctx)
	if err != nil {
		return res, err
	}

	checkIn, checkOut, err := req.Stay()
	if err != nil {
		return res, err
	}

	room, err := s.room(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	if !room.IsAvailable {
		return res, failure.BadRequestFromString(msgRoomUnavailable)
	}

	if !room.Fits(req.GuestsCount) {
		return res, failure.BadRequestFromString(msgOverCapacity)
	}

	total, err := s.totalPrice(ctx, room, checkIn, checkOut)
	if err != nil {
		return res, err
	}

	booking := req.ToModel(guestID, shared.Actor(ctx), checkIn, checkOut, total)

	err = s.repo.WithRoomLock(ctx, room.ID, func(tx *sqlx.Tx) error {
		if err := s.ensureFree(ctx, tx, booking); err != nil {
			return err
		}

		return s.repo.InsertTx(ctx, tx, booking)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, failure.FromPQ(fmt.Errorf("failed to create booking: %w", err), msgRoomBooked)
	}

	booking.RoomNumber = room.RoomNumber

	s.changed(ctx, model.EventCreated, booking)
	res.FromModel(booking)

	return res, nil
}

// Modify changes the dates or guest count of the caller's own booking and reprices it.
func (s *serviceImpl) Modify(ctx context.Context, req dto.ModifyBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Modify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	guestID, err := s.callerGuestID(ctx)
	if err != nil {
		return res, err
	}

	if current.GuestID != guestID {
		return res, failure.Forbidden(msgNotYourBooking)
	}

	if !current.IsModifiable() {
		return res, failure.BadRequestFromString(msgNotModifiable)
	}

	booking, err := req.Merge(current)
	if err != nil {
		return res, err
	}

	room, err := s.room(ctx, booking.RoomID)
	if err != nil {
		return res, err
	}

	if !room.IsAvailable {
		return res, failure.BadRequestFromString(msgRoomUnavailable)
	}

	if !room.Fits(booking.GuestsCount) {
		return res, failure.BadRequestFromString(msgOverCapacity)
	}

	if booking.TotalPrice, err = s.totalPrice(ctx, room, booking.CheckIn, booking.CheckOut); err != nil {
		return res, err
	}

	fields := map[string]any{
		model.FieldCheckIn:       booking.CheckIn,
		model.FieldCheckOut:      booking.CheckOut,
		model.FieldGuestsCount:   booking.GuestsCount,
		model.FieldTotalPrice:    booking.TotalPrice,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.Actor(ctx),
	}

	err = s.repo.WithRoomLock(ctx, booking.RoomID, func(tx *sqlx.Tx) error {
		if err := s.ensureFree(ctx, tx, booking); err != nil {
			return err
		}

		return s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to modify booking")

		return res, failure.FromPQ(fmt.Errorf("failed to modify booking: %w", err), msgRoomBooked)
	}

	s.changed(ctx, model.EventModified, booking)
	res.FromModel(booking)

	return res, nil
}

// Confirm moves a pending booking to confirmed once no other confirmed stay overlaps it.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != model.StatusPending {
		return failure.BadRequestFromString(msgOnlyPending)
	}

	err = s.repo.WithRoomLock(ctx, booking.RoomID, func(tx *sqlx.Tx) error {
		if err := s.ensureFree(ctx, tx, booking); err != nil {
			return err
		}

		return s.repo.UpdateTx(ctx, tx, s.statusFields(ctx, model.StatusConfirmed), shared.FilterByID(id, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to confirm booking")

		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	booking.Status = model.StatusConfirmed
	s.changed(ctx, model.EventConfirmed, booking)

	return nil
}

// Cancel cancels a booking of the caller, or any booking for staff, while check-in is far enough away.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorize(ctx, booking.GuestID); err != nil {
		return err
	}

	if booking.Status == model.StatusCancelled {
		return failure.BadRequestFromString(msgAlreadyCancelled)
	}

	windowHours := s.cfg.App.Booking.CancellationWindowHours
	if !booking.CanBeCancelled(timezone.Now(), time.Duration(windowHours)*time.Hour) {
		return failure.BadRequestFromString(fmt.Sprintf(msgCancelWindowShut, windowHours))
	}

	if err = s.repo.Update(ctx, s.statusFields(ctx, model.StatusCancelled), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Status = model.StatusCancelled
	s.changed(ctx, model.EventCancelled, booking)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		booking, err := s.get(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(booking)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	} else {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")
	}

	if err = s.authorize(ctx, res.GuestID); err != nil {
		return dto.BookingResponse{}, err
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.changed(ctx, model.EventDeleted, booking)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// Mine lists the bookings of the signed-in guest.
func (s *serviceImpl) Mine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	guestID, err := s.callerGuestID(ctx)
	if err != nil {
		return res, err
	}

	return s.GetAll(ctx, req, gDto.NewFilterGroup(filter, repository.OfGuest(guestID)))
}

func (s *serviceImpl) Active(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error) {
	filter := gDto.NewFilterGroup(repository.WithStatus(model.StatusConfirmed))
	filter.Add(repository.StayingOn(timezone.Today())...)

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Upcoming(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error) {
	return s.GetAll(ctx, req, gDto.NewFilterGroup(
		repository.WithStatus(model.StatusConfirmed),
		repository.ArrivingAfter(timezone.Today()),
	))
}

func (s *serviceImpl) Past(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error) {
	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.LeftBefore(timezone.Today())))
}

func (s *serviceImpl) Cancelled(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error) {
	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.WithStatus(model.StatusCancelled)))
}

func (s *serviceImpl) LongStays(ctx context.Context, req gDto.QueryParams, nights int) (res dto.GetBookingsResponse, err error) {
	if nights <= 0 {
		return res, failure.BadRequestFromString(msgDaysMustBePositive)
	}

	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.NightsAtLeast(nights)))
}

// Recent lists bookings created within the last days days.
func (s *serviceImpl) Recent(ctx context.Context, req gDto.QueryParams, days int) (res dto.GetBookingsResponse, err error) {
	if days <= 0 {
		return res, failure.BadRequestFromString(msgDaysMustBePositive)
	}

	since := timezone.Today().AddDate(0, 0, -days)

	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.CreatedSince(since)))
}

// FutureByRoom lists the not cancelled bookings of a room from today on, earliest arrival first.
func (s *serviceImpl) FutureByRoom(ctx context.Context, roomID string, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	if _, err = s.room(ctx, roomID); err != nil {
		return res, err
	}

	req.SortBy, req.SortDir = model.FieldCheckIn, gDto.SortDirAsc

	return s.GetAll(ctx, req, gDto.NewFilterGroup(
		repository.OfRoom(roomID),
		repository.NotCancelled(),
		repository.ArrivingFrom(timezone.Today()),
	))
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(msgBookingNotFound)
	}

	return booking, nil
}

func (s *serviceImpl) room(ctx context.Context, id string) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(msgRoomNotFound)
	}

	return room, nil
}

// callerGuestID resolves the guest profile of the signed-in user.
func (s *serviceImpl) callerGuestID(ctx context.Context) (string, error) {
	userID, _ := shared.UserFromContext(ctx)
	if userID == constant.Empty {
		return constant.Empty, failure.Unauthorized(msgAuthRequired)
	}

	guest, err := s.guestRepo.Get(ctx, shared.FilterByID(userID, guestModel.FieldUserID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest profile")

		return constant.Empty, fmt.Errorf("failed to get guest profile: %w", err)
	}

	if guest.ID == constant.Empty {
		return constant.Empty, failure.Forbidden(msgNoGuestProfile)
	}

	return guest.ID, nil
}

// authorize lets staff through and everyone else only to bookings of their own guest profile.
func (s *serviceImpl) authorize(ctx context.Context, ownerGuestID string) error {
	if shared.IsStaff(ctx) {
		return nil
	}

	guestID, err := s.callerGuestID(ctx)
	if err != nil {
		return err
	}

	if guestID != ownerGuestID {
		return failure.Forbidden(msgNotYourBooking)
	}

	return nil
}

// totalPrice charges every night at the room rate. With APP_BOOKING_APPLY_OFFERS the rate is first
// discounted by the best offer valid on the check-in day.
func (s *serviceImpl) totalPrice(ctx context.Context, room roomModel.Room, checkIn, checkOut time.Time) (decimal.Decimal, error) {
	rate := room.PricePerNight

	if !s.cfg.App.Booking.ApplyOffers {
		return model.TotalPrice(rate, checkIn, checkOut), nil
	}

	best, found, err := s.roomOffers.BestForRoom(ctx, room.ID, checkIn)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve room offer: %w", err)
	}

	if found {
		rate = roomOfferModel.DiscountedPrice(rate, best.DiscountPercentage)
	}

	return model.TotalPrice(rate, checkIn, checkOut), nil
}

func (s *serviceImpl) ensureFree(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error {
	taken, err := s.repo.HasOverlapTx(ctx, tx, booking.RoomID, booking.CheckIn, booking.CheckOut, booking.ID)
	if err != nil {
		return err
	}

	if taken {
		return failure.Conflict(msgRoomBooked)
	}

	return nil
}

func (s *serviceImpl) statusFields(ctx context.Context, status string) map[string]any {
	return map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.Actor(ctx),
	}
}

// changed drops every cache a booking feeds and publishes the lifecycle event.
func (s *serviceImpl) changed(ctx context.Context, eventType string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixRoom)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixReport)

		if err := s.publisher.Publish(c, model.NewEvent(eventType, booking)); err != nil {
			log.Error().Err(err).Str("event", eventType).Str("booking", booking.ID).Msg("failed to publish booking event")
		}
	}()
}
