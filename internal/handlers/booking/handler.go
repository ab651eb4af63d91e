package booking

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/booking/model/dto"
	"guesthouse/internal/domains/booking/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryCheckInFrom  = "check_in_from"
	queryCheckInTo    = "check_in_to"
	queryCheckOutFrom = "check_out_from"
	queryCheckOutTo   = "check_out_to"
	queryNights       = "nights"
	queryDays         = "days"
	queryMinGuests    = "min_guests"

	defaultLongStayNights = 7
	defaultRecentDays     = 7
)

var sortableColumns = []string{
	model.FieldCheckIn,
	model.FieldCheckOut,
	model.FieldTotalPrice,
	model.FieldStatus,
	model.FieldCreatedAt,
}

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/active", handler.GetActiveBookings)
		routerGroup.Get("/upcoming", handler.GetUpcomingBookings)
		routerGroup.Get("/past", handler.GetPastBookings)
		routerGroup.Get("/cancelled", handler.GetCancelledBookings)
		routerGroup.Get("/long-stays", handler.GetLongStayBookings)
		routerGroup.Get("/recent", handler.GetRecentBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.ModifyBooking)
		routerGroup.Post("/{id}/confirm", handler.ConfirmBooking)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

func listParams(r *http.Request) gDto.QueryParams {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.ApplySort(model.FieldCheckIn, gDto.SortDirDesc, sortableColumns...)

	return queryParams
}

// listFilters reads the status, room, guest and stay range filters shared by the list endpoints.
func listFilters(r *http.Request) (gDto.FilterGroup, error) {
	query := r.URL.Query()

	checkIn, err := shared.DateRangeFilters(query, model.TableName, model.FieldCheckIn, queryCheckInFrom, queryCheckInTo)
	if err != nil {
		return gDto.FilterGroup{}, err
	}

	checkOut, err := shared.DateRangeFilters(query, model.TableName, model.FieldCheckOut, queryCheckOutFrom, queryCheckOutTo)
	if err != nil {
		return gDto.FilterGroup{}, err
	}

	status := query.Get(model.FieldStatus)
	roomID := query.Get(model.FieldRoomID)
	guestID := query.Get(model.FieldGuestID)

	filterGroup := gDto.NewFilterGroup(append(checkIn, checkOut...)...)
	filterGroup.AddWhen(status != "", gDto.Filter{
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    status,
		Table:    model.TableName,
	})
	filterGroup.AddWhen(roomID != "", gDto.Filter{
		Field:    model.FieldRoomID,
		Operator: gDto.FilterOperatorEq,
		Value:    roomID,
		Table:    model.TableName,
	})
	filterGroup.AddWhen(guestID != "", gDto.Filter{
		Field:    model.FieldGuestID,
		Operator: gDto.FilterOperatorEq,
		Value:    guestID,
		Table:    model.TableName,
	})

	if value := query.Get(queryMinGuests); value != "" {
		minGuests, err := shared.ConvertStringToInt(value)
		if err != nil {
			return gDto.FilterGroup{}, err
		}

		filterGroup.Add(gDto.Filter{
			ArgName:  queryMinGuests,
			Field:    model.FieldGuestsCount,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    minGuests,
			Table:    model.TableName,
		})
	}

	return filterGroup, nil
}

func positiveParam(r *http.Request, name string, def int) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def, nil
	}

	return shared.ConvertStringToInt(value)
}

func writeBookings(w http.ResponseWriter, scope otel.Scope, res dto.GetBookingsResponse, err error) {
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Books a room for the caller's guest profile. The total price is the nightly room rate times the nights.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Created booking"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBookings retrieves all bookings based on query parameters.
// @Summary Get all bookings
// @Description Staff only. Filter by status, room, guest and stay dates.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Room ID"
// @Param status query string false "Status" Enums(pending, confirmed, cancelled)
// @Param check_in_from query string false "Check-in on or after (YYYY-MM-DD)"
// @Param check_in_to query string false "Check-in on or before (YYYY-MM-DD)"
// @Param check_out_from query string false "Check-out on or after (YYYY-MM-DD)"
// @Param check_out_to query string false "Check-out on or before (YYYY-MM-DD)"
// @Param guest_id query string false "Guest ID"
// @Param min_guests query int false "Minimum guests count"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	filterGroup, err := listFilters(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetAll(ctx, listParams(r), filterGroup)
	writeBookings(w, scope, res, err)
}

// GetMyBookings retrieves the bookings of the caller's guest profile.
// @Summary Get my bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Status" Enums(pending, confirmed, cancelled)
// @Param check_in_from query string false "Check-in on or after (YYYY-MM-DD)"
// @Param check_in_to query string false "Check-in on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	filterGroup, err := listFilters(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Mine(ctx, listParams(r), filterGroup)
	writeBookings(w, scope, res, err)
}

// GetActiveBookings lists confirmed bookings with a guest in house today.
// @Summary Active bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Router /v1/bookings/active [get]
// @Security BearerAuth
func (handler *Handler) GetActiveBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveBookings")
	defer scope.End()

	res, err := handler.service.Active(ctx, listParams(r))
	writeBookings(w, scope, res, err)
}

// GetUpcomingBookings lists confirmed bookings arriving after today.
// @Summary Upcoming bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Router /v1/bookings/upcoming [get]
// @Security BearerAuth
func (handler *Handler) GetUpcomingBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUpcomingBookings")
	defer scope.End()

	res, err := handler.service.Upcoming(ctx, listParams(r))
	writeBookings(w, scope, res, err)
}

// GetPastBookings lists bookings checked out before today.
// @Summary Past bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Router /v1/bookings/past [get]
// @Security BearerAuth
func (handler *Handler) GetPastBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPastBookings")
	defer scope.End()

	res, err := handler.service.Past(ctx, listParams(r))
	writeBookings(w, scope, res, err)
}

// GetCancelledBookings lists cancelled bookings.
// @Summary Cancelled bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Router /v1/bookings/cancelled [get]
// @Security BearerAuth
func (handler *Handler) GetCancelledBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCancelledBookings")
	defer scope.End()

	res, err := handler.service.Cancelled(ctx, listParams(r))
	writeBookings(w, scope, res, err)
}

// GetLongStayBookings lists bookings of at least the given number of nights.
// @Summary Long stay bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param nights query int false "Minimum nights" default(7)
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Router /v1/bookings/long-stays [get]
// @Security BearerAuth
func (handler *Handler) GetLongStayBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLongStayBookings")
	defer scope.End()

	nights, err := positiveParam(r, queryNights, defaultLongStayNights)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.LongStays(ctx, listParams(r), nights)
	writeBookings(w, scope, res, err)
}

// GetRecentBookings lists bookings made within the last days days.
// @Summary Recent bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param days query int false "Window in days" default(7)
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Router /v1/bookings/recent [get]
// @Security BearerAuth
func (handler *Handler) GetRecentBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRecentBookings")
	defer scope.End()

	days, err := positiveParam(r, queryDays, defaultRecentDays)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Recent(ctx, listParams(r), days)
	writeBookings(w, scope, res, err)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Guests can only read their own bookings.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// ModifyBooking changes the dates or guest count of a booking.
// @Summary Modify a booking
// @Description The price is recomputed and the new stay must not overlap another booking of the room.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ModifyBookingRequest true "Modify Booking Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Modified booking"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) ModifyBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ModifyBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.ModifyBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Modify(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to modify booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking modified successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// ConfirmBooking moves a pending booking to confirmed.
// @Summary Confirm a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking confirmed successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/confirm [post]
// @Security BearerAuth
func (handler *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmBooking")
	defer scope.End()

	if err := handler.service.Confirm(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking confirmed successfully")
}

// CancelBooking cancels a booking.
// @Summary Cancel a booking
// @Description Guests may cancel their own bookings until the cancellation window before check-in closes.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	if err := handler.service.Cancel(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking cancelled by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

// DeleteBooking deletes a booking by its ID.
// @Summary Delete a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}
