package room

import (
	"mime/multipart"
	"net/http"
	"strings"

	"guesthouse/infras/otel"
	amenityDto "guesthouse/internal/domains/amenity/model/dto"
	amenityService "guesthouse/internal/domains/amenity/service"
	bookingService "guesthouse/internal/domains/booking/service"
	reviewDto "guesthouse/internal/domains/review/model/dto"
	reviewService "guesthouse/internal/domains/review/service"
	"guesthouse/internal/domains/room/model"
	"guesthouse/internal/domains/room/model/dto"
	"guesthouse/internal/domains/room/repository"
	"guesthouse/internal/domains/room/service"
	roomOfferService "guesthouse/internal/domains/roomoffer/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	queryCheckIn      = "check_in"
	queryCheckOut     = "check_out"
	queryMinPrice     = "min_price"
	queryMaxPrice     = "max_price"
	queryMinOccupancy = "min_occupancy"
	queryMinBookings  = "min_bookings"
	queryMinRating    = "min_rating"
	queryDays         = "days"
	queryAmenity      = "amenity"
	queryMinDiscount  = "min_discount"
	queryMaxDiscount  = "max_discount"
	queryDate         = "date"
	querySort         = "sort"

	formPhoto     = "photo"
	formFloorPlan = "floor_plan"

	defaultLuxuryPrice = 5000
	defaultBudgetPrice = 2000
	defaultMinBookings = 5
	defaultMinRating   = "4.0"
	defaultLongStay    = 7
	maxDiscount        = 100
)

var sortableColumns = []string{
	model.FieldRoomNumber,
	model.FieldRoomType,
	model.FieldPricePerNight,
	model.FieldMaxOccupancy,
	constant.FieldCreatedAt,
}

type Handler struct {
	service    service.Room
	reviews    reviewService.Review
	amenities  amenityService.Amenity
	roomOffers roomOfferService.RoomOffer
	bookings   bookingService.Booking
	otel       otel.Otel
}

func New(
	service service.Room,
	reviews reviewService.Review,
	amenities amenityService.Amenity,
	roomOffers roomOfferService.RoomOffer,
	bookings bookingService.Booking,
	otel otel.Otel,
) Handler {
	return Handler{
		service:    service,
		reviews:    reviews,
		amenities:  amenities,
		roomOffers: roomOffers,
		bookings:   bookings,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/available", handler.GetAvailableRooms)
		routerGroup.Get("/luxury", handler.GetLuxuryRooms)
		routerGroup.Get("/budget", handler.GetBudgetRooms)
		routerGroup.Get("/popular", handler.GetPopularRooms)
		routerGroup.Get("/top-rated", handler.GetTopRatedRooms)
		routerGroup.Get("/long-stay", handler.GetLongStayRooms)
		routerGroup.Get("/without-reviews", handler.GetRoomsWithoutReviews)
		routerGroup.Get("/with-amenities", handler.GetRoomsWithAmenities)
		routerGroup.Get("/with-offers", handler.GetRoomsWithOffers)
		routerGroup.Get("/by-discount", handler.GetRoomsByDiscount)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
		routerGroup.Get("/{id}/pricing", handler.GetRoomPricing)
		routerGroup.Get("/{id}/reviews", handler.GetRoomReviews)
		routerGroup.Get("/{id}/amenities", handler.GetRoomAmenities)
		routerGroup.Put("/{id}/amenities", handler.SetRoomAmenities)
		routerGroup.Get("/{id}/offers", handler.GetRoomOffers)
		routerGroup.Get("/{id}/bookings", handler.GetRoomFutureBookings)
	})
}

func listParams(r *http.Request) gDto.QueryParams {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.ApplySort(model.FieldRoomNumber, gDto.SortDirAsc, sortableColumns...)

	return queryParams
}

// decimalParam reads a decimal query value, falling back to def when absent.
func decimalParam(r *http.Request, name string, def decimal.Decimal) (decimal.Decimal, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def, nil
	}

	return shared.ConvertStringToDecimal(value)
}

func intParam(r *http.Request, name string, def int) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def, nil
	}

	return shared.ConvertStringToInt(value)
}

// writeRooms finishes every list endpoint of the handler.
func writeRooms(w http.ResponseWriter, scope otel.Scope, res dto.GetRoomsResponse, err error) {
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func attachFile(r *http.Request, field string) (*multipart.FileHeader, multipart.File) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil
	}

	return header, file
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a room. Photo and floor plan are uploaded to object storage.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param room_number formData string true "Room number"
// @Param room_type formData string true "Room type"
// @Param price_per_night formData number true "Price per night"
// @Param max_occupancy formData integer true "Maximum occupancy"
// @Param is_available formData boolean false "Bookable flag"
// @Param photo formData file false "Room photo"
// @Param floor_plan formData file false "Floor plan"
// @Success 201 {object} response.Data[dto.RoomResponse] "Created room"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.CreateRoomRequest{
		RoomNumber:  r.FormValue(model.FieldRoomNumber),
		RoomType:    r.FormValue(model.FieldRoomType),
		IsAvailable: shared.ConvertStringToBool(r.FormValue(model.FieldIsAvailable)),
	}

	if value := r.FormValue(model.FieldPricePerNight); value != "" {
		price, err := shared.ConvertStringToDecimal(value)
		if err != nil {
			response.WithError(w, err)

			return
		}

		req.PricePerNight = &price
	}

	if value := r.FormValue(model.FieldMaxOccupancy); value != "" {
		occupancy, err := shared.ConvertStringToInt(value)
		if err != nil {
			response.WithError(w, err)

			return
		}

		req.MaxOccupancy = occupancy
	}

	req.Photo, req.PhotoFile = attachFile(r, formPhoto)
	if req.PhotoFile != nil {
		defer req.PhotoFile.Close()
	}

	req.FloorPlan, req.FloorPlanFile = attachFile(r, formFloorPlan)
	if req.FloorPlanFile != nil {
		defer req.FloorPlanFile.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetRooms lists rooms.
// @Summary List rooms
// @Tags Room
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param sort_by query string false "Sort column" Enums(room_number, room_type, price_per_night, max_occupancy, created_at)
// @Param sort_dir query string false "Sort direction" Enums(ASC, DESC)
// @Param min_price query number false "Minimum price per night"
// @Param max_price query number false "Maximum price per night"
// @Param room_type query string false "Room type contains"
// @Param min_occupancy query int false "Minimum occupancy"
// @Param is_available query boolean false "Bookable flag"
// @Param amenity query string false "Amenity name contains"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	query := r.URL.Query()
	filterGroup := gDto.NewFilterGroup()

	if value := query.Get(queryMinPrice); value != "" {
		price, err := shared.ConvertStringToDecimal(value)
		if err != nil {
			response.WithError(w, err)

			return
		}

		filterGroup.Add(repository.PriceAtLeast(price))
	}

	if value := query.Get(queryMaxPrice); value != "" {
		price, err := shared.ConvertStringToDecimal(value)
		if err != nil {
			response.WithError(w, err)

			return
		}

		filterGroup.Add(repository.PriceAtMost(price))
	}

	if value := query.Get(queryMinOccupancy); value != "" {
		occupancy, err := shared.ConvertStringToInt(value)
		if err != nil {
			response.WithError(w, err)

			return
		}

		filterGroup.Add(gDto.Filter{
			ArgName:  queryMinOccupancy,
			Field:    model.FieldMaxOccupancy,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    occupancy,
			Table:    model.TableName,
		})
	}

	filterGroup.AddWhen(query.Get(model.FieldRoomType) != "", gDto.Filter{
		Field:    model.FieldRoomType,
		Operator: gDto.FilterOperatorLike,
		Value:    query.Get(model.FieldRoomType),
		Table:    model.TableName,
	})

	if available := shared.ConvertStringToBool(query.Get(model.FieldIsAvailable)); available != nil {
		filterGroup.Add(gDto.Filter{
			Field:    model.FieldIsAvailable,
			Operator: gDto.FilterOperatorEq,
			Value:    *available,
			Table:    model.TableName,
		})
	}

	if amenity := query.Get(queryAmenity); amenity != "" {
		filterGroup.Add(repository.AmenityLike(amenity))
	}

	res, err := handler.service.GetAll(ctx, listParams(r), filterGroup)
	writeRooms(w, scope, res, err)
}

// GetAvailableRooms lists rooms free for a stay, cheapest first.
// @Summary Available rooms
// @Description Without dates every room flagged available is listed.
// @Tags Room
// @Produce json
// @Param check_in query string false "Check-in date (YYYY-MM-DD)"
// @Param check_out query string false "Check-out date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "Available rooms"
// @Failure 400 {object} response.Error
// @Router /v1/rooms/available [get]
func (handler *Handler) GetAvailableRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableRooms")
	defer scope.End()

	query := r.URL.Query()

	res, err := handler.service.Available(ctx, listParams(r), query.Get(queryCheckIn), query.Get(queryCheckOut))
	writeRooms(w, scope, res, err)
}

// GetLuxuryRooms lists rooms priced at or above min_price.
// @Summary Luxury rooms
// @Tags Room
// @Produce json
// @Param min_price query number false "Minimum price per night" default(5000)
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "Rooms"
// @Failure 400 {object} response.Error
// @Router /v1/rooms/luxury [get]
func (handler *Handler) GetLuxuryRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLuxuryRooms")
	defer scope.End()

	minPrice, err := decimalParam(r, queryMinPrice, decimal.NewFromInt(defaultLuxuryPrice))
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Luxury(ctx, listParams(r), minPrice)
	writeRooms(w, scope, res, err)
}

// GetBudgetRooms lists rooms priced at or below max_price.
// @Summary Budget rooms
// @Tags Room
// @Produce json
// @Param max_price query number false "Maximum price per night" default(2000)
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "Rooms"
// @Failure 400 {object} response.Error
// @Router /v1/rooms/budget [get]
func (handler *Handler) GetBudgetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBudgetRooms")
	defer scope.End()

	maxPrice, err := decimalParam(r, queryMaxPrice, decimal.NewFromInt(defaultBudgetPrice))
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Budget(ctx, listParams(r), maxPrice)
	writeRooms(w, scope, res, err)
}

// GetPopularRooms lists rooms with at least min_bookings bookings.
// @Summary Popular rooms
// @Tags Room
// @Produce json
// @Param min_bookings query int false "Minimum number of bookings" default(5)
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "Rooms"
// @Failure 400 {object} response.Error
// @Router /v1/rooms/popular [get]
func (handler *Handler) GetPopularRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPopularRooms")
	defer scope.End()

	minBookings, err := intParam(r, queryMinBookings, defaultMinBookings)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Popular(ctx, listParams(r), minBookings)
	writeRooms(w, scope, res, err)
}

// GetTopRatedRooms lists rooms whose average rating reaches min_rating.
// @Summary Top rated rooms
// @Tags Room
// @Produce json
// @Param min_rating query number false "Minimum average rating" default(4.0)
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "Rooms"
// @Failure 400 {object} response.Error
// @Router /v1/rooms/top-rated [get]
func (handler *Handler) GetTopRatedRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTopRatedRooms")
	defer scope.End()

	minRating, err := decimalParam(r, queryMinRating, decimal.RequireFromString(defaultMinRating))
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.TopRated(ctx, listParams(r), minRating)
	writeRooms(w, scope, res, err)
}

// GetLongStayRooms lists rooms that hosted a stay of at least days nights.
// @Summary Long stay rooms
// @Tags Room
// @Produce json
// @Param days query int false "Minimum nights" default(7)
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "Rooms"
// @Failure 400 {object} response.Error
// @Router /v1/rooms/long-stay [get]
func (handler *Handler) GetLongStayRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLongStayRooms")
	defer scope.End()

	nights, err := intParam(r, queryDays, defaultLongStay)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.LongStay(ctx, listParams(r), nights)
	writeRooms(w, scope, res, err)
}

// GetRoomsWithoutReviews lists rooms nobody has reviewed yet.
// @Summary Rooms without reviews
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "Rooms"
// @Router /v1/rooms/without-reviews [get]
func (handler *Handler) GetRoomsWithoutReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomsWithoutReviews")
	defer scope.End()

	res, err := handler.service.WithoutReviews(ctx, listParams(r))
	writeRooms(w, scope, res, err)
}

// GetRoomsWithAmenities lists rooms that have every requested amenity.
// @Summary Rooms with amenities
// @Description Amenities are given as repeated or comma separated amenity parameters.
// @Tags Room
// @Produce json
// @Param amenity query []string true "Amenity names" collectionFormat(multi)
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "Rooms"
// @Failure 400 {object} response.Error
// @Router /v1/rooms/with-amenities [get]
func (handler *Handler) GetRoomsWithAmenities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomsWithAmenities")
	defer scope.End()

	names := []string{}
	for _, value := range r.URL.Query()[queryAmenity] {
		names = append(names, strings.Split(value, ",")...)
	}

	res, err := handler.service.WithAmenities(ctx, listParams(r), names)
	writeRooms(w, scope, res, err)
}

// GetRoomsWithOffers lists rooms with a special offer in force today.
// @Summary Rooms with special offers
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "Rooms"
// @Router /v1/rooms/with-offers [get]
func (handler *Handler) GetRoomsWithOffers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomsWithOffers")
	defer scope.End()

	res, err := handler.service.WithOffers(ctx, listParams(r))
	writeRooms(w, scope, res, err)
}

// GetRoomsByDiscount lists rooms whose offer in force today has a discount in range.
// @Summary Rooms by discount
// @Tags Room
// @Produce json
// @Param min_discount query number false "Minimum discount percentage" default(0)
// @Param max_discount query number false "Maximum discount percentage" default(100)
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "Rooms"
// @Failure 400 {object} response.Error
// @Router /v1/rooms/by-discount [get]
func (handler *Handler) GetRoomsByDiscount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomsByDiscount")
	defer scope.End()

	minPct, err := decimalParam(r, queryMinDiscount, decimal.Zero)
	if err != nil {
		response.WithError(w, err)

		return
	}

	maxPct, err := decimalParam(r, queryMaxDiscount, decimal.NewFromInt(maxDiscount))
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.ByDiscount(ctx, listParams(r), minPct, maxPct)
	writeRooms(w, scope, res, err)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room by ID
// @Description A new photo or floor plan replaces the stored one.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param room_number formData string false "Room number"
// @Param room_type formData string false "Room type"
// @Param price_per_night formData number false "Price per night"
// @Param max_occupancy formData integer false "Maximum occupancy"
// @Param is_available formData boolean false "Bookable flag"
// @Param photo formData file false "Room photo"
// @Param floor_plan formData file false "Floor plan"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateRoomRequest{
		RoomNumber:  r.FormValue(model.FieldRoomNumber),
		RoomType:    r.FormValue(model.FieldRoomType),
		IsAvailable: shared.ConvertStringToBool(r.FormValue(model.FieldIsAvailable)),
	}

	if value := r.FormValue(model.FieldPricePerNight); value != "" {
		price, err := shared.ConvertStringToDecimal(value)
		if err != nil {
			response.WithError(w, err)

			return
		}

		req.PricePerNight = &price
	}

	if value := r.FormValue(model.FieldMaxOccupancy); value != "" {
		occupancy, err := shared.ConvertStringToInt(value)
		if err != nil {
			response.WithError(w, err)

			return
		}

		req.MaxOccupancy = &occupancy
	}

	req.Photo, req.PhotoFile = attachFile(r, formPhoto)
	if req.PhotoFile != nil {
		defer req.PhotoFile.Close()
	}

	req.FloorPlan, req.FloorPlanFile = attachFile(r, formFloorPlan)
	if req.FloorPlanFile != nil {
		defer req.FloorPlanFile.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

// GetRoomPricing resolves the nightly price of a room on a date.
// @Summary Room price on a date
// @Description The best special offer in force on the date is applied. The date defaults to today.
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.PricingResponse] "Pricing"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/pricing [get]
func (handler *Handler) GetRoomPricing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomPricing")
	defer scope.End()

	day := shared.Today()

	if value := r.URL.Query().Get(queryDate); value != "" {
		parsed, err := shared.ParseDate(value)
		if err != nil {
			response.WithError(w, err)

			return
		}

		day = parsed
	}

	res, err := handler.service.Pricing(ctx, chi.URLParam(r, constant.RequestParamID), day)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room pricing")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetRoomReviews lists the reviews of a room.
// @Summary Room reviews
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Param sort query string false "Ordering" Enums(newest, oldest, rating)
// @Success 200 {object} response.Data[reviewDto.GetReviewsResponse] "Reviews"
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/reviews [get]
func (handler *Handler) GetRoomReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomReviews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	reviewDto.ApplySort(&queryParams, r.URL.Query().Get(querySort))

	res, err := handler.reviews.ByRoom(ctx, chi.URLParam(r, constant.RequestParamID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room reviews")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetRoomAmenities lists the amenities of a room.
// @Summary Room amenities
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[[]amenityDto.AmenityResponse] "Amenities"
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/amenities [get]
func (handler *Handler) GetRoomAmenities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomAmenities")
	defer scope.End()

	res, err := handler.amenities.GetRoomAmenities(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room amenities")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetRoomAmenities replaces the amenity set of a room.
// @Summary Set room amenities
// @Description An empty list clears the amenities of the room.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body amenityDto.SetRoomAmenitiesRequest true "Amenity ids"
// @Success 200 {object} response.Data[[]amenityDto.AmenityResponse] "Amenities"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/amenities [put]
// @Security BearerAuth
func (handler *Handler) SetRoomAmenities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetRoomAmenities")
	defer scope.End()

	req := amenityDto.SetRoomAmenitiesRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.amenities.SetRoomAmenities(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set room amenities")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room amenities replaced")

	response.WithJSON(w, http.StatusOK, res)
}

// GetRoomOffers lists the special offers in force for a room today.
// @Summary Active room offers
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[[]roomOfferDto.RoomOfferResponse] "Offers"
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/offers [get]
func (handler *Handler) GetRoomOffers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomOffers")
	defer scope.End()

	res, err := handler.roomOffers.ActiveByRoom(ctx, chi.URLParam(r, constant.RequestParamID), shared.Today())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room offers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetRoomFutureBookings lists the coming bookings of a room.
// @Summary Future bookings of a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Data[bookingDto.GetBookingsResponse] "Bookings"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetRoomFutureBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomFutureBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.bookings.FutureByRoom(ctx, chi.URLParam(r, constant.RequestParamID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get future bookings of room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
