package review

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/review/model"
	"guesthouse/internal/domains/review/model/dto"
	"guesthouse/internal/domains/review/repository"
	"guesthouse/internal/domains/review/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	querySort      = "sort"
	queryMinRating = "min_rating"
	queryMaxRating = "max_rating"
)

type Handler struct {
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reviews", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReview)
		routerGroup.Get("/", handler.GetReviews)
		routerGroup.Get("/{id}", handler.GetReviewByID)
		routerGroup.Patch("/{id}", handler.UpdateReview)
		routerGroup.Delete("/{id}", handler.DeleteReview)
	})
}

func optionalInt(value string) (*int, error) {
	if value == "" {
		return nil, nil //nolint:nilnil
	}

	number, err := shared.ConvertStringToInt(value)
	if err != nil {
		return nil, err
	}

	return &number, nil
}

// CreateReview posts a review of a room by the signed-in guest.
// @Summary Review a room
// @Description One review per guest and room.
// @Tags Review
// @Accept json
// @Produce json
// @Param request body dto.CreateReviewRequest true "Review"
// @Success 201 {object} response.Data[dto.ReviewResponse] "Created review"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reviews [post]
// @Security BearerAuth
func (handler *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReview")
	defer scope.End()

	req := dto.CreateReviewRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetReviews lists reviews.
// @Summary List reviews
// @Tags Review
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param room_id query string false "Room ID"
// @Param guest_id query string false "Guest ID"
// @Param min_rating query int false "Minimum rating"
// @Param max_rating query int false "Maximum rating"
// @Param sort query string false "Ordering" Enums(newest, oldest, rating)
// @Success 200 {object} response.Data[dto.GetReviewsResponse] "List of reviews"
// @Failure 400 {object} response.Error
// @Router /v1/reviews [get]
func (handler *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviews")
	defer scope.End()

	query := r.URL.Query()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	dto.ApplySort(&queryParams, query.Get(querySort))

	minRating, err := optionalInt(query.Get(queryMinRating))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	maxRating, err := optionalInt(query.Get(queryMaxRating))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	ratingFilters, err := service.RatingRange(minRating, maxRating)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	roomID := query.Get(model.FieldRoomID)
	guestID := query.Get(model.FieldGuestID)

	filterGroup := gDto.NewFilterGroup(ratingFilters...)
	filterGroup.AddWhen(roomID != "", repository.OfRoom(roomID))
	filterGroup.AddWhen(guestID != "", repository.OfGuest(guestID))

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reviews")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReviewByID returns one review.
// @Summary Get a review
// @Tags Review
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Data[dto.ReviewResponse] "Review"
// @Failure 404 {object} response.Error
// @Router /v1/reviews/{id} [get]
func (handler *Handler) GetReviewByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviewByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get review")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateReview changes the rating or comment of an own review.
// @Summary Update own review
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body dto.UpdateReviewRequest true "Fields to change"
// @Success 200 {object} response.Message "Review updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reviews/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReview")
	defer scope.End()

	req := dto.UpdateReviewRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update review")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Review updated successfully")
}

// DeleteReview removes a review. Guests may only remove their own.
// @Summary Delete a review
// @Tags Review
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Message "Review deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reviews/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReview")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete review")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Review deleted successfully")
}
