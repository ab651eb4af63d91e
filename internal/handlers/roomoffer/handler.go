package roomoffer

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/roomoffer/model/dto"
	"guesthouse/internal/domains/roomoffer/service"
	"guesthouse/shared/constant"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.RoomOffer
	otel    otel.Otel
}

func New(service service.RoomOffer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/room-offers", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.ApplyOffer)
		routerGroup.Get("/{id}", handler.GetRoomOffer)
		routerGroup.Patch("/{id}", handler.UpdateRoomOffer)
		routerGroup.Delete("/{id}", handler.RemoveRoomOffer)
	})
}

// ApplyOffer applies a special offer to a room for a date window.
// @Summary Apply a special offer to a room
// @Tags RoomOffer
// @Accept json
// @Produce json
// @Param request body dto.ApplyOfferRequest true "Application"
// @Success 201 {object} response.Data[dto.RoomOfferResponse] "Applied offer"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/room-offers [post]
// @Security BearerAuth
func (handler *Handler) ApplyOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApplyOffer")
	defer scope.End()

	req := dto.ApplyOfferRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Apply(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to apply offer")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Offer applied to room")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetRoomOffer returns one application.
// @Summary Get a room offer
// @Tags RoomOffer
// @Produce json
// @Param id path string true "Room offer ID"
// @Success 200 {object} response.Data[dto.RoomOfferResponse] "Room offer"
// @Failure 404 {object} response.Error
// @Router /v1/room-offers/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomOffer")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room offer")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateRoomOffer changes the window, discount or active flag.
// @Summary Update a room offer
// @Tags RoomOffer
// @Accept json
// @Produce json
// @Param id path string true "Room offer ID"
// @Param request body dto.UpdateRoomOfferRequest true "Changes"
// @Success 200 {object} response.Message "Room offer updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/room-offers/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoomOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomOffer")
	defer scope.End()

	req := dto.UpdateRoomOfferRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room offer")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room offer updated successfully")
}

// RemoveRoomOffer detaches a special offer from a room.
// @Summary Remove a special offer from a room
// @Tags RoomOffer
// @Produce json
// @Param id path string true "Room offer ID"
// @Success 200 {object} response.Message "Room offer removed successfully"
// @Failure 404 {object} response.Error
// @Router /v1/room-offers/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveRoomOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveRoomOffer")
	defer scope.End()

	if err := handler.service.Remove(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove room offer")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room offer removed successfully")
}
