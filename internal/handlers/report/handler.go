package report

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/report/model"
	"guesthouse/internal/domains/report/model/dto"
	"guesthouse/internal/domains/report/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryYear  = "year"
	queryMonth = "month"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/rooms", handler.GetRoomStatistics)
		routerGroup.Get("/monthly", handler.GetMonthlyReport)
		routerGroup.Get("/bookings", handler.GetBookingReport)
		routerGroup.Get("/offers", handler.GetSpecialOfferReport)
		routerGroup.Post("/archive", handler.ArchiveReport)
	})
}

func wantsPDF(r *http.Request) bool {
	return r.URL.Query().Get(constant.RequestParamFormat) == constant.FormatPDF
}

// writePDF renders kind and streams it back, or writes the error.
func (handler *Handler) writePDF(w http.ResponseWriter, r *http.Request, kind string, req dto.MonthlyRequest) {
	fileName, body, err := handler.service.PDF(r.Context(), kind, req)
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("failed to render report")

		response.WithError(w, err)

		return
	}

	response.WithPDF(w, fileName, body)
}

// GetRoomStatistics returns the statistics of every room and room type.
// @Summary Room statistics
// @Description Ratings, bookings, cancellation rate, revenue and average stay per room and per room type.
// @Tags Report
// @Produce json
// @Produce application/pdf
// @Param format query string false "Output format" Enums(json, pdf)
// @Success 200 {object} response.Data[dto.RoomStatisticsResponse] "Room statistics"
// @Failure 403 {object} response.Error
// @Router /v1/reports/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRoomStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomStatistics")
	defer scope.End()

	if wantsPDF(r) {
		handler.writePDF(w, r.WithContext(ctx), model.KindRooms, dto.MonthlyRequest{})

		return
	}

	res, err := handler.service.RoomStatistics(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room statistics")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMonthlyReport returns the per-room statistics of a calendar month.
// @Summary Monthly report
// @Description Bookings, revenue, occupancy and reviews per room. Defaults to the current month.
// @Tags Report
// @Produce json
// @Produce application/pdf
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Param format query string false "Output format" Enums(json, pdf)
// @Success 200 {object} response.Data[dto.MonthlyReportResponse] "Monthly report"
// @Failure 400 {object} response.Error
// @Router /v1/reports/monthly [get]
// @Security BearerAuth
func (handler *Handler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonthlyReport")
	defer scope.End()

	req := dto.MonthlyRequest{}
	query := r.URL.Query()

	if value := query.Get(queryYear); value != "" {
		year, err := shared.ConvertStringToInt(value)
		if err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		req.Year = year
	}

	if value := query.Get(queryMonth); value != "" {
		month, err := shared.ConvertStringToInt(value)
		if err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		req.Month = month
	}

	if wantsPDF(r) {
		handler.writePDF(w, r.WithContext(ctx), model.KindMonthly, req)

		return
	}

	res, err := handler.service.Monthly(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get monthly report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingReport returns booking counts per status and the latest bookings.
// @Summary Booking report
// @Tags Report
// @Produce json
// @Produce application/pdf
// @Param format query string false "Output format" Enums(json, pdf)
// @Success 200 {object} response.Data[dto.BookingReportResponse] "Booking report"
// @Router /v1/reports/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookingReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingReport")
	defer scope.End()

	if wantsPDF(r) {
		handler.writePDF(w, r.WithContext(ctx), model.KindBookings, dto.MonthlyRequest{})

		return
	}

	res, err := handler.service.Bookings(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetSpecialOfferReport returns offers ranked by how often they were applied to rooms.
// @Summary Special offer report
// @Tags Report
// @Produce json
// @Produce application/pdf
// @Param format query string false "Output format" Enums(json, pdf)
// @Success 200 {object} response.Data[dto.OfferReportResponse] "Special offer report"
// @Router /v1/reports/offers [get]
// @Security BearerAuth
func (handler *Handler) GetSpecialOfferReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpecialOfferReport")
	defer scope.End()

	if wantsPDF(r) {
		handler.writePDF(w, r.WithContext(ctx), model.KindOffers, dto.MonthlyRequest{})

		return
	}

	res, err := handler.service.SpecialOffers(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get special offer report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ArchiveReport renders a report to PDF and stores it in object storage.
// @Summary Archive a report
// @Tags Report
// @Accept json
// @Produce json
// @Param request body dto.ArchiveReportRequest true "Report to archive"
// @Success 201 {object} response.Data[dto.ArchiveReportResponse] "Archived report"
// @Failure 400 {object} response.Error
// @Router /v1/reports/archive [post]
// @Security BearerAuth
func (handler *Handler) ArchiveReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ArchiveReport")
	defer scope.End()

	req := dto.ArchiveReportRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Archive(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to archive report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Report archived successfully")

	response.WithJSON(w, http.StatusCreated, res)
}
