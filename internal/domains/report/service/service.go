package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"path"
	"strconv"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/infras/pdf"
	"guesthouse/infras/s3"
	"guesthouse/internal/domains/report/model"
	"guesthouse/internal/domains/report/model/dto"
	"guesthouse/internal/domains/report/repository"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheRoomReport    = constant.CachePrefixReport + model.KindRooms
	cacheMonthlyReport = constant.CachePrefixReport + model.KindMonthly
	cacheBookingReport = constant.CachePrefixReport + model.KindBookings
	cacheOfferReport   = constant.CachePrefixReport + model.KindOffers

	msgUnknownReport = "unknown report %q"

	archiveDirLayout  = "2006/01"
	archiveNameLayout = "20060102T150405"
)

type Report interface {
	RoomStatistics(ctx context.Context) (dto.RoomStatisticsResponse, error)
	Monthly(ctx context.Context, req dto.MonthlyRequest) (dto.MonthlyReportResponse, error)
	Bookings(ctx context.Context) (dto.BookingReportResponse, error)
	SpecialOffers(ctx context.Context) (dto.OfferReportResponse, error)
	PDF(ctx context.Context, kind string, req dto.MonthlyRequest) (fileName string, body []byte, err error)
	Archive(ctx context.Context, req dto.ArchiveReportRequest) (dto.ArchiveReportResponse, error)
}

type serviceImpl struct {
	repo     repository.Report
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	renderer pdf.Renderer
	s3       s3.S3
}

func New(repo repository.Report, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, renderer pdf.Renderer, s3 s3.S3) Report {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		renderer: renderer,
		s3:       s3,
	}
}

func (s *serviceImpl) RoomStatistics(ctx context.Context) (res dto.RoomStatisticsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomStatistics")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cacheRoomReport, &res); err == nil {
		log.Debug().Str("cacheKey", cacheRoomReport).Msg("cache hit for room statistics")

		return res, nil
	}

	rooms, err := s.repo.RoomStatistics(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room statistics")

		return res, fmt.Errorf("failed to get room statistics: %w", err)
	}

	types, err := s.repo.RoomTypeStatistics(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type statistics")

		return res, fmt.Errorf("failed to get room type statistics: %w", err)
	}

	offerRooms, err := s.repo.OfferRooms(ctx, timezone.Today())
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms with special offers")

		return res, fmt.Errorf("failed to get rooms with special offers: %w", err)
	}

	res.FromModels(rooms, types, offerRooms)
	s.save(ctx, cacheRoomReport, res)

	return res, nil
}

func (s *serviceImpl) Monthly(ctx context.Context, req dto.MonthlyRequest) (res dto.MonthlyReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Monthly")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Normalize(); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheMonthlyReport, strconv.Itoa(req.Year), strconv.Itoa(req.Month))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	stats, err := s.repo.MonthlyStatistics(ctx, req.Start())
	if err != nil {
		log.Error().Err(err).Msg("failed to get monthly statistics")

		return res, fmt.Errorf("failed to get monthly statistics: %w", err)
	}

	res.FromModels(req, stats)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Bookings(ctx context.Context) (res dto.BookingReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cacheBookingReport, &res); err == nil {
		return res, nil
	}

	counts, err := s.repo.StatusSummary(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking status summary")

		return res, fmt.Errorf("failed to get booking status summary: %w", err)
	}

	recent, err := s.repo.RecentBookings(ctx, model.RecentBookingsLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to get recent bookings")

		return res, fmt.Errorf("failed to get recent bookings: %w", err)
	}

	res.FromModels(counts, recent)
	s.save(ctx, cacheBookingReport, res)

	return res, nil
}

func (s *serviceImpl) SpecialOffers(ctx context.Context) (res dto.OfferReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SpecialOffers")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cacheOfferReport, &res); err == nil {
		return res, nil
	}

	today := timezone.Today()

	stats, err := s.repo.OfferStatistics(ctx, today)
	if err != nil {
		log.Error().Err(err).Msg("failed to get special offer statistics")

		return res, fmt.Errorf("failed to get special offer statistics: %w", err)
	}

	rooms, err := s.repo.OfferRooms(ctx, today)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms with special offers")

		return res, fmt.Errorf("failed to get rooms with special offers: %w", err)
	}

	res.FromModels(stats, rooms)
	s.save(ctx, cacheOfferReport, res)

	return res, nil
}

// PDF renders the report of the given kind. req is only read by the monthly report.
func (s *serviceImpl) PDF(ctx context.Context, kind string, req dto.MonthlyRequest) (fileName string, body []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PDF")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var doc pdf.Document

	switch kind {
	case model.KindRooms:
		res, err := s.RoomStatistics(ctx)
		if err != nil {
			return constant.Empty, nil, err
		}

		fileName, doc = "room_statistics.pdf", roomStatisticsDocument(res)
	case model.KindMonthly:
		res, err := s.Monthly(ctx, req)
		if err != nil {
			return constant.Empty, nil, err
		}

		fileName, doc = fmt.Sprintf("monthly_report_%d_%02d.pdf", res.Year, res.Month), monthlyDocument(res)
	case model.KindBookings:
		res, err := s.Bookings(ctx)
		if err != nil {
			return constant.Empty, nil, err
		}

		fileName, doc = "booking_report.pdf", bookingDocument(res)
	case model.KindOffers:
		res, err := s.SpecialOffers(ctx)
		if err != nil {
			return constant.Empty, nil, err
		}

		fileName, doc = "special_offers_report.pdf", offerDocument(res)
	default:
		return constant.Empty, nil, failure.BadRequestFromString(fmt.Sprintf(msgUnknownReport, kind))
	}

	body, err = s.renderer.Render(ctx, doc)
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("failed to render report")

		return constant.Empty, nil, fmt.Errorf("failed to render report: %w", err)
	}

	return fileName, body, nil
}

// Archive renders a report and keeps a copy in object storage under reports/YYYY/MM.
func (s *serviceImpl) Archive(ctx context.Context, req dto.ArchiveReportRequest) (res dto.ArchiveReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Archive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fileName, body, err := s.PDF(ctx, req.Kind, req.MonthlyRequest)
	if err != nil {
		return res, err
	}

	now := timezone.Now()
	directory := path.Join(model.ArchiveDirectory, now.Format(archiveDirLayout))
	objectName := now.Format(archiveNameLayout) + "_" + fileName

	url, err := s.s3.UploadFileBytes(ctx, constant.Empty, directory, objectName, constant.ContentTypePDF, body)
	if err != nil {
		log.Error().Err(err).Msg("failed to archive report")

		return res, fmt.Errorf("failed to archive report: %w", err)
	}

	res = dto.ArchiveReportResponse{
		Kind:     req.Kind,
		FileName: objectName,
		URL:      url,
	}

	return res, nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save report to cache")
		}
	}()
}
