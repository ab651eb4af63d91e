package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/infras/s3"
	"guesthouse/internal/domains/room/model"
	"guesthouse/internal/domains/room/model/dto"
	"guesthouse/internal/domains/room/repository"
	roomOfferModel "guesthouse/internal/domains/roomoffer/model"
	roomOfferDto "guesthouse/internal/domains/roomoffer/model/dto"
	roomOfferService "guesthouse/internal/domains/roomoffer/service"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	"guesthouse/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"

	msgRoomNotFound    = "room not found"
	msgRoomNumberTaken = "room number already exists"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
	Available(ctx context.Context, req gDto.QueryParams, checkIn, checkOut string) (dto.GetRoomsResponse, error)
	Luxury(ctx context.Context, req gDto.QueryParams, minPrice decimal.Decimal) (dto.GetRoomsResponse, error)
	Budget(ctx context.Context, req gDto.QueryParams, maxPrice decimal.Decimal) (dto.GetRoomsResponse, error)
	Popular(ctx context.Context, req gDto.QueryParams, minBookings int) (dto.GetRoomsResponse, error)
	TopRated(ctx context.Context, req gDto.QueryParams, minRating decimal.Decimal) (dto.GetRoomsResponse, error)
	LongStay(ctx context.Context, req gDto.QueryParams, nights int) (dto.GetRoomsResponse, error)
	WithoutReviews(ctx context.Context, req gDto.QueryParams) (dto.GetRoomsResponse, error)
	WithAmenities(ctx context.Context, req gDto.QueryParams, names []string) (dto.GetRoomsResponse, error)
	WithOffers(ctx context.Context, req gDto.QueryParams) (dto.GetRoomsResponse, error)
	ByDiscount(ctx context.Context, req gDto.QueryParams, minPct, maxPct decimal.Decimal) (dto.GetRoomsResponse, error)
	Pricing(ctx context.Context, id string, day time.Time) (dto.PricingResponse, error)
}

type serviceImpl struct {
	repo       repository.Room
	roomOffers roomOfferService.RoomOffer
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	s3         s3.S3
}

func New(repo repository.Room, roomOffers roomOfferService.RoomOffer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:       repo,
		roomOffers: roomOffers,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		s3:         s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Check(); err != nil {
		return res, err
	}

	photoURL, err := s.upload(ctx, model.PhotoDirectory, req.PhotoFile, req.Photo)
	if err != nil {
		return res, err
	}

	floorPlanURL, err := s.upload(ctx, model.FloorPlanDirectory, req.FloorPlanFile, req.FloorPlan)
	if err != nil {
		s.deleteObject(ctx, photoURL)

		return res, err
	}

	room := req.ToModel(shared.Actor(ctx), photoURL, floorPlanURL)

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		s.deleteObject(ctx, photoURL)
		s.deleteObject(ctx, floorPlanURL)

		return res, failure.FromPQ(fmt.Errorf("failed to create room: %w", err), msgRoomNumberTaken)
	}

	s.invalidate(ctx, room.ID)
	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

// Update changes a room. Replaced photo and floor plan objects are deleted once the row is saved.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Check(); err != nil {
		return err
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	photoURL, err := s.upload(ctx, model.PhotoDirectory, req.PhotoFile, req.Photo)
	if err != nil {
		return err
	}

	floorPlanURL, err := s.upload(ctx, model.FloorPlanDirectory, req.FloorPlanFile, req.FloorPlan)
	if err != nil {
		s.deleteObject(ctx, photoURL)

		return err
	}

	updatedFields := shared.TransformFields(req, shared.Actor(ctx))
	if photoURL != constant.Empty {
		updatedFields[model.FieldPhoto] = photoURL
	}

	if floorPlanURL != constant.Empty {
		updatedFields[model.FieldFloorPlan] = floorPlanURL
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		s.deleteObject(ctx, photoURL)
		s.deleteObject(ctx, floorPlanURL)

		return failure.FromPQ(fmt.Errorf("failed to update room: %w", err), msgRoomNumberTaken)
	}

	if photoURL != constant.Empty {
		s.deleteObject(ctx, current.Photo)
	}

	if floorPlanURL != constant.Empty {
		s.deleteObject(ctx, current.FloorPlan)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.deleteObject(ctx, current.Photo)
	s.deleteObject(ctx, current.FloorPlan)
	s.invalidate(ctx, id)

	return nil
}

// Available lists bookable rooms, cheapest first. Without dates every room flagged available is listed;
// with dates, rooms holding a confirmed booking that overlaps [check_in, check_out) are left out.
func (s *serviceImpl) Available(ctx context.Context, req gDto.QueryParams, checkIn, checkOut string) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Available")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.NewFilterGroup(repository.Available())

	if checkIn != constant.Empty || checkOut != constant.Empty {
		if checkIn == constant.Empty || checkOut == constant.Empty {
			return res, failure.BadRequestFromString("check_in and check_out must be given together")
		}

		from, err := shared.ParseDate(checkIn)
		if err != nil {
			return res, err
		}

		to, err := shared.ParseDate(checkOut)
		if err != nil {
			return res, err
		}

		if !to.After(from) {
			return res, failure.BadRequestFromString("check_out must be after check_in")
		}

		filter.Add(repository.FreeBetween(from, to))
	}

	req.SortBy, req.SortDir = model.FieldPricePerNight, gDto.SortDirAsc

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Luxury(ctx context.Context, req gDto.QueryParams, minPrice decimal.Decimal) (dto.GetRoomsResponse, error) {
	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.PriceAtLeast(minPrice)))
}

func (s *serviceImpl) Budget(ctx context.Context, req gDto.QueryParams, maxPrice decimal.Decimal) (dto.GetRoomsResponse, error) {
	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.PriceAtMost(maxPrice)))
}

func (s *serviceImpl) Popular(ctx context.Context, req gDto.QueryParams, minBookings int) (dto.GetRoomsResponse, error) {
	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.BookedAtLeast(minBookings)))
}

func (s *serviceImpl) TopRated(ctx context.Context, req gDto.QueryParams, minRating decimal.Decimal) (dto.GetRoomsResponse, error) {
	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.RatedAtLeast(minRating)))
}

func (s *serviceImpl) LongStay(ctx context.Context, req gDto.QueryParams, nights int) (dto.GetRoomsResponse, error) {
	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.HadStayOf(nights)))
}

func (s *serviceImpl) WithoutReviews(ctx context.Context, req gDto.QueryParams) (dto.GetRoomsResponse, error) {
	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.WithoutReviews()))
}

// WithAmenities lists rooms that have every one of the named amenities.
func (s *serviceImpl) WithAmenities(ctx context.Context, req gDto.QueryParams, names []string) (res dto.GetRoomsResponse, err error) {
	filter := repository.HasAllAmenities(names)
	if filter.Operator == constant.Empty {
		return res, failure.BadRequestFromString("at least one amenity name is required")
	}

	return s.GetAll(ctx, req, gDto.NewFilterGroup(filter))
}

func (s *serviceImpl) WithOffers(ctx context.Context, req gDto.QueryParams) (dto.GetRoomsResponse, error) {
	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.OfferOn(timezone.Today())))
}

func (s *serviceImpl) ByDiscount(ctx context.Context, req gDto.QueryParams, minPct, maxPct decimal.Decimal) (res dto.GetRoomsResponse, err error) {
	for _, pct := range []decimal.Decimal{minPct, maxPct} {
		if err = roomOfferDto.CheckDiscount(pct); err != nil {
			return res, err
		}
	}

	if minPct.GreaterThan(maxPct) {
		return res, failure.BadRequestFromString("min_discount must not exceed max_discount")
	}

	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.DiscountBetween(minPct, maxPct, timezone.Today())))
}

// Pricing resolves the nightly price of a room on day: the best offer in force wins.
func (s *serviceImpl) Pricing(ctx context.Context, id string, day time.Time) (res dto.PricingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pricing")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.Get(ctx, id)
	if err != nil {
		return res, err
	}

	res = dto.PricingResponse{
		RoomID:             room.ID,
		Date:               day.Format(constant.DateOnlyFormat),
		BasePrice:          room.PricePerNight,
		DiscountPercentage: decimal.Zero,
		FinalPrice:         room.PricePerNight,
	}

	best, found, err := s.roomOffers.BestForRoom(ctx, id, day)
	if err != nil {
		return res, fmt.Errorf("failed to resolve room offer: %w", err)
	}

	if found {
		offer := roomOfferDto.RoomOfferResponse{}
		offer.FromModel(best)

		res.Offer = &offer
		res.DiscountPercentage = best.DiscountPercentage
		res.FinalPrice = roomOfferModel.DiscountedPrice(room.PricePerNight, best.DiscountPercentage)
	}

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(msgRoomNotFound)
	}

	return room, nil
}

// upload stores an optional file and returns its public URL, or an empty URL when no file was sent.
func (s *serviceImpl) upload(ctx context.Context, directory string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header == nil {
		return constant.Empty, nil
	}

	url, err := s.s3.UploadFile(ctx, constant.Empty, directory, file, header, s3.ObjectName(header.Filename))
	if err != nil {
		log.Error().Err(err).Str("directory", directory).Msg("failed to upload room file")

		return constant.Empty, fmt.Errorf("failed to upload %s: %w", directory, err)
	}

	return url, nil
}

func (s *serviceImpl) deleteObject(ctx context.Context, url string) {
	if url == constant.Empty {
		return
	}

	objectName := s.s3.GetObjectNameFromURL(constant.Empty, url)
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, constant.Empty, constant.Empty, objectName); err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete room file")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixRoomOffer)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixReport)
	}()
}
