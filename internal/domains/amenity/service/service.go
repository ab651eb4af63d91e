package service

import (
	"context"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/amenity/model"
	"guesthouse/internal/domains/amenity/model/dto"
	"guesthouse/internal/domains/amenity/repository"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAmenity    = "amenity:get"
	cacheGetAllAmenity = "amenity:gets"
	cacheCountAmenity  = "amenity:count"
	cacheRoomAmenities = "amenity:room"

	msgAmenityNotFound  = "amenity not found"
	msgAmenityNameTaken = "amenity with this name already exists"
)

type Amenity interface {
	Create(ctx context.Context, req dto.CreateAmenityRequest) (dto.AmenityResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAmenitiesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.AmenityResponse, error)
	Update(ctx context.Context, req dto.UpdateAmenityRequest, id string) error
	Delete(ctx context.Context, id string) error
	SetRoomAmenities(ctx context.Context, roomID string, req dto.SetRoomAmenitiesRequest) ([]dto.AmenityResponse, error)
	GetRoomAmenities(ctx context.Context, roomID string) ([]dto.AmenityResponse, error)
}

type serviceImpl struct {
	repo  repository.Amenity
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Amenity, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Amenity {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAmenityRequest) (res dto.AmenityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	amenity := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, amenity); err != nil {
		log.Error().Err(err).Msg("failed to create amenity")

		return res, failure.FromPQ(fmt.Errorf("failed to create amenity: %w", err), msgAmenityNameTaken)
	}

	s.invalidate(ctx, amenity.ID)
	res.FromModel(amenity)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAmenitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAmenity, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count amenities: %w", err)
	}

	amenities, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get amenities")

		return res, fmt.Errorf("failed to get amenities: %w", err)
	}

	res.FromModels(amenities, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save amenities to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAmenity, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count amenities")

		return res, fmt.Errorf("failed to count amenities: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save amenity count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AmenityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetAmenity, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	amenity, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get amenity")

		return res, fmt.Errorf("failed to get amenity: %w", err)
	}

	if amenity.ID == constant.Empty {
		return res, failure.NotFound(msgAmenityNotFound)
	}

	res.FromModel(amenity)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save amenity to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAmenityRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check amenity: %w", err)
	}

	if !exists {
		return failure.NotFound(msgAmenityNotFound)
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.Actor(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to update amenity")

		return failure.FromPQ(fmt.Errorf("failed to update amenity: %w", err), msgAmenityNameTaken)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check amenity: %w", err)
	}

	if !exists {
		return failure.NotFound(msgAmenityNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete amenity")

		return fmt.Errorf("failed to delete amenity: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// SetRoomAmenities replaces the amenity set of a room. Every id must name an existing amenity.
func (s *serviceImpl) SetRoomAmenities(ctx context.Context, roomID string, req dto.SetRoomAmenitiesRequest) (res []dto.AmenityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetRoomAmenities")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ids := req.Unique()

	if len(ids) > 0 {
		found, err := s.repo.Count(ctx, gDto.NewFilterGroup(gDto.Filter{
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorIn,
			Value:    ids,
			Table:    model.TableName,
		}))
		if err != nil {
			return res, fmt.Errorf("failed to check amenities: %w", err)
		}

		if found != len(ids) {
			return res, failure.BadRequestFromString("one or more amenities do not exist")
		}
	}

	if err = s.repo.ReplaceRoomAmenities(ctx, roomID, ids); err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to set room amenities")

		return res, failure.FromPQ(fmt.Errorf("failed to set room amenities: %w", err), msgAmenityNameTaken)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheRoomAmenities, roomID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room amenities cache")
		}

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixRoom)
	}()

	amenities, err := s.repo.GetByRoom(ctx, roomID)
	if err != nil {
		return res, fmt.Errorf("failed to get room amenities: %w", err)
	}

	return dto.FromModels(amenities), nil
}

func (s *serviceImpl) GetRoomAmenities(ctx context.Context, roomID string) (res []dto.AmenityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomAmenities")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheRoomAmenities, roomID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	amenities, err := s.repo.GetByRoom(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room amenities")

		return res, fmt.Errorf("failed to get room amenities: %w", err)
	}

	res = dto.FromModels(amenities)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room amenities to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAmenity, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete amenity from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAmenity)
		shared.InvalidateCaches(c, s.cache, cacheCountAmenity)
		shared.InvalidateCaches(c, s.cache, cacheRoomAmenities)
		// room listings filter by amenity name
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixRoom)
	}()
}
