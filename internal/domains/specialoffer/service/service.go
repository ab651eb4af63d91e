package service

import (
	"context"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/infras/s3"
	"guesthouse/internal/domains/specialoffer/model"
	"guesthouse/internal/domains/specialoffer/model/dto"
	"guesthouse/internal/domains/specialoffer/repository"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetSpecialOffer    = "special_offer:get"
	cacheGetAllSpecialOffer = "special_offer:gets"
	cacheCountSpecialOffer  = "special_offer:count"

	msgSpecialOfferNotFound = "special offer not found"
	msgNegativePrice        = "price must not be negative"
)

type SpecialOffer interface {
	Create(ctx context.Context, req dto.CreateSpecialOfferRequest) (dto.SpecialOfferResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSpecialOffersResponse, error)
	Get(ctx context.Context, id string) (dto.SpecialOfferResponse, error)
	Update(ctx context.Context, req dto.UpdateSpecialOfferRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.SpecialOffer
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.SpecialOffer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) SpecialOffer {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSpecialOfferRequest) (res dto.SpecialOfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Price != nil && req.Price.IsNegative() {
		return res, failure.BadRequestFromString(msgNegativePrice)
	}

	objectName := s3.ObjectName(req.Image.Filename)

	imageURL, err := s.s3.UploadFile(ctx, constant.Empty, model.ImageDirectory, req.ImageFile, req.Image, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload special offer image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	offer := req.ToModel(shared.Actor(ctx), imageURL)

	if err = s.repo.Insert(ctx, offer); err != nil {
		log.Error().Err(err).Msg("failed to create special offer")

		if delErr := s.s3.DeleteFile(ctx, constant.Empty, model.ImageDirectory, objectName); delErr != nil {
			log.Error().Err(delErr).Msg("failed to remove orphaned special offer image")
		}

		return res, fmt.Errorf("failed to create special offer: %w", err)
	}

	s.invalidate(ctx, offer.ID)
	res.FromModel(offer)

	return res, nil
}

// GetAll lists offers. Callers outside staff only ever see active ones.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSpecialOffersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.IsStaff(ctx) {
		filter = gDto.NewFilterGroup(filter, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    true,
			Table:    model.TableName,
		})
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSpecialOffer, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count special offers: %w", err)
	}

	offers, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get special offers")

		return res, fmt.Errorf("failed to get special offers: %w", err)
	}

	res.FromModels(offers, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save special offers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSpecialOffer, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count special offers")

		return res, fmt.Errorf("failed to count special offers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save special offer count to cache")
		}
	}()

	return res, nil
}

// Get returns an offer. Inactive offers are hidden from non-staff callers.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SpecialOfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetSpecialOffer, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		offer, err := s.get(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(offer)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save special offer to cache")
			}
		}()
	}

	if !res.IsActive && !shared.IsStaff(ctx) {
		return dto.SpecialOfferResponse{}, failure.NotFound(msgSpecialOfferNotFound)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSpecialOfferRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Price != nil && req.Price.IsNegative() {
		return failure.BadRequestFromString(msgNegativePrice)
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, shared.Actor(ctx))

	var objectName string

	if req.Image != nil {
		objectName = s3.ObjectName(req.Image.Filename)

		imageURL, err := s.s3.UploadFile(ctx, constant.Empty, model.ImageDirectory, req.ImageFile, req.Image, objectName)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload special offer image")

			return fmt.Errorf("failed to upload image: %w", err)
		}

		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update special offer")

		if objectName != constant.Empty {
			if delErr := s.s3.DeleteFile(ctx, constant.Empty, model.ImageDirectory, objectName); delErr != nil {
				log.Error().Err(delErr).Msg("failed to remove orphaned special offer image")
			}
		}

		return fmt.Errorf("failed to update special offer: %w", err)
	}

	if objectName != constant.Empty {
		s.deleteImage(ctx, current.Image)
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
		log.Error().Err(err).Msg("failed to delete special offer")

		return fmt.Errorf("failed to delete special offer: %w", err)
	}

	s.deleteImage(ctx, current.Image)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.SpecialOffer, error) {
	offer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get special offer")

		return offer, fmt.Errorf("failed to get special offer: %w", err)
	}

	if offer.ID == constant.Empty {
		return offer, failure.NotFound(msgSpecialOfferNotFound)
	}

	return offer, nil
}

// deleteImage removes a stored image. Failures leave an orphan object and are only logged.
func (s *serviceImpl) deleteImage(ctx context.Context, imageURL string) {
	objectName := s.s3.GetObjectNameFromURL(constant.Empty, imageURL)
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, constant.Empty, constant.Empty, objectName); err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete special offer image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSpecialOffer, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete special offer from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSpecialOffer)
		shared.InvalidateCaches(c, s.cache, cacheCountSpecialOffer)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixRoomOffer)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixReport)
	}()
}
