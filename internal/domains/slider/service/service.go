package service

import (
	"context"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/infras/s3"
	"guesthouse/internal/domains/slider/model"
	"guesthouse/internal/domains/slider/model/dto"
	"guesthouse/internal/domains/slider/repository"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetSlider    = "slider:get"
	cacheGetAllSlider = "slider:gets"
	cacheCountSlider  = "slider:count"

	msgSlideNotFound = "slide not found"
)

type Slider interface {
	Create(ctx context.Context, req dto.CreateSliderImageRequest) (dto.SliderImageResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSliderImagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.SliderImageResponse, error)
	Update(ctx context.Context, req dto.UpdateSliderImageRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.SliderImage
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.SliderImage, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Slider {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSliderImageRequest) (res dto.SliderImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectName := s3.ObjectName(req.Image.Filename)

	imageURL, err := s.s3.UploadFile(ctx, constant.Empty, model.ImageDirectory, req.ImageFile, req.Image, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload slide image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	slide := req.ToModel(shared.Actor(ctx), imageURL)

	if err = s.repo.Insert(ctx, slide); err != nil {
		log.Error().Err(err).Msg("failed to create slide")

		if delErr := s.s3.DeleteFile(ctx, constant.Empty, model.ImageDirectory, objectName); delErr != nil {
			log.Error().Err(delErr).Msg("failed to remove orphaned slide image")
		}

		return res, fmt.Errorf("failed to create slide: %w", err)
	}

	s.invalidate(ctx, slide.ID)
	res.FromModel(slide)

	return res, nil
}

// GetAll lists slides by position. Callers outside staff only see active slides.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSliderImagesResponse, err error) {
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

	req.SortBy, req.SortDir = model.SortByPosition, gDto.SortDirDesc

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSlider, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for slides")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count slides: %w", err)
	}

	slides, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get slides")

		return res, fmt.Errorf("failed to get slides: %w", err)
	}

	res.FromModels(slides, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slides to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSlider, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count slides")

		return total, fmt.Errorf("failed to count slides: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slide count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SliderImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetSlider, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		slide, err := s.get(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(slide)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save slide to cache")
			}
		}()
	}

	if !res.IsActive && !shared.IsStaff(ctx) {
		return dto.SliderImageResponse{}, failure.NotFound(msgSlideNotFound)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSliderImageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

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
			log.Error().Err(err).Msg("failed to upload slide image")

			return fmt.Errorf("failed to upload image: %w", err)
		}

		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update slide")

		if objectName != constant.Empty {
			if delErr := s.s3.DeleteFile(ctx, constant.Empty, model.ImageDirectory, objectName); delErr != nil {
				log.Error().Err(delErr).Msg("failed to remove orphaned slide image")
			}
		}

		return fmt.Errorf("failed to update slide: %w", err)
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
		log.Error().Err(err).Msg("failed to delete slide")

		return fmt.Errorf("failed to delete slide: %w", err)
	}

	s.deleteImage(ctx, current.Image)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.SliderImage, error) {
	slide, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get slide")

		return slide, fmt.Errorf("failed to get slide: %w", err)
	}

	if slide.ID == constant.Empty {
		return slide, failure.NotFound(msgSlideNotFound)
	}

	return slide, nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, imageURL string) {
	objectName := s.s3.GetObjectNameFromURL(constant.Empty, imageURL)
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, constant.Empty, constant.Empty, objectName); err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete slide image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSlider, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete slide from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSlider)
		shared.InvalidateCaches(c, s.cache, cacheCountSlider)
	}()
}
