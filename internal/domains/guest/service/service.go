package service

import (
	"context"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/guest/model"
	"guesthouse/internal/domains/guest/model/dto"
	"guesthouse/internal/domains/guest/repository"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	"guesthouse/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetGuest    = "guest:get"
	cacheGetAllGuest = "guest:gets"
	cacheCountGuest  = "guest:count"

	msgGuestNotFound = "guest profile not found"
	msgEmailTaken    = "email is already used by another guest"
	msgAuthRequired  = "authentication required"
)

type Guest interface {
	Upsert(ctx context.Context, req dto.UpsertGuestRequest) (dto.GuestResponse, error)
	Mine(ctx context.Context) (dto.GuestResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGuestsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.GuestResponse, error)
}

type serviceImpl struct {
	repo  repository.Guest
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Guest, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Guest {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Upsert creates or replaces the profile of the signed-in user. The phone number is stored as E.164.
func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)
	if userID == "" {
		return res, failure.Unauthorized(msgAuthRequired)
	}

	actor := shared.Actor(ctx)
	req.Normalize(actor)

	phone, err := validator.NormalizePhone(req.PhoneNumber, req.Region())
	if err != nil {
		return res, failure.BadRequestFromString("phone_number is not a valid phone number")
	}

	req.PhoneNumber = phone

	userFilter := shared.FilterByID(userID, model.FieldUserID, model.TableName)

	existing, err := s.repo.Get(ctx, userFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if existing.ID == constant.Empty {
		guest := req.ToModel(userID, actor)

		if err = s.repo.Insert(ctx, guest); err != nil {
			log.Error().Err(err).Msg("failed to create guest")

			return res, failure.FromPQ(fmt.Errorf("failed to create guest: %w", err), msgEmailTaken)
		}

		s.invalidate(ctx, guest.ID)
		res.FromModel(guest)

		return res, nil
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req.ToUpdateFields(), actor), userFilter); err != nil {
		log.Error().Err(err).Msg("failed to update guest")

		return res, failure.FromPQ(fmt.Errorf("failed to update guest: %w", err), msgEmailTaken)
	}

	s.invalidate(ctx, existing.ID)

	updated := req.ToModel(userID, existing.CreatedBy)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.ModifiedBy = actor
	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Mine(ctx context.Context) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Mine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)
	if userID == "" {
		return res, failure.Unauthorized(msgAuthRequired)
	}

	guest, err := s.repo.Get(ctx, shared.FilterByID(userID, model.FieldUserID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return res, failure.NotFound(msgGuestNotFound)
	}

	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGuest, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for guests")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count guests: %w", err)
	}

	guests, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	res.FromModels(guests, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guests to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountGuest, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return res, fmt.Errorf("failed to count guests: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guest count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetGuest, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	guest, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return res, failure.NotFound(msgGuestNotFound)
	}

	res.FromModel(guest)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guest to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetGuest, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete guest cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllGuest)
		shared.InvalidateCaches(c, s.cache, cacheCountGuest)
	}()
}
