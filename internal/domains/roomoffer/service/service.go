package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/roomoffer/model"
	"guesthouse/internal/domains/roomoffer/model/dto"
	"guesthouse/internal/domains/roomoffer/repository"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoomOffer  = "room_offer:get"
	cacheByOfferOffers = "room_offer:offer"
	cacheByRoomOffers  = "room_offer:room"

	msgRoomOfferNotFound = "room offer not found"
	msgAlreadyApplied    = "this offer is already applied to the room"
)

type RoomOffer interface {
	Apply(ctx context.Context, req dto.ApplyOfferRequest) (dto.RoomOfferResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomOfferRequest, id string) error
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.RoomOfferResponse, error)
	ListByOffer(ctx context.Context, offerID string, req gDto.QueryParams) (dto.GetRoomOffersResponse, error)
	ActiveByRoom(ctx context.Context, roomID string, day time.Time) ([]dto.RoomOfferResponse, error)
	BestForRoom(ctx context.Context, roomID string, day time.Time) (model.RoomSpecialOffer, bool, error)
}

type serviceImpl struct {
	repo  repository.RoomOffer
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.RoomOffer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) RoomOffer {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Apply attaches a special offer to a room. A room carries each offer at most once.
func (s *serviceImpl) Apply(ctx context.Context, req dto.ApplyOfferRequest) (res dto.RoomOfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Apply")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	application, err := req.ToModel(shared.Actor(ctx))
	if err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, application); err != nil {
		log.Error().Err(err).Msg("failed to apply special offer to room")

		return res, failure.FromPQ(fmt.Errorf("failed to apply special offer: %w", err), msgAlreadyApplied)
	}

	s.invalidate(ctx, application.ID, application.RoomID, application.SpecialOfferID)

	stored, err := s.get(ctx, application.ID)
	if err != nil {
		return res, err
	}

	res.FromModel(stored)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomOfferRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	fields, err := req.Apply(current, shared.Actor(ctx))
	if err != nil {
		return err
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room offer")

		return failure.FromPQ(fmt.Errorf("failed to update room offer: %w", err), msgAlreadyApplied)
	}

	s.invalidate(ctx, id, current.RoomID, current.SpecialOfferID)

	return nil
}

func (s *serviceImpl) Remove(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to remove room offer")

		return fmt.Errorf("failed to remove room offer: %w", err)
	}

	s.invalidate(ctx, id, current.RoomID, current.SpecialOfferID)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomOfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoomOffer, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	application, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(application)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room offer to cache")
		}
	}()

	return res, nil
}

// ListByOffer pages through the rooms an offer is applied to.
func (s *serviceImpl) ListByOffer(ctx context.Context, offerID string, req gDto.QueryParams) (res dto.GetRoomOffersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByOffer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(offerID, model.FieldSpecialOfferID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheByOfferOffers, offerID), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room offers")

		return res, fmt.Errorf("failed to count room offers: %w", err)
	}

	applications, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room offers")

		return res, fmt.Errorf("failed to get room offers: %w", err)
	}

	res.FromModels(applications, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room offers to cache")
		}
	}()

	return res, nil
}

// ActiveByRoom lists the offers in force for a room on day, highest discount first.
func (s *serviceImpl) ActiveByRoom(ctx context.Context, roomID string, day time.Time) (res []dto.RoomOfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ActiveByRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	applications, err := s.roomApplications(ctx, roomID)
	if err != nil {
		return res, err
	}

	return dto.FromModels(model.InForce(applications, day)), nil
}

// BestForRoom resolves the single offer that prices the room on day.
func (s *serviceImpl) BestForRoom(ctx context.Context, roomID string, day time.Time) (res model.RoomSpecialOffer, found bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BestForRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	applications, err := s.roomApplications(ctx, roomID)
	if err != nil {
		return res, false, err
	}

	res, found = model.BestOffer(applications, day)

	return res, found, nil
}

// roomApplications loads every active application of a room, highest discount first.
// The window is checked by the caller so one cache entry serves any day.
func (s *serviceImpl) roomApplications(ctx context.Context, roomID string) (res []model.RoomSpecialOffer, err error) {
	cacheKey := shared.BuildCacheKey(cacheByRoomOffers, roomID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	filter := gDto.NewFilterGroup(
		gDto.Filter{Field: model.FieldRoomID, Operator: gDto.FilterOperatorEq, Value: roomID, Table: model.TableName},
		gDto.Filter{Field: model.FieldIsActive, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName},
	)
	params := gDto.QueryParams{SortBy: model.FieldDiscountPercentage, SortDir: gDto.SortDirDesc}

	res, err = s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to get room offers")

		return nil, fmt.Errorf("failed to get room offers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room offers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.RoomSpecialOffer, error) {
	application, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room offer")

		return application, fmt.Errorf("failed to get room offer: %w", err)
	}

	if application.ID == constant.Empty {
		return application, failure.NotFound(msgRoomOfferNotFound)
	}

	return application, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id, roomID, offerID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, key := range []string{
			shared.BuildCacheKey(cacheGetRoomOffer, id),
			shared.BuildCacheKey(cacheByRoomOffers, roomID),
		} {
			if err := s.cache.Delete(c, key); err != nil {
				log.Error().Err(err).Str("key", key).Msg("failed to delete room offer from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheByOfferOffers, offerID))
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixRoom)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixReport)
	}()
}
