package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/otel"
	guestModel "guesthouse/internal/domains/guest/model"
	guestRepo "guesthouse/internal/domains/guest/repository"
	"guesthouse/internal/domains/review/model"
	"guesthouse/internal/domains/review/model/dto"
	"guesthouse/internal/domains/review/repository"
	roomModel "guesthouse/internal/domains/room/model"
	roomRepo "guesthouse/internal/domains/room/repository"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReview    = "review:get"
	cacheGetAllReview = "review:gets"
	cacheCountReview  = "review:count"

	msgReviewNotFound   = "review not found"
	msgRoomMissing      = "room does not exist"
	msgAlreadyReviewed  = "you have already reviewed this room"
	msgAuthRequired     = "authentication required"
	msgNoGuestProfile   = "a guest profile is required to review rooms"
	msgNotYourReview    = "you can only change your own reviews"
	msgRatingRangeOrder = "min_rating must not be greater than max_rating"
)

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReviewsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReviewResponse, error)
	Update(ctx context.Context, req dto.UpdateReviewRequest, id string) error
	Delete(ctx context.Context, id string) error
	ByRoom(ctx context.Context, roomID string, req gDto.QueryParams) (dto.GetReviewsResponse, error)
}

type serviceImpl struct {
	repo      repository.Review
	roomRepo  roomRepo.Room
	guestRepo guestRepo.Guest
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Review, roomRepo roomRepo.Room, guestRepo guestRepo.Guest, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Review {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		guestRepo: guestRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// RatingRange builds the optional rating bounds of a listing.
func RatingRange(minRating, maxRating *int) ([]any, error) {
	filters := []any{}

	if minRating != nil && maxRating != nil && *minRating > *maxRating {
		return nil, failure.BadRequestFromString(msgRatingRangeOrder)
	}

	if minRating != nil {
		filters = append(filters, repository.RatingAtLeast(*minRating))
	}

	if maxRating != nil {
		filters = append(filters, repository.RatingAtMost(*maxRating))
	}

	return filters, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guestID, err := s.callerGuestID(ctx)
	if err != nil {
		return res, err
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room")

		return res, fmt.Errorf("failed to check room: %w", err)
	}

	if !exist {
		return res, failure.NotFound(msgRoomMissing)
	}

	review := req.ToModel(guestID, shared.Actor(ctx))

	if err = s.repo.Insert(ctx, review); err != nil {
		log.Error().Err(err).Msg("failed to create review")

		return res, failure.FromPQ(fmt.Errorf("failed to create review: %w", err), msgAlreadyReviewed)
	}

	s.invalidate(ctx, review.ID)
	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReview, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for reviews")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reviews to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReview, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save review count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetReview, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	review, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(review)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save review to cache")
		}
	}()

	return res, nil
}

// Update is reserved to the author of the review.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReviewRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fields, err := req.Fields(shared.Actor(ctx))
	if err != nil {
		return err
	}

	review, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	guestID, err := s.callerGuestID(ctx)
	if err != nil {
		return err
	}

	if guestID != review.GuestID {
		return failure.Forbidden(msgNotYourReview)
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update review")

		return failure.FromPQ(fmt.Errorf("failed to update review: %w", err), constant.Empty)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete is allowed to staff and to the author.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	review, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if !shared.IsStaff(ctx) {
		guestID, err := s.callerGuestID(ctx)
		if err != nil {
			return err
		}

		if guestID != review.GuestID {
			return failure.Forbidden(msgNotYourReview)
		}
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) ByRoom(ctx context.Context, roomID string, req gDto.QueryParams) (res dto.GetReviewsResponse, err error) {
	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room")

		return res, fmt.Errorf("failed to check room: %w", err)
	}

	if !exist {
		return res, failure.NotFound(msgRoomMissing)
	}

	return s.GetAll(ctx, req, gDto.NewFilterGroup(repository.OfRoom(roomID)))
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Review, error) {
	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return review, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return review, failure.NotFound(msgReviewNotFound)
	}

	return review, nil
}

func (s *serviceImpl) callerGuestID(ctx context.Context) (string, error) {
	userID, _ := shared.UserFromContext(ctx)
	if userID == constant.Empty {
		return constant.Empty, failure.Unauthorized(msgAuthRequired)
	}

	guest, err := s.guestRepo.Get(ctx, shared.FilterByID(userID, guestModel.FieldUserID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest profile")

		return constant.Empty, fmt.Errorf("failed to get guest profile: %w", err)
	}

	if guest.ID == constant.Empty {
		return constant.Empty, failure.Forbidden(msgNoGuestProfile)
	}

	return guest.ID, nil
}

// invalidate also drops room listings and reports, which aggregate ratings.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReview, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete review from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReview)
		shared.InvalidateCaches(c, s.cache, cacheCountReview)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixRoom)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixReport)
	}()
}
