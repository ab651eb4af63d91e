package service

import (
	"context"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/infras/s3"
	"guesthouse/internal/domains/document/model"
	"guesthouse/internal/domains/document/model/dto"
	"guesthouse/internal/domains/document/repository"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	"guesthouse/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetDocument    = "document:get"
	cacheGetAllDocument = "document:gets"
	cacheCountDocument  = "document:count"

	bytesPerMB = 1024 * 1024

	msgDocumentNotFound = "document not found"
	msgFileTooLarge     = "file must not be larger than %.1f MB"
	msgNotYourDocument  = "you can only change documents you uploaded"
)

type Document interface {
	Upload(ctx context.Context, req dto.UploadDocumentRequest) (dto.DocumentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDocumentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.DocumentResponse, error)
	Update(ctx context.Context, req dto.UpdateDocumentRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Document
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Document, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Document {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadDocumentRequest) (res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	limit := s.cfg.App.Upload.MaxDocumentSizeMB
	if limit > 0 && float64(req.File.Size) > limit*bytesPerMB {
		return res, failure.BadRequestFromString(fmt.Sprintf(msgFileTooLarge, limit))
	}

	now := timezone.Now()
	directory := model.Directory(now)
	objectName := s3.ObjectName(req.File.Filename)

	fileURL, err := s.s3.UploadFile(ctx, constant.Empty, directory, req.FileData, req.File, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload document")

		return res, fmt.Errorf("failed to upload document: %w", err)
	}

	userID, _ := shared.UserFromContext(ctx)
	doc := req.ToModel(userID, shared.Actor(ctx), fileURL, now)

	if err = s.repo.Insert(ctx, doc); err != nil {
		log.Error().Err(err).Msg("failed to create document")

		if delErr := s.s3.DeleteFile(ctx, constant.Empty, directory, objectName); delErr != nil {
			log.Error().Err(delErr).Msg("failed to remove orphaned document file")
		}

		return res, failure.FromPQ(fmt.Errorf("failed to create document: %w", err), constant.Empty)
	}

	s.invalidate(ctx, doc.ID)
	res.FromModel(doc)

	return res, nil
}

// GetAll lists documents the caller may see.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDocumentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.IsStaff(ctx) {
		userID, _ := shared.UserFromContext(ctx)
		filter = gDto.NewFilterGroup(filter, repository.VisibleTo(userID))
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDocument, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count documents: %w", err)
	}

	docs, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get documents")

		return res, fmt.Errorf("failed to get documents: %w", err)
	}

	res.FromModels(docs, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save documents to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountDocument, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count documents")

		return res, fmt.Errorf("failed to count documents: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save document count to cache")
		}
	}()

	return res, nil
}

// Get hides private documents of other users behind a 404.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	doc, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	userID, _ := shared.UserFromContext(ctx)
	if !doc.IsPublic && !doc.OwnedBy(userID) && !shared.IsStaff(ctx) {
		return res, failure.NotFound(msgDocumentNotFound)
	}

	res.FromModel(doc)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateDocumentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	doc, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorize(ctx, doc); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, shared.Actor(ctx))

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update document")

		return failure.FromPQ(fmt.Errorf("failed to update document: %w", err), constant.Empty)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete removes the row first, then the stored file.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	doc, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorize(ctx, doc); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete document")

		return fmt.Errorf("failed to delete document: %w", err)
	}

	if objectName := s.s3.GetObjectNameFromURL(constant.Empty, doc.File); objectName != constant.Empty {
		if err := s.s3.DeleteFile(ctx, constant.Empty, constant.Empty, objectName); err != nil {
			log.Error().Err(err).Str("object", objectName).Msg("failed to delete document file")
		}
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) authorize(ctx context.Context, doc model.Document) error {
	if shared.IsStaff(ctx) {
		return nil
	}

	userID, _ := shared.UserFromContext(ctx)
	if !doc.OwnedBy(userID) {
		return failure.Forbidden(msgNotYourDocument)
	}

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Document, error) {
	cacheKey := shared.BuildCacheKey(cacheGetDocument, id)

	var doc model.Document
	if err := s.cache.Get(ctx, cacheKey, &doc); err == nil {
		return doc, nil
	}

	doc, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get document")

		return doc, fmt.Errorf("failed to get document: %w", err)
	}

	if doc.ID == constant.Empty {
		return doc, failure.NotFound(msgDocumentNotFound)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, doc, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save document to cache")
		}
	}()

	return doc, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDocument, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete document from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDocument)
		shared.InvalidateCaches(c, s.cache, cacheCountDocument)
	}()
}
