package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/internal/domains/specialoffer/model"
	gDto "guesthouse/shared/dto"
	gRepo "guesthouse/shared/repository"
)

type SpecialOffer interface {
	Insert(ctx context.Context, model model.SpecialOffer) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.SpecialOffer, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SpecialOffer, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.SpecialOffer]
}

func New(db *postgres.Connection, otel otel.Otel) SpecialOffer {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.SpecialOffer](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
