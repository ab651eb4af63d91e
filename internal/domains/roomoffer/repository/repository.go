package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/internal/domains/roomoffer/model"
	gDto "guesthouse/shared/dto"
	gRepo "guesthouse/shared/repository"
)

type RoomOffer interface {
	Insert(ctx context.Context, model model.RoomSpecialOffer) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomSpecialOffer, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomSpecialOffer, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.RoomSpecialOffer]
}

func New(db *postgres.Connection, otel otel.Otel) RoomOffer {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RoomSpecialOffer](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
