package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/internal/domains/document/model"
	gDto "guesthouse/shared/dto"
	gRepo "guesthouse/shared/repository"
)

type Document interface {
	Insert(ctx context.Context, model model.Document) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Document, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Document, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Document]
}

func New(db *postgres.Connection, otel otel.Otel) Document {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Document](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// VisibleTo limits documents to public ones and, for a signed-in user, their own uploads.
func VisibleTo(userID string) gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{
				ArgName:  "visible_public",
				Field:    model.FieldIsPublic,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	group.AddWhen(userID != "", gDto.Filter{
		ArgName:  "visible_uploader",
		Field:    model.FieldUploadedBy,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    model.TableName,
	})

	return group
}
