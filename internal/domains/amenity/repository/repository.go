package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/internal/domains/amenity/model"
	"guesthouse/shared"
	gDto "guesthouse/shared/dto"
	gRepo "guesthouse/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Amenity interface {
	Insert(ctx context.Context, model model.Amenity) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Amenity, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Amenity, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetByRoom(ctx context.Context, roomID string) ([]model.Amenity, error)
	ReplaceRoomAmenities(ctx context.Context, roomID string, amenityIDs []string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Amenity]
	links gRepo.Repository[model.RoomAmenity]
}

func New(db *postgres.Connection, otel otel.Otel) Amenity {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Amenity](model.EntityName, model.TableName, model.FieldID, db, otel),
		links:      gRepo.NewRepository[model.RoomAmenity](model.EntityRoomAmenity, model.TableRoomAmenities, model.FieldRoomID, db, otel),
	}
}

// GetByRoom lists the amenities of a room ordered by name.
func (r *repositoryImpl) GetByRoom(ctx context.Context, roomID string) ([]model.Amenity, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
		INNER JOIN %s ON %s.%s = %s.%s
		WHERE %s.%s = :room_id
		ORDER BY %s.%s`,
		r.SelectColumns(ctx), model.TableName,
		model.TableRoomAmenities, model.TableRoomAmenities, model.FieldAmenityID, model.TableName, model.FieldID,
		model.TableRoomAmenities, model.FieldRoomID,
		model.TableName, model.FieldName,
	)

	amenities := []model.Amenity{}

	if err := r.SelectRaw(ctx, &amenities, query, map[string]any{"room_id": roomID}); err != nil {
		return nil, fmt.Errorf("failed to get room amenities: %w", err)
	}

	return amenities, nil
}

// ReplaceRoomAmenities swaps the amenity set of a room in one transaction.
func (r *repositoryImpl) ReplaceRoomAmenities(ctx context.Context, roomID string, amenityIDs []string) error {
	links := make([]model.RoomAmenity, len(amenityIDs))
	for i, id := range amenityIDs {
		links[i] = model.RoomAmenity{RoomID: roomID, AmenityID: id}
	}

	return r.links.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		roomFilter := shared.FilterByID(roomID, model.FieldRoomID, model.TableRoomAmenities)

		if err := r.links.DeleteTx(ctx, tx, roomFilter); err != nil {
			return fmt.Errorf("failed to clear room amenities: %w", err)
		}

		if err := r.links.InsertBulkTx(ctx, tx, links); err != nil {
			return fmt.Errorf("failed to link room amenities: %w", err)
		}

		return nil
	})
}

