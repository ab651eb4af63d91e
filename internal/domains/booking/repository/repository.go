package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	gRepo "guesthouse/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	WithRoomLock(ctx context.Context, roomID string, fn func(tx *sqlx.Tx) error) error
	HasOverlapTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// WithRoomLock runs fn in a transaction holding the row lock of the room, so concurrent
// bookings of one room are checked and written one after another.
func (r *repositoryImpl) WithRoomLock(ctx context.Context, roomID string, fn func(tx *sqlx.Tx) error) error {
	return r.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var lockedID string

		if err := r.GetRawTx(ctx, tx, &lockedID, `SELECT id FROM rooms WHERE id = :room_id FOR UPDATE`,
			map[string]any{"room_id": roomID}); err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		return fn(tx)
	})
}

// HasOverlapTx reports whether a confirmed booking of the room other than excludeID shares a night with the stay.
func (r *repositoryImpl) HasOverlapTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (
		SELECT 1 FROM %s
		WHERE %s = :room_id AND %s = :status AND %s < :check_out AND %s > :check_in AND CAST(%s AS text) <> :exclude_id
	)`, model.TableName, model.FieldRoomID, model.FieldStatus, model.FieldCheckIn, model.FieldCheckOut, model.FieldID)

	var exists bool

	err := r.GetRawTx(ctx, sqltx, &exists, query, map[string]any{
		"room_id":    roomID,
		"status":     model.StatusConfirmed,
		"check_in":   checkIn.Format(constant.DateOnlyFormat),
		"check_out":  checkOut.Format(constant.DateOnlyFormat),
		"exclude_id": excludeID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	return exists, nil
}
