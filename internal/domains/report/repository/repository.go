package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	bookingModel "guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/report/model"
	"guesthouse/shared/constant"
	gRepo "guesthouse/shared/repository"
)

// Reviews and bookings are aggregated in separate subqueries; joining both to rooms at once
// would multiply every booking by every review of the room.
const (
	queryRoomStatistics = `
		SELECT
			rooms.id AS room_id,
			rooms.room_number,
			rooms.room_type,
			rooms.price_per_night,
			COALESCE(rated.avg_rating, 0) AS avg_rating,
			COALESCE(rated.reviews_count, 0) AS reviews_count,
			COALESCE(booked.total_bookings, 0) AS total_bookings,
			COALESCE(booked.cancelled_bookings, 0) AS cancelled_bookings,
			COALESCE(booked.confirmed_bookings, 0) AS confirmed_bookings,
			COALESCE(booked.confirmed_nights, 0) * rooms.price_per_night AS total_revenue,
			COALESCE(booked.avg_stay_nights, 0) AS avg_stay_nights
		FROM rooms
		LEFT JOIN (
			SELECT room_id, ROUND(AVG(rating), 2) AS avg_rating, COUNT(*) AS reviews_count
			FROM reviews
			GROUP BY room_id
		) rated ON rated.room_id = rooms.id
		LEFT JOIN (
			SELECT
				room_id,
				COUNT(*) AS total_bookings,
				COUNT(*) FILTER (WHERE status = :cancelled) AS cancelled_bookings,
				COUNT(*) FILTER (WHERE status = :confirmed) AS confirmed_bookings,
				SUM(check_out - check_in) FILTER (WHERE status = :confirmed) AS confirmed_nights,
				ROUND(AVG(check_out - check_in) FILTER (WHERE status = :confirmed), 2) AS avg_stay_nights
			FROM bookings
			GROUP BY room_id
		) booked ON booked.room_id = rooms.id
		ORDER BY rooms.room_number`

	queryRoomTypeStatistics = `
		SELECT
			rooms.room_type,
			COUNT(*) AS rooms_count,
			COALESCE(SUM(booked.bookings), 0) AS bookings_count,
			ROUND(AVG(rooms.price_per_night), 2) AS avg_price,
			COALESCE(MAX(rated.avg_rating), 0) AS avg_rating,
			COALESCE(SUM(booked.nights * rooms.price_per_night), 0) AS total_revenue
		FROM rooms
		LEFT JOIN (
			SELECT room_id, COUNT(*) AS bookings, SUM(check_out - check_in) AS nights
			FROM bookings
			WHERE status = :confirmed
			GROUP BY room_id
		) booked ON booked.room_id = rooms.id
		LEFT JOIN (
			SELECT rooms.room_type, ROUND(AVG(reviews.rating), 2) AS avg_rating
			FROM reviews
			INNER JOIN rooms ON rooms.id = reviews.room_id
			GROUP BY rooms.room_type
		) rated ON rated.room_type = rooms.room_type
		GROUP BY rooms.room_type
		ORDER BY bookings_count DESC, rooms.room_type`

	queryMonthlyStatistics = `
		SELECT
			rooms.id AS room_id,
			rooms.room_number,
			rooms.room_type,
			COALESCE(stays.bookings_count, 0) AS bookings_count,
			COALESCE(stays.booked_nights, 0) * rooms.price_per_night AS revenue,
			COALESCE(stays.occupied_nights, 0) AS occupied_nights,
			COALESCE(rated.reviews_count, 0) AS reviews_count,
			COALESCE(rated.avg_rating, 0) AS avg_rating
		FROM rooms
		LEFT JOIN (
			SELECT
				room_id,
				COUNT(*) FILTER (WHERE check_in >= :month_start AND check_in < :month_end) AS bookings_count,
				SUM(check_out - check_in) FILTER (WHERE check_in >= :month_start AND check_in < :month_end) AS booked_nights,
				SUM(LEAST(check_out, :month_end) - GREATEST(check_in, :month_start)) AS occupied_nights
			FROM bookings
			WHERE status = :confirmed AND check_in < :month_end AND check_out > :month_start
			GROUP BY room_id
		) stays ON stays.room_id = rooms.id
		LEFT JOIN (
			SELECT room_id, COUNT(*) AS reviews_count, ROUND(AVG(rating), 2) AS avg_rating
			FROM reviews
			WHERE review_date >= :reviewed_from AND review_date < :reviewed_to
			GROUP BY room_id
		) rated ON rated.room_id = rooms.id
		ORDER BY rooms.room_number`

	queryStatusSummary = `
		SELECT status, COUNT(*) AS count
		FROM bookings
		GROUP BY status
		ORDER BY status`

	queryRecentBookings = `
		SELECT
			bookings.id,
			guests.first_name AS guest_first_name,
			guests.last_name AS guest_last_name,
			rooms.room_number,
			bookings.check_in,
			bookings.check_out,
			bookings.status,
			bookings.total_price,
			bookings.created_at
		FROM bookings
		INNER JOIN guests ON guests.id = bookings.guest_id
		INNER JOIN rooms ON rooms.id = bookings.room_id
		ORDER BY bookings.created_at DESC
		LIMIT :limit`

	queryOfferStatistics = `
		SELECT
			special_offers.id AS offer_id,
			special_offers.title,
			special_offers.is_active,
			COUNT(room_special_offers.id) AS total_applications,
			COUNT(room_special_offers.id) FILTER (
				WHERE room_special_offers.is_active AND :day BETWEEN room_special_offers.start_date AND room_special_offers.end_date
			) AS active_applications
		FROM special_offers
		LEFT JOIN room_special_offers ON room_special_offers.special_offer_id = special_offers.id
		GROUP BY special_offers.id
		ORDER BY total_applications DESC, special_offers.title`

	queryOfferRooms = `
		SELECT
			special_offers.id AS offer_id,
			special_offers.title AS offer_title,
			rooms.room_number,
			rooms.room_type,
			rooms.price_per_night,
			room_special_offers.discount_percentage
		FROM room_special_offers
		INNER JOIN special_offers ON special_offers.id = room_special_offers.special_offer_id
		INNER JOIN rooms ON rooms.id = room_special_offers.room_id
		WHERE room_special_offers.is_active AND :day BETWEEN room_special_offers.start_date AND room_special_offers.end_date
		ORDER BY special_offers.title, rooms.room_number`
)

type Report interface {
	RoomStatistics(ctx context.Context) ([]model.RoomStat, error)
	RoomTypeStatistics(ctx context.Context) ([]model.RoomTypeStat, error)
	MonthlyStatistics(ctx context.Context, monthStart time.Time) ([]model.MonthlyRoomStat, error)
	StatusSummary(ctx context.Context) ([]model.StatusCount, error)
	RecentBookings(ctx context.Context, limit int) ([]model.RecentBooking, error)
	OfferStatistics(ctx context.Context, day time.Time) ([]model.OfferStat, error)
	OfferRooms(ctx context.Context, day time.Time) ([]model.OfferRoom, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.RoomStat]
}

func New(db *postgres.Connection, otel otel.Otel) Report {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RoomStat](model.EntityName, model.TableName, "id", db, otel),
	}
}

func (r *repositoryImpl) RoomStatistics(ctx context.Context) ([]model.RoomStat, error) {
	stats := []model.RoomStat{}

	if err := r.SelectRaw(ctx, &stats, queryRoomStatistics, map[string]any{
		"confirmed": bookingModel.StatusConfirmed,
		"cancelled": bookingModel.StatusCancelled,
	}); err != nil {
		return nil, fmt.Errorf("failed to select room statistics: %w", err)
	}

	return stats, nil
}

func (r *repositoryImpl) RoomTypeStatistics(ctx context.Context) ([]model.RoomTypeStat, error) {
	stats := []model.RoomTypeStat{}

	if err := r.SelectRaw(ctx, &stats, queryRoomTypeStatistics, map[string]any{
		"confirmed": bookingModel.StatusConfirmed,
	}); err != nil {
		return nil, fmt.Errorf("failed to select room type statistics: %w", err)
	}

	return stats, nil
}

// MonthlyStatistics covers the calendar month starting at monthStart.
func (r *repositoryImpl) MonthlyStatistics(ctx context.Context, monthStart time.Time) ([]model.MonthlyRoomStat, error) {
	stats := []model.MonthlyRoomStat{}
	monthEnd := monthStart.AddDate(0, 1, 0)

	if err := r.SelectRaw(ctx, &stats, queryMonthlyStatistics, map[string]any{
		"confirmed":     bookingModel.StatusConfirmed,
		"month_start":   monthStart.Format(constant.DateOnlyFormat),
		"month_end":     monthEnd.Format(constant.DateOnlyFormat),
		"reviewed_from": monthStart,
		"reviewed_to":   monthEnd,
	}); err != nil {
		return nil, fmt.Errorf("failed to select monthly statistics: %w", err)
	}

	return stats, nil
}

func (r *repositoryImpl) StatusSummary(ctx context.Context) ([]model.StatusCount, error) {
	counts := []model.StatusCount{}

	if err := r.SelectRaw(ctx, &counts, queryStatusSummary, nil); err != nil {
		return nil, fmt.Errorf("failed to select booking status summary: %w", err)
	}

	return counts, nil
}

func (r *repositoryImpl) RecentBookings(ctx context.Context, limit int) ([]model.RecentBooking, error) {
	bookings := []model.RecentBooking{}

	if err := r.SelectRaw(ctx, &bookings, queryRecentBookings, map[string]any{"limit": limit}); err != nil {
		return nil, fmt.Errorf("failed to select recent bookings: %w", err)
	}

	return bookings, nil
}

func (r *repositoryImpl) OfferStatistics(ctx context.Context, day time.Time) ([]model.OfferStat, error) {
	stats := []model.OfferStat{}

	if err := r.SelectRaw(ctx, &stats, queryOfferStatistics, map[string]any{
		"day": day.Format(constant.DateOnlyFormat),
	}); err != nil {
		return nil, fmt.Errorf("failed to select special offer statistics: %w", err)
	}

	return stats, nil
}

func (r *repositoryImpl) OfferRooms(ctx context.Context, day time.Time) ([]model.OfferRoom, error) {
	rooms := []model.OfferRoom{}

	if err := r.SelectRaw(ctx, &rooms, queryOfferRooms, map[string]any{
		"day": day.Format(constant.DateOnlyFormat),
	}); err != nil {
		return nil, fmt.Errorf("failed to select special offer rooms: %w", err)
	}

	return rooms, nil
}
