package dto

import (
	"fmt"
	"time"

	"guesthouse/internal/domains/report/model"
	"guesthouse/shared/failure"
	"guesthouse/shared/timezone"

	"github.com/shopspring/decimal"
)

const (
	minReportYear = 2000
	maxReportYear = 2100
)

// MonthlyRequest names a calendar month. Zero values mean the current month.
type MonthlyRequest struct {
	Year  int `json:"year"  validate:"omitempty,min=2000,max=2100"`
	Month int `json:"month" validate:"omitempty,min=1,max=12"`
}

// Normalize fills in the current year and month and rejects out of range values.
func (r *MonthlyRequest) Normalize() error {
	now := timezone.Now()

	if r.Year == 0 {
		r.Year = now.Year()
	}

	if r.Month == 0 {
		r.Month = int(now.Month())
	}

	if r.Year < minReportYear || r.Year > maxReportYear {
		return failure.BadRequestFromString(fmt.Sprintf("year must be between %d and %d", minReportYear, maxReportYear))
	}

	if r.Month < 1 || r.Month > 12 {
		return failure.BadRequestFromString("month must be between 1 and 12")
	}

	return nil
}

func (r MonthlyRequest) Start() time.Time {
	return time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, timezone.GetLocation())
}

func (r MonthlyRequest) DaysInMonth() int {
	return timezone.DaysIn(r.Year, time.Month(r.Month))
}

type ArchiveReportRequest struct {
	Kind string `json:"kind" validate:"required,oneof=rooms monthly bookings offers"`
	MonthlyRequest
}

type ArchiveReportResponse struct {
	Kind     string `json:"kind"`
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

type RoomStatResponse struct {
	RoomID            string          `json:"room_id"`
	RoomNumber        string          `json:"room_number"`
	RoomType          string          `json:"room_type"`
	PricePerNight     decimal.Decimal `json:"price_per_night"`
	AvgRating         decimal.Decimal `json:"avg_rating"`
	ReviewsCount      int             `json:"reviews_count"`
	TotalBookings     int             `json:"total_bookings"`
	CancelledBookings int             `json:"cancelled_bookings"`
	CancellationRate  decimal.Decimal `json:"cancellation_rate"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AvgStayNights     decimal.Decimal `json:"avg_stay_nights"`
}

func (r *RoomStatResponse) FromModel(m model.RoomStat) {
	r.RoomID = m.RoomID
	r.RoomNumber = m.RoomNumber
	r.RoomType = m.RoomType
	r.PricePerNight = m.PricePerNight
	r.AvgRating = m.AvgRating
	r.ReviewsCount = m.ReviewsCount
	r.TotalBookings = m.TotalBookings
	r.CancelledBookings = m.CancelledBookings
	r.CancellationRate = m.CancellationRate()
	r.TotalRevenue = m.TotalRevenue
	r.AvgStayNights = m.AvgStayNights
}

type RoomTypeStatResponse struct {
	RoomType      string          `json:"room_type"`
	RoomsCount    int             `json:"rooms_count"`
	BookingsCount int             `json:"bookings_count"`
	AvgPrice      decimal.Decimal `json:"avg_price"`
	AvgRating     decimal.Decimal `json:"avg_rating"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

func (r *RoomTypeStatResponse) FromModel(m model.RoomTypeStat) {
	r.RoomType = m.RoomType
	r.RoomsCount = m.RoomsCount
	r.BookingsCount = m.BookingsCount
	r.AvgPrice = m.AvgPrice
	r.AvgRating = m.AvgRating
	r.TotalRevenue = m.TotalRevenue
}

type OfferRoomResponse struct {
	OfferID            string          `json:"offer_id"`
	OfferTitle         string          `json:"offer_title"`
	RoomNumber         string          `json:"room_number"`
	RoomType           string          `json:"room_type"`
	PricePerNight      decimal.Decimal `json:"price_per_night"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price"`
}

func (r *OfferRoomResponse) FromModel(m model.OfferRoom) {
	r.OfferID = m.OfferID
	r.OfferTitle = m.OfferTitle
	r.RoomNumber = m.RoomNumber
	r.RoomType = m.RoomType
	r.PricePerNight = m.PricePerNight
	r.DiscountPercentage = m.DiscountPercentage
	r.DiscountedPrice = m.DiscountedPrice()
}

func offerRoomsFromModels(models []model.OfferRoom) []OfferRoomResponse {
	rooms := make([]OfferRoomResponse, 0, len(models))

	for _, m := range models {
		var room OfferRoomResponse

		room.FromModel(m)
		rooms = append(rooms, room)
	}

	return rooms
}

type RoomStatisticsResponse struct {
	Rooms      []RoomStatResponse     `json:"rooms"`
	RoomTypes  []RoomTypeStatResponse `json:"room_types"`
	OfferRooms []OfferRoomResponse    `json:"offer_rooms"`
}

func (r *RoomStatisticsResponse) FromModels(rooms []model.RoomStat, types []model.RoomTypeStat, offerRooms []model.OfferRoom) {
	r.Rooms = make([]RoomStatResponse, 0, len(rooms))
	for _, m := range rooms {
		var stat RoomStatResponse

		stat.FromModel(m)
		r.Rooms = append(r.Rooms, stat)
	}

	r.RoomTypes = make([]RoomTypeStatResponse, 0, len(types))
	for _, m := range types {
		var stat RoomTypeStatResponse

		stat.FromModel(m)
		r.RoomTypes = append(r.RoomTypes, stat)
	}

	r.OfferRooms = offerRoomsFromModels(offerRooms)
}

type MonthlyRoomStatResponse struct {
	RoomID         string          `json:"room_id"`
	RoomNumber     string          `json:"room_number"`
	RoomType       string          `json:"room_type"`
	BookingsCount  int             `json:"bookings_count"`
	Revenue        decimal.Decimal `json:"revenue"`
	OccupiedNights int             `json:"occupied_nights"`
	OccupancyRate  decimal.Decimal `json:"occupancy_rate"`
	ReviewsCount   int             `json:"reviews_count"`
	AvgRating      decimal.Decimal `json:"avg_rating"`
}

type MonthlySummary struct {
	TotalBookings    int             `json:"total_bookings"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalReviews     int             `json:"total_reviews"`
	AvgRating        decimal.Decimal `json:"avg_rating"`
	AvgOccupancyRate decimal.Decimal `json:"avg_occupancy_rate"`
}

type MonthlyReportResponse struct {
	Year        int                       `json:"year"`
	Month       int                       `json:"month"`
	DaysInMonth int                       `json:"days_in_month"`
	Rooms       []MonthlyRoomStatResponse `json:"rooms"`
	Summary     MonthlySummary            `json:"summary"`
}

// FromModels fills the per-room rows and the month summary. The summary rating only averages
// rooms reviewed within the month.
func (r *MonthlyReportResponse) FromModels(req MonthlyRequest, models []model.MonthlyRoomStat) {
	r.Year = req.Year
	r.Month = req.Month
	r.DaysInMonth = req.DaysInMonth()
	r.Rooms = make([]MonthlyRoomStatResponse, 0, len(models))

	ratingSum, rated := decimal.Zero, 0
	occupancySum := decimal.Zero

	r.Summary.TotalRevenue = decimal.Zero

	for _, m := range models {
		stat := MonthlyRoomStatResponse{
			RoomID:         m.RoomID,
			RoomNumber:     m.RoomNumber,
			RoomType:       m.RoomType,
			BookingsCount:  m.BookingsCount,
			Revenue:        m.Revenue,
			OccupiedNights: m.OccupiedNights,
			OccupancyRate:  m.OccupancyRate(r.DaysInMonth),
			ReviewsCount:   m.ReviewsCount,
			AvgRating:      m.AvgRating,
		}

		r.Rooms = append(r.Rooms, stat)
		r.Summary.TotalBookings += m.BookingsCount
		r.Summary.TotalRevenue = r.Summary.TotalRevenue.Add(m.Revenue)
		r.Summary.TotalReviews += m.ReviewsCount
		occupancySum = occupancySum.Add(stat.OccupancyRate)

		if m.ReviewsCount > 0 {
			ratingSum = ratingSum.Add(m.AvgRating)
			rated++
		}
	}

	r.Summary.AvgRating = decimal.Zero
	if rated > 0 {
		r.Summary.AvgRating = ratingSum.Div(decimal.NewFromInt(int64(rated))).Round(2)
	}

	r.Summary.AvgOccupancyRate = decimal.Zero
	if len(models) > 0 {
		r.Summary.AvgOccupancyRate = occupancySum.Div(decimal.NewFromInt(int64(len(models)))).Round(2)
	}
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type RecentBookingResponse struct {
	ID         string          `json:"id"`
	GuestName  string          `json:"guest_name"`
	RoomNumber string          `json:"room_number"`
	CheckIn    string          `json:"check_in"`
	CheckOut   string          `json:"check_out"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

type BookingReportResponse struct {
	Total    int                     `json:"total"`
	Statuses []StatusCountResponse   `json:"statuses"`
	Recent   []RecentBookingResponse `json:"recent"`
}

func (r *BookingReportResponse) FromModels(counts []model.StatusCount, recent []model.RecentBooking) {
	r.Total = 0
	r.Statuses = make([]StatusCountResponse, 0, len(counts))

	for _, c := range counts {
		r.Total += c.Count
		r.Statuses = append(r.Statuses, StatusCountResponse{Status: c.Status, Count: c.Count})
	}

	r.Recent = make([]RecentBookingResponse, 0, len(recent))

	for _, b := range recent {
		r.Recent = append(r.Recent, RecentBookingResponse{
			ID:         b.ID,
			GuestName:  b.GuestName(),
			RoomNumber: b.RoomNumber,
			CheckIn:    b.CheckIn.Format(time.DateOnly),
			CheckOut:   b.CheckOut.Format(time.DateOnly),
			Status:     b.Status,
			TotalPrice: b.TotalPrice,
			CreatedAt:  b.CreatedAt,
		})
	}
}

type OfferStatResponse struct {
	OfferID            string              `json:"offer_id"`
	Title              string              `json:"title"`
	IsActive           bool                `json:"is_active"`
	TotalApplications  int                 `json:"total_applications"`
	ActiveApplications int                 `json:"active_applications"`
	Rooms              []OfferRoomResponse `json:"rooms"`
}

type OfferReportResponse struct {
	Offers []OfferStatResponse `json:"offers"`
}

// FromModels groups the rooms in force under the offer they belong to.
func (r *OfferReportResponse) FromModels(stats []model.OfferStat, rooms []model.OfferRoom) {
	byOffer := map[string][]model.OfferRoom{}
	for _, room := range rooms {
		byOffer[room.OfferID] = append(byOffer[room.OfferID], room)
	}

	r.Offers = make([]OfferStatResponse, 0, len(stats))

	for _, s := range stats {
		r.Offers = append(r.Offers, OfferStatResponse{
			OfferID:            s.OfferID,
			Title:              s.Title,
			IsActive:           s.IsActive,
			TotalApplications:  s.TotalApplications,
			ActiveApplications: s.ActiveApplications,
			Rooms:              offerRoomsFromModels(byOffer[s.OfferID]),
		})
	}
}
