package service

import (
	"fmt"
	"strconv"
	"time"

	"guesthouse/infras/pdf"
	"guesthouse/internal/domains/report/model/dto"

	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

func money(value decimal.Decimal) string {
	return value.StringFixed(moneyPlaces)
}

func rating(value decimal.Decimal) string {
	return value.StringFixed(1)
}

func rate(value decimal.Decimal) string {
	return value.StringFixed(1) + "%"
}

func roomStatisticsDocument(res dto.RoomStatisticsResponse) pdf.Document {
	rooms := &pdf.Table{
		Headers: []string{"Room", "Type", "Price/night", "Avg rating", "Bookings", "Cancelled", "Cancel rate", "Revenue", "Avg stay"},
	}

	for _, r := range res.Rooms {
		rooms.Rows = append(rooms.Rows, []string{
			r.RoomNumber,
			r.RoomType,
			money(r.PricePerNight),
			rating(r.AvgRating),
			strconv.Itoa(r.TotalBookings),
			strconv.Itoa(r.CancelledBookings),
			rate(r.CancellationRate),
			money(r.TotalRevenue),
			r.AvgStayNights.StringFixed(1),
		})
	}

	types := &pdf.Table{
		Headers: []string{"Room type", "Rooms", "Bookings", "Avg price", "Avg rating", "Revenue"},
	}

	for _, t := range res.RoomTypes {
		types.Rows = append(types.Rows, []string{
			t.RoomType,
			strconv.Itoa(t.RoomsCount),
			strconv.Itoa(t.BookingsCount),
			money(t.AvgPrice),
			rating(t.AvgRating),
			money(t.TotalRevenue),
		})
	}

	offers := pdf.Section{Heading: "Rooms with active special offers"}

	if len(res.OfferRooms) == 0 {
		offers.Paragraphs = []string{"No special offers are in force today."}
	} else {
		offers.Table = &pdf.Table{Headers: []string{"Room", "Type", "Offer", "Price", "Discounted", "Discount"}}

		for _, o := range res.OfferRooms {
			offers.Table.Rows = append(offers.Table.Rows, []string{
				o.RoomNumber,
				o.RoomType,
				o.OfferTitle,
				money(o.PricePerNight),
				money(o.DiscountedPrice),
				rate(o.DiscountPercentage),
			})
		}
	}

	return pdf.Document{
		Title: "Guesthouse room statistics",
		Sections: []pdf.Section{
			{Heading: "Rooms", Table: rooms},
			{Heading: "Room types", Table: types},
			offers,
		},
	}
}

func monthlyDocument(res dto.MonthlyReportResponse) pdf.Document {
	month := time.Month(res.Month).String()

	rooms := &pdf.Table{
		Headers: []string{"Room", "Bookings", "Revenue", "Occupied nights", "Occupancy", "Rating", "Reviews"},
	}

	for _, r := range res.Rooms {
		rooms.Rows = append(rooms.Rows, []string{
			r.RoomNumber,
			strconv.Itoa(r.BookingsCount),
			money(r.Revenue),
			strconv.Itoa(r.OccupiedNights),
			rate(r.OccupancyRate),
			rating(r.AvgRating),
			strconv.Itoa(r.ReviewsCount),
		})
	}

	summary := &pdf.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Bookings", strconv.Itoa(res.Summary.TotalBookings)},
			{"Revenue", money(res.Summary.TotalRevenue)},
			{"Reviews", strconv.Itoa(res.Summary.TotalReviews)},
			{"Average rating", rating(res.Summary.AvgRating)},
			{"Average occupancy", rate(res.Summary.AvgOccupancyRate)},
		},
	}

	return pdf.Document{
		Title: fmt.Sprintf("Monthly report for %s %d", month, res.Year),
		Sections: []pdf.Section{
			{
				Heading:    "Rooms",
				Paragraphs: []string{fmt.Sprintf("Occupancy is measured against %d days.", res.DaysInMonth)},
				Table:      rooms,
			},
			{Heading: "Summary", Table: summary},
		},
	}
}

func bookingDocument(res dto.BookingReportResponse) pdf.Document {
	statuses := &pdf.Table{Headers: []string{"Status", "Count"}}

	for _, s := range res.Statuses {
		statuses.Rows = append(statuses.Rows, []string{s.Status, strconv.Itoa(s.Count)})
	}

	recent := &pdf.Table{Headers: []string{"Guest", "Room", "Check-in", "Check-out", "Status", "Total"}}

	for _, b := range res.Recent {
		recent.Rows = append(recent.Rows, []string{
			b.GuestName,
			b.RoomNumber,
			b.CheckIn,
			b.CheckOut,
			b.Status,
			money(b.TotalPrice),
		})
	}

	return pdf.Document{
		Title: "Booking report",
		Sections: []pdf.Section{
			{
				Heading:    "Bookings by status",
				Paragraphs: []string{fmt.Sprintf("%d bookings in total.", res.Total)},
				Table:      statuses,
			},
			{Heading: "Recent bookings", Table: recent},
		},
	}
}

func offerDocument(res dto.OfferReportResponse) pdf.Document {
	popular := &pdf.Table{Headers: []string{"Offer", "Applications", "In force", "Active"}}

	for _, o := range res.Offers {
		popular.Rows = append(popular.Rows, []string{
			o.Title,
			strconv.Itoa(o.TotalApplications),
			strconv.Itoa(o.ActiveApplications),
			strconv.FormatBool(o.IsActive),
		})
	}

	sections := []pdf.Section{{Heading: "Popular offers", Table: popular}}

	for _, o := range res.Offers {
		section := pdf.Section{Heading: "Offer: " + o.Title}

		if len(o.Rooms) == 0 {
			section.Paragraphs = []string{"No active applications."}
		} else {
			section.Table = &pdf.Table{Headers: []string{"Room", "Type", "Price", "Discounted"}}

			for _, r := range o.Rooms {
				section.Table.Rows = append(section.Table.Rows, []string{
					r.RoomNumber,
					r.RoomType,
					money(r.PricePerNight),
					money(r.DiscountedPrice),
				})
			}
		}

		sections = append(sections, section)
	}

	return pdf.Document{
		Title:    "Special offers report",
		Sections: sections,
	}
}
