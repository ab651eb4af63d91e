package service_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	"guesthouse/infras/pdf"
	pdfMocks "guesthouse/infras/pdf/mocks"
	s3Mocks "guesthouse/infras/s3/mocks"
	reportMocks "guesthouse/internal/domains/report/mocks"
	"guesthouse/internal/domains/report/model"
	"guesthouse/internal/domains/report/model/dto"
	"guesthouse/internal/domains/report/service"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var (
	errCacheMiss = errors.New("cache miss")
	pdfBody      = []byte("%PDF-1.3 test")
)

type fixture struct {
	svc      service.Report
	repo     *reportMocks.MockReport
	cache    *cacheMocks.MockRedisCache
	renderer *pdfMocks.MockRenderer
	s3       *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     reportMocks.NewMockReport(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		renderer: pdfMocks.NewMockRenderer(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.renderer, f.s3)

	return f
}

func (f fixture) missCache() {
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()
}

// waitForCache lets the asynchronous cache writes finish before the controller is checked.
func waitForCache() {
	time.Sleep(10 * time.Millisecond)
}

func TestReportService_RoomStatistics(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "report:rooms", gomock.Any()).Return(nil)

		_, err := f.svc.RoomStatistics(context.Background())
		assert.NoError(t, err)
	})

	t.Run("aggregates rooms types and offers", func(t *testing.T) {
		f := newFixture(t)
		f.missCache()

		f.repo.EXPECT().RoomStatistics(gomock.Any()).Return([]model.RoomStat{
			{RoomNumber: "101", TotalBookings: 4, CancelledBookings: 1, TotalRevenue: decimal.NewFromInt(9000)},
		}, nil)
		f.repo.EXPECT().RoomTypeStatistics(gomock.Any()).Return([]model.RoomTypeStat{{RoomType: "suite", RoomsCount: 1}}, nil)
		f.repo.EXPECT().OfferRooms(gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.RoomStatistics(context.Background())
		waitForCache()

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 1)
		assert.True(t, res.Rooms[0].CancellationRate.Equal(decimal.NewFromInt(25)))
		assert.Len(t, res.RoomTypes, 1)
		assert.Empty(t, res.OfferRooms)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)
		f.missCache()
		f.repo.EXPECT().RoomStatistics(gomock.Any()).Return(nil, errors.New("db down"))

		_, err := f.svc.RoomStatistics(context.Background())
		assert.Error(t, err)
	})
}

func TestReportService_Monthly(t *testing.T) {
	t.Run("invalid month", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Monthly(context.Background(), dto.MonthlyRequest{Year: 2025, Month: 14})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("reads the requested month", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "report:monthly:2025:2", gomock.Any()).Return(errCacheMiss)
		f.cache.EXPECT().Save(gomock.Any(), "report:monthly:2025:2", gomock.Any(), 3600).Return(nil)

		f.repo.EXPECT().MonthlyStatistics(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, start time.Time) ([]model.MonthlyRoomStat, error) {
				assert.Equal(t, 2025, start.Year())
				assert.Equal(t, time.February, start.Month())
				assert.Equal(t, 1, start.Day())

				return []model.MonthlyRoomStat{{RoomNumber: "101", OccupiedNights: 14, BookingsCount: 2}}, nil
			})

		res, err := f.svc.Monthly(context.Background(), dto.MonthlyRequest{Year: 2025, Month: 2})
		waitForCache()

		assert.NoError(t, err)
		assert.Equal(t, 28, res.DaysInMonth)
		assert.True(t, res.Rooms[0].OccupancyRate.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, 2, res.Summary.TotalBookings)
	})
}

func TestReportService_Bookings(t *testing.T) {
	f := newFixture(t)
	f.missCache()

	f.repo.EXPECT().StatusSummary(gomock.Any()).Return([]model.StatusCount{{Status: "confirmed", Count: 3}}, nil)
	f.repo.EXPECT().RecentBookings(gomock.Any(), model.RecentBookingsLimit).Return([]model.RecentBooking{{ID: "b-1"}}, nil)

	res, err := f.svc.Bookings(context.Background())
	waitForCache()

	assert.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Len(t, res.Recent, 1)
}

func TestReportService_SpecialOffers(t *testing.T) {
	f := newFixture(t)
	f.missCache()

	f.repo.EXPECT().OfferStatistics(gomock.Any(), gomock.Any()).Return([]model.OfferStat{{OfferID: "o-1", Title: "Spring"}}, nil)
	f.repo.EXPECT().OfferRooms(gomock.Any(), gomock.Any()).Return([]model.OfferRoom{{OfferID: "o-1", RoomNumber: "201"}}, nil)

	res, err := f.svc.SpecialOffers(context.Background())
	waitForCache()

	assert.NoError(t, err)
	assert.Len(t, res.Offers, 1)
	assert.Len(t, res.Offers[0].Rooms, 1)
}

func TestReportService_PDF(t *testing.T) {
	tests := []struct {
		name      string
		kind      string
		setupMock func(f fixture)
		wantFile  string
		wantCode  int
	}{
		{
			name: "booking report",
			kind: model.KindBookings,
			setupMock: func(f fixture) {
				f.missCache()
				f.repo.EXPECT().StatusSummary(gomock.Any()).Return(nil, nil)
				f.repo.EXPECT().RecentBookings(gomock.Any(), gomock.Any()).Return(nil, nil)
				f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, doc pdf.Document) ([]byte, error) {
					assert.Equal(t, "Booking report", doc.Title)
					assert.Len(t, doc.Sections, 2)

					return pdfBody, nil
				})
			},
			wantFile: "booking_report.pdf",
		},
		{
			name: "monthly report names the month",
			kind: model.KindMonthly,
			setupMock: func(f fixture) {
				f.missCache()
				f.repo.EXPECT().MonthlyStatistics(gomock.Any(), gomock.Any()).Return(nil, nil)
				f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, doc pdf.Document) ([]byte, error) {
					assert.Equal(t, "Monthly report for March 2025", doc.Title)

					return pdfBody, nil
				})
			},
			wantFile: "monthly_report_2025_03.pdf",
		},
		{
			name: "offer report lists offers without rooms",
			kind: model.KindOffers,
			setupMock: func(f fixture) {
				f.missCache()
				f.repo.EXPECT().OfferStatistics(gomock.Any(), gomock.Any()).Return([]model.OfferStat{{OfferID: "o-1", Title: "Winter"}}, nil)
				f.repo.EXPECT().OfferRooms(gomock.Any(), gomock.Any()).Return(nil, nil)
				f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, doc pdf.Document) ([]byte, error) {
					assert.Len(t, doc.Sections, 2)
					assert.Equal(t, []string{"No active applications."}, doc.Sections[1].Paragraphs)

					return pdfBody, nil
				})
			},
			wantFile: "special_offers_report.pdf",
		},
		{
			name:      "unknown kind",
			kind:      "guests",
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "render error",
			kind: model.KindBookings,
			setupMock: func(f fixture) {
				f.missCache()
				f.repo.EXPECT().StatusSummary(gomock.Any()).Return(nil, nil)
				f.repo.EXPECT().RecentBookings(gomock.Any(), gomock.Any()).Return(nil, nil)
				f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil, errors.New("font missing"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			fileName, body, err := f.svc.PDF(context.Background(), tt.kind, dto.MonthlyRequest{Year: 2025, Month: 3})
			waitForCache()

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantFile, fileName)
			assert.True(t, bytes.Equal(pdfBody, body))
		})
	}
}

func TestReportService_Archive(t *testing.T) {
	f := newFixture(t)
	f.missCache()

	f.repo.EXPECT().StatusSummary(gomock.Any()).Return(nil, nil)
	f.repo.EXPECT().RecentBookings(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(pdfBody, nil)
	f.s3.EXPECT().UploadFileBytes(gomock.Any(), "", gomock.Any(), gomock.Any(), constant.ContentTypePDF, pdfBody).
		DoAndReturn(func(_ context.Context, _, directory, fileName, _ string, _ []byte) (string, error) {
			assert.True(t, strings.HasPrefix(directory, model.ArchiveDirectory+"/"))
			assert.True(t, strings.HasSuffix(fileName, "_booking_report.pdf"))

			return "https://cdn.example.com/" + directory + "/" + fileName, nil
		})

	res, err := f.svc.Archive(context.Background(), dto.ArchiveReportRequest{Kind: model.KindBookings})
	waitForCache()

	assert.NoError(t, err)
	assert.Equal(t, model.KindBookings, res.Kind)
	assert.Contains(t, res.URL, res.FileName)
}
