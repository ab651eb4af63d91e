package repository

import (
	"context"
	"testing"

	"guesthouse/infras/otel/mocks"
	"guesthouse/shared/dto"
	"guesthouse/shared/model"

	"github.com/stretchr/testify/assert"
)

type stay struct {
	ID         string `db:"id"`
	RoomID     string `db:"room_id"`
	RoomNumber string `db:"room_number" table:"rooms" column:"number"`
	model.Metadata
}

func (stay) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = bookings.room_id"
}

func newStays() Repository[stay] {
	return NewRepository[stay]("stay", "bookings", "id", nil, mocks.NewOtel())
}

func TestNewRepository(t *testing.T) {
	repo := newStays()

	assert.Equal(t, []string{"id", "room_id", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
	assert.Equal(t, "bookings JOIN rooms ON rooms.id = bookings.room_id", repo.From())
	assert.Equal(t,
		"bookings.id, bookings.room_id, rooms.number AS room_number, bookings.created_at, bookings.modified_at, bookings.created_by, bookings.modified_by",
		repo.SelectColumns(context.Background()),
	)
}

func TestRepository_InsertQuery(t *testing.T) {
	repo := newStays()

	assert.Equal(t,
		"INSERT INTO bookings (id, room_id, created_at, modified_at, created_by, modified_by) VALUES (:id, :room_id, :created_at, :modified_at, :created_by, :modified_by)",
		repo.insertQuery(),
	)
}

func TestRepository_UpdateQuery(t *testing.T) {
	repo := newStays()
	ctx := context.Background()

	query, args, err := repo.updateQuery(ctx,
		map[string]any{"status": "confirmed", "modified_by": "frontdesk"},
		dto.NewFilterGroup(dto.Filter{Field: "id", Value: "b-1", Operator: dto.FilterOperatorEq, Table: "bookings"}),
	)

	assert.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET modified_by = :modified_by, status = :status  WHERE (bookings.id = :id) ", query)
	assert.Equal(t, map[string]any{"id": "b-1", "status": "confirmed", "modified_by": "frontdesk"}, args)

	_, _, err = repo.updateQuery(ctx, map[string]any{"status": "cancelled"}, dto.NewFilterGroup())
	assert.ErrorIs(t, err, errRequiredFilter)
}

func TestRepository_DeleteRequiresFilter(t *testing.T) {
	repo := newStays()

	_, _, err := repo.deleteQuery(context.Background(), dto.FilterGroup{})

	assert.ErrorIs(t, err, errRequiredFilter)
}

func TestRepository_Ordering(t *testing.T) {
	repo := newStays()

	tests := []struct {
		name   string
		params dto.QueryParams
		want   string
	}{
		{name: "base column qualified", params: dto.QueryParams{SortBy: "created_at", SortDir: dto.SortDirDesc}, want: "ORDER BY bookings.created_at DESC"},
		{name: "aliased column untouched", params: dto.QueryParams{SortBy: "room_number", SortDir: dto.SortDirAsc}, want: "ORDER BY room_number ASC"},
		{name: "explicit table kept", params: dto.QueryParams{SortBy: "rooms.number", SortDir: dto.SortDirAsc}, want: "ORDER BY rooms.number ASC"},
		{name: "no direction", params: dto.QueryParams{SortBy: "created_at"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.ordering(tt.params))
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		want     string
		wantArgs map[string]any
	}{
		{name: "page and limit", params: dto.QueryParams{Page: 3, Limit: 10}, want: "LIMIT :limit OFFSET :offset", wantArgs: map[string]any{"limit": 10, "offset": 20}},
		{name: "limit only", params: dto.QueryParams{Limit: 5}, want: "LIMIT :limit", wantArgs: map[string]any{"limit": 5}},
		{name: "unbounded", params: dto.QueryParams{}, want: "", wantArgs: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{}

			assert.Equal(t, tt.want, paginate(tt.params, args))
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
