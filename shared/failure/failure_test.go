package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"guesthouse/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"bad request", failure.BadRequest(errors.New("check_in is required")), http.StatusBadRequest, "check_in is required"},
		{"bad request from string", failure.BadRequestFromString("invalid id"), http.StatusBadRequest, "invalid id"},
		{"unauthorized", failure.Unauthorized("token expired"), http.StatusUnauthorized, "token expired"},
		{"forbidden", failure.Forbidden("not your booking"), http.StatusForbidden, "not your booking"},
		{"forbidden default", failure.ForbiddenError, http.StatusForbidden, "You don't have the required permissions"},
		{"not found", failure.NotFound("room not found"), http.StatusNotFound, "room not found"},
		{"conflict", failure.Conflict("room is already booked"), http.StatusConflict, "room is already booked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.EqualError(t, tt.err, tt.wantMsg)
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", failure.Conflict("overlap"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}

func TestFromPQ(t *testing.T) {
	plain := errors.New("boom")

	tests := []struct {
		name        string
		err         error
		conflictMsg string
		wantCode    int
		wantMsg     string
	}{
		{
			name:        "unique violation",
			err:         &pq.Error{Code: "23505", Constraint: "reviews_guest_room_key"},
			conflictMsg: "room already reviewed",
			wantCode:    http.StatusConflict,
			wantMsg:     "room already reviewed",
		},
		{
			name:     "unique violation without message",
			err:      fmt.Errorf("insert amenity: %w", &pq.Error{Code: "23505"}),
			wantCode: http.StatusConflict,
			wantMsg:  "resource already exists",
		},
		{
			name:     "foreign key violation",
			err:      &pq.Error{Code: "23503", Constraint: "bookings_room_id_fkey"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "referenced resource does not exist",
		},
		{
			name:     "known check violation",
			err:      &pq.Error{Code: "23514", Constraint: "bookings_check_out_after_check_in"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "check_out must be after check_in",
		},
		{
			name:     "unknown check violation",
			err:      &pq.Error{Code: "23514", Constraint: "rooms_floor_check"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "value violates constraint rooms_floor_check",
		},
		{
			name:     "serialization failure is kept",
			err:      &pq.Error{Code: "40001", Message: "could not serialize access"},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "pq: could not serialize access",
		},
		{
			name:     "plain error is kept",
			err:      plain,
			wantCode: http.StatusInternalServerError,
			wantMsg:  "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := failure.FromPQ(tt.err, tt.conflictMsg)

			require.Error(t, got)
			assert.Equal(t, tt.wantCode, failure.GetCode(got))
			assert.EqualError(t, got, tt.wantMsg)
		})
	}
}
