package repository_test

import (
	"testing"
	"time"

	"guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/booking/repository"
	gDto "guesthouse/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestStayingOn(t *testing.T) {
	group := gDto.NewFilterGroup(repository.StayingOn(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))...)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.check_in <= :staying_from AND bookings.check_out >= :staying_to)", where)
	assert.Equal(t, "2025-07-10", args["staying_from"])
	assert.Equal(t, "2025-07-10", args["staying_to"])
}

func TestNightsAtLeast(t *testing.T) {
	filter := repository.NightsAtLeast(7)

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.check_out - bookings.check_in >= :min_nights)", where)
	assert.Equal(t, 7, args["min_nights"])
}

func TestStatusScopes(t *testing.T) {
	group := gDto.NewFilterGroup(repository.WithStatus(model.StatusConfirmed), repository.NotCancelled())

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.status = :status AND bookings.status != :not_status)", where)
	assert.Equal(t, model.StatusConfirmed, args["status"])
	assert.Equal(t, model.StatusCancelled, args["not_status"])
}
