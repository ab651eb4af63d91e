package failure

import (
	"errors"
	"net/http"

	"guesthouse/shared/constant"

	"github.com/lib/pq"
)

// Failure is an error that knows its HTTP status code.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

const (
	msgDefaultConflict = "resource already exists"
	msgMissingRelation = "referenced resource does not exist"
)

// checkMessages explains the CHECK constraints of the schema to API callers.
var checkMessages = map[string]string{
	"bookings_check_out_after_check_in":  "check_out must be after check_in",
	"bookings_guests_count_check":        "guests_count must be positive",
	"bookings_status_check":              "unknown booking status",
	"documents_file_type_check":          "unsupported document file type",
	"rooms_price_per_night_check":        "price_per_night must not be negative",
	"rooms_max_occupancy_check":          "max_occupancy must be positive",
	"payments_amount_check":              "amount must be positive",
	"payments_method_check":              "unknown payment method",
	"payments_status_check":              "unknown payment status",
	"reviews_rating_check":               "rating must be between 1 and 5",
	"room_special_offers_window_check":   "end_date must not be before start_date",
	"room_special_offers_discount_check": "discount_percentage must be between 0 and 100",
	"special_offers_price_check":         "price must not be negative",
	"users_level_check":                  "unknown user level",
}

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest keeps nil as nil so it can wrap validator results directly.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Message: err.Error()}
}

func BadRequestFromString(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) error {
	return &Failure{Code: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &Failure{Code: http.StatusForbidden, Message: msg}
}

// NotFound takes the name of the missing entity, e.g. "room not found".
func NotFound(entityName string) error {
	return &Failure{Code: http.StatusNotFound, Message: entityName}
}

func Conflict(message string) error {
	return &Failure{Code: http.StatusConflict, Message: message}
}

// GetCode returns 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// FromPQ maps constraint violations reported by postgres to a Failure. Other errors are returned untouched.
func FromPQ(err error, conflictMsg string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation:
		if conflictMsg == "" {
			conflictMsg = msgDefaultConflict
		}

		return Conflict(conflictMsg)
	case constant.PqErrorCodeFkViolation:
		return BadRequestFromString(msgMissingRelation)
	case constant.PqErrorCodeCheckViolation:
		if msg, ok := checkMessages[pqErr.Constraint]; ok {
			return BadRequestFromString(msg)
		}

		return BadRequestFromString("value violates constraint " + pqErr.Constraint)
	}

	return err
}
