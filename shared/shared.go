package shared

import (
	"context"
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	"guesthouse/shared/dto"
	"guesthouse/shared/failure"
	"guesthouse/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const cacheKeySeparator = ":"

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func ConvertStringToInt(value string) (int, error) {
	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, failure.BadRequestFromString(fmt.Sprintf("%q is not a valid integer", value))
	}

	return intValue, nil
}

func ConvertStringToDecimal(value string) (decimal.Decimal, error) {
	dec, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, failure.BadRequestFromString(fmt.Sprintf("%q is not a valid number", value))
	}

	return dec, nil
}

// ParseDate parses a YYYY-MM-DD value in the application timezone.
func ParseDate(value string) (time.Time, error) {
	date, err := timezone.Parse(constant.DateOnlyFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, failure.BadRequestFromString(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value))
	}

	return date, nil
}

// Today returns the current date at midnight in the application timezone.
func Today() time.Time {
	return timezone.Today()
}

// DateRangeFilters turns the optional fromParam/toParam query values into filters on field.
// Both ends are inclusive days.
func DateRangeFilters(values url.Values, table, field, fromParam, toParam string) ([]any, error) {
	filters := []any{}

	if from := values.Get(fromParam); from != "" {
		date, err := ParseDate(from)
		if err != nil {
			return nil, err
		}

		filters = append(filters, dto.Filter{
			ArgName:  fromParam,
			Field:    field,
			Operator: dto.FilterOperatorGreaterEq,
			Value:    date,
			Table:    table,
		})
	}

	if to := values.Get(toParam); to != "" {
		date, err := ParseDate(to)
		if err != nil {
			return nil, err
		}

		filters = append(filters, dto.Filter{
			ArgName:  toParam,
			Field:    field,
			Operator: dto.FilterOperatorLess,
			Value:    date.AddDate(0, 0, 1),
			Table:    table,
		})
	}

	return filters, nil
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields turns a patch struct into the column map of a partial UPDATE. Zero values are left
// out, so flags that may be switched off (is_available, is_active) are declared as pointers.
func TransformFields(data any, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// UserFromContext returns the authenticated user id and role placed in the context by the auth middleware.
func UserFromContext(ctx context.Context) (userID, role string) {
	userID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	role, _ = ctx.Value(constant.ContextKeyUserRole).(string)

	return userID, role
}

// Actor names the caller in created_by/modified_by columns.
func Actor(ctx context.Context) string {
	if email, _ := ctx.Value(constant.ContextKeyUserEmail).(string); email != "" {
		return email
	}

	return constant.SystemUser
}

func IsStaff(ctx context.Context) bool {
	_, role := UserFromContext(ctx)

	return slices.Contains(constant.StaffRoles, role)
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from pagination and the rendered filter.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	payload, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		payload = []byte(fmt.Sprintf("%v|%s|%v", params, where, args))
	}

	sum := sha1.Sum(payload) //nolint:gosec

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches drops every key under prefix. Errors are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
