package validator

import (
	"errors"
	"strings"
	"unicode"

	val "github.com/go-playground/validator/v10"
)

const messageSeparator = "; "

var messages = map[string]string{
	"required":    "{field} is required",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be at most {param}",
	"min":         "{field} must be at least {param}",
	"email":       "{field} must be a valid email address",
	"phone":       "{field} must be a valid phone number",
	"mimetypes":   "{field} must be one of the types {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
	"datetime":    "{field} must match the format {param}",
	"uuid":        "{field} must be a valid UUID",

	"iso3166_1_alpha2": "{field} must be an ISO 3166 country code",
}

// Cross field tags name another struct field in their param.
var fieldMessages = map[string]string{
	"gtfield":  "{field} must be after {param}",
	"gtefield": "{field} must not be before {param}",
	"eqfield":  "{field} must match {param}",
	"nefield":  "{field} must differ from {param}",
}

// snake turns a Go field name such as CheckOut or GuestID into check_out or guest_id.
func snake(name string) string {
	var b strings.Builder

	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteByte('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func describe(fieldErr val.FieldError) string {
	param := fieldErr.Param()

	tmpl, ok := messages[fieldErr.Tag()]
	if !ok {
		if tmpl, ok = fieldMessages[fieldErr.Tag()]; !ok {
			return fieldErr.Error()
		}

		param = snake(param)
	}

	return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", param).Replace(tmpl)
}

// message lists every failed field once, in declaration order.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	var (
		seen  = map[string]bool{}
		parts = make([]string, 0, len(valErrors))
	)

	for _, fieldErr := range valErrors {
		if seen[fieldErr.Namespace()] {
			continue
		}

		seen[fieldErr.Namespace()] = true
		parts = append(parts, describe(fieldErr))
	}

	return strings.Join(parts, messageSeparator)
}
