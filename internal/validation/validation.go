// Package validation interprets the declarative per-field constraint tags on
// request DTOs and turns every violation into a field-level error tree. All
// failing constraints are reported, not just the first one.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// iso8601Pattern enforces the strict wire form
// YYYY-MM-DDTHH:mm:ss[.sss](Z|±HH:MM) before calendar validation.
var iso8601Pattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their wire names (json for bodies, form for query
	// params) so the error tree matches what the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimal fields validate through their float value so numeric range
	// tags (gt, gte) apply to money amounts.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("iso8601", isISO8601); err != nil {
		panic(err)
	}
	return v
}

func isISO8601(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !iso8601Pattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// ParseISO8601 parses a payload date that already passed the iso8601 rule.
func ParseISO8601(s string) (time.Time, error) {
	if !iso8601Pattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
	}
	return time.Parse(time.RFC3339, s)
}

// FieldErrors maps a JSON field name to every constraint message it violated.
type FieldErrors map[string][]string

// Add appends a violation for a field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Error implements error so a FieldErrors can travel through error returns.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return strings.Join(parts, ", ")
}

// Struct validates v against its constraint tags and returns the collected
// error tree, or nil when every constraint holds.
func Struct(v any) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// validator.InvalidValidationError and friends; surface as a
		// payload-level failure rather than panicking.
		return FieldErrors{"_payload": {"invalid request payload"}}
	}

	fe := FieldErrors{}
	for _, e := range verrs {
		fe.Add(e.Field(), messageFor(e))
	}
	return fe
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gt":
		if e.Param() == "0" {
			return "must be positive"
		}
		return "must be greater than " + e.Param()
	case "gte":
		if e.Param() == "0" {
			return "must not be negative"
		}
		return "must be at least " + e.Param()
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(e.Param()), ", ")
	case "iso8601":
		return "must be a valid ISO-8601 timestamp"
	}
	return "is invalid"
}
