// Package validation checks request bodies and renders failures in the
// {"msg", "param", "location"} shape clients expect.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/theleywin/devconnector/src/models"
)

// Accepted date layouts, most specific first
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})

	return v
}

// Struct validates a request body. It returns nil or a validation AppError
// with one entry per failing field, in field order.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return models.NewInternalError(err)
	}

	t := reflect.Indirect(reflect.ValueOf(v)).Type()
	fields := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, models.FieldError{
			Msg:      message(t, fe),
			Param:    fe.Field(),
			Location: "body",
		})
	}
	return models.NewValidationError(fields...)
}

func message(t reflect.Type, fe validator.FieldError) string {
	if field, ok := t.FieldByName(fe.StructField()); ok {
		if msg := field.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("%s failed on the %s rule.", fe.Field(), fe.Tag())
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}
