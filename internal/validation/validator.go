// Package validation turns request payloads into field→message maps, the
// same shape the API reports validation failures in. Field formats are
// checked through struct tags; cross-field rules are explicit functions
// run against the effective (merged) values.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"key-control-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report errors under the wire field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseClock(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})

	return v
}

// structErrors collects tag violations into a field→message map, picking
// the per-field message when one is registered.
func structErrors(err error, messages map[string]string) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fields
	}
	for _, fe := range verrs {
		field := fe.Field()
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			fields[field] = msg
			continue
		}
		if msg, ok := messages[field]; ok {
			fields[field] = msg
			continue
		}
		fields[field] = "Valor inválido."
	}
	return fields
}

func requiredMsg(field string) string {
	return "O campo " + field + " é obrigatório."
}

func asError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}
