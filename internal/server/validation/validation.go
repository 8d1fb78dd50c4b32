// Package validation checks request payloads before they reach the
// services. Checks are syntactic only: presence, type, length and shape.
// Messages follow the "\"field\" ..." form clients already display verbatim.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/matcheat/internal/common"
	"github.com/go-playground/validator/v10"
)

// Error is a validation failure. Its message is meant for the caller as is.
type Error struct {
	Field string
	msg   string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return common.ErrValidation }

func fail(field, format string, args ...any) *Error {
	return &Error{Field: field, msg: fmt.Sprintf("%q ", field) + fmt.Sprintf(format, args...)}
}

// ErrInvalidJSON is returned when a body is not JSON at all.
var ErrInvalidJSON = &Error{msg: "invalid JSON body"}

const unknownFieldPrefix = "json: unknown field "

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// present but ""
	_ = v.RegisterValidation("nonempty", func(fl validator.FieldLevel) bool {
		return fl.Field().Len() > 0
	})

	// the domain must have at least two segments and a 2+ char TLD
	_ = v.RegisterValidation("tld", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		domain := s[strings.LastIndexByte(s, '@')+1:]
		dot := strings.LastIndexByte(domain, '.')
		return dot > 0 && dot < len(domain)-2
	})

	return v
}

// Decode parses body into dst, a pointer to one of the request structs, and
// checks it. Decoding problems (malformed JSON, wrong types, unknown keys)
// are reported before rule violations; of those only the first is returned.
func Decode(body []byte, dst any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return ErrInvalidJSON
	}

	return check(dst)
}

// check runs the struct tags of an already decoded request.
func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return ruleError(verrs[0])
}

func ruleError(fe validator.FieldError) *Error {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return fail(f, "is required")
	case "nonempty":
		return fail(f, "is not allowed to be empty")
	case "alphanum":
		return fail(f, "must only contain alpha-numeric characters")
	case "min":
		return fail(f, "length must be at least %s characters long", fe.Param())
	case "max":
		return fail(f, "length must be less than or equal to %s characters long", fe.Param())
	case "email", "tld":
		return fail(f, "must be a valid email")
	default:
		return fail(f, "is invalid")
	}
}

func decodeError(err error) error {
	var te *json.UnmarshalTypeError
	switch {
	case errors.As(err, &te):
		field := te.Field
		if field == "" {
			field = "value"
		}
		return fail(field, "must be %s", typeName(te.Type))
	case strings.HasPrefix(err.Error(), unknownFieldPrefix):
		key, uerr := strconv.Unquote(strings.TrimPrefix(err.Error(), unknownFieldPrefix))
		if uerr != nil {
			return ErrInvalidJSON
		}
		return fail(key, "is not allowed")
	default:
		return ErrInvalidJSON
	}
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Struct, reflect.Map:
		return "of type object"
	default:
		return "of type " + t.Kind().String()
	}
}
