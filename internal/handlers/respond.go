package handlers

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response is the uniform JSON envelope returned by every route.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Details []FieldError `json:"details,omitempty"`
	Stack   string       `json:"stack,omitempty"`
}

// FieldError names one offending field and the reason it was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// simpleEmailPattern is the accepted email shape: <non-space>@<non-space>.<non-space>.
var simpleEmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// newValidator builds a validator that reports JSON field names and knows
// the relaxed email rule used throughout the API.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return simpleEmailPattern.MatchString(fl.Field().String())
	})
	return v
}

// respondData writes a success envelope.
func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Response{Success: true, Data: data})
}

// respondMessage writes a success envelope carrying only a message, used
// for delete acknowledgements.
func respondMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: true, Message: message})
}

// respondError writes a failure envelope with a single message.
func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Error: message})
}

// respondValidation writes a 400 envelope listing every violation of the
// request, so a caller can fix all of them in one round trip.
func respondValidation(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success: false,
		Error:   "invalid request data",
		Details: fieldErrors(err),
	})
}

// fieldErrors converts validator violations into field/reason pairs.
func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, FieldError{Field: fieldPath(e), Message: reasonFor(e)})
	}
	return out
}

// fieldPath strips the request struct name off the violation namespace, so
// nested fields read as "client.name" or "items[0].quantity".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func reasonFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "simple_email":
		return "must be a valid email address"
	case "gte":
		if e.Param() == "0" {
			return "cannot be negative"
		}
		return "must be at least " + e.Param()
	case "min":
		switch e.Kind() {
		case reflect.Slice:
			return "must contain at least " + e.Param() + " item"
		case reflect.String:
			return "cannot be empty"
		default:
			return "must be at least " + e.Param()
		}
	default:
		return "is invalid"
	}
}
