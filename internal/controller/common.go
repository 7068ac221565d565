package controller

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"review-lifecycle-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

const (
	defaultLimit  = 5
	defaultOffset = 0
)

type errorResponse struct {
	Reason string `json:"reason"`
}

func getAllErrorMessages(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	var builder strings.Builder
	for _, fe := range validationErrors {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	s, i := "", int32(0)
	if fe.Type() == reflect.TypeOf(s) {
		return getMessageForString(fe)
	}

	if fe.Type() == reflect.TypeOf(i) {
		return getMessageForInt(fe)
	}

	if fe.Type() == reflect.TypeOf(0) {
		return getMessageForInt(fe)
	}

	return "Unknown error (2)"
}

func getMessageForInt(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	case "email":
		return "should be an email address"
	}

	return "incorrect value passed"
}

// respondError writes the response for a service error and hands the error
// back so echo can log it. unavailable is the reason shown when the store is
// down, phrased for the operation that failed.
func respondError(c echo.Context, err error, unavailable string) error {
	status, reason := http.StatusInternalServerError, "Something went wrong"

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		status, reason = http.StatusUnauthorized, "Please sign in to continue"
	case errors.Is(err, service.ErrEmailNotVerified):
		status, reason = http.StatusForbidden, "Please verify your email address before submitting a review"
	case errors.Is(err, service.ErrForbidden):
		status, reason = http.StatusForbidden, "You don't have permission to perform this action"
	case errors.Is(err, service.ErrReviewNotFound):
		status, reason = http.StatusNotFound, "There is no review with given id"
	case errors.Is(err, service.ErrContactNotFound):
		status, reason = http.StatusNotFound, "There is no contact submission with given id"
	case errors.Is(err, service.ErrSubjectRequired),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrContentTooShort),
		errors.Is(err, service.ErrTitleTooLong),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrContactIncomplete):
		status, reason = http.StatusBadRequest, capitalize(err.Error())
	case errors.Is(err, service.ErrStoreUnavailable):
		status, reason = http.StatusServiceUnavailable, unavailable
	}

	if e := c.JSON(status, errorResponse{reason}); e != nil {
		return e
	}

	return err
}

func badRequest(c echo.Context, reason string, err error) error {
	if e := c.JSON(http.StatusBadRequest, errorResponse{reason}); e != nil {
		return e
	}

	return err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
