package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var (
	ErrInFlight = errors.New("already in progress")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// ValidationError lists the fields of a draft that break their input
// constraints.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid " + strings.Join(e.Fields, ", ")
}

func check(draft any) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	return &ValidationError{
		Fields: lo.Map(fieldErrs, func(fe validator.FieldError, _ int) string {
			return fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag())
		}),
	}
}

func invalid(err error) Outcome {
	return Outcome{Message: Failure(err.Error())}
}
