package dtos

import (
	"errors"
	"fmt"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"reflect"
	"regexp"
	"strings"
	"sync"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

// amountValidatorFunc accepts a strictly positive amount with at most two decimal places.
var amountValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	d, ok := moneyValue(fl)
	return ok && d.IsPositive()
}

// balanceValidatorFunc is amountValidatorFunc that also admits zero.
var balanceValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	d, ok := moneyValue(fl)
	return ok && !d.IsNegative()
}

var expiryValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	return expiryPattern.MatchString(fl.Field().String())
}

func moneyValue(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, d.Exponent() >= -2 || d.Equal(d.Round(2))
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// decimals are validated through their string form
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("amount", amountValidatorFunc)
		_ = v.RegisterValidation("balance", balanceValidatorFunc)
		_ = v.RegisterValidation("expiry", expiryValidatorFunc)
		validate = v
	})

	return validate
}

// Validate checks dto against its validate tags and reports every failing field
// as one ValidationError.
func Validate(dto interface{}) error {
	err := validatorInstance().Struct(dto)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return apperrors.NewValidationError(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "amount":
		return fmt.Sprintf("%s must be a positive amount with at most 2 decimal places", field)
	case "balance":
		return fmt.Sprintf("%s must be a non-negative amount with at most 2 decimal places", field)
	case "expiry":
		return fmt.Sprintf("%s must be in MM/YY format", field)
	case "iso4217":
		return fmt.Sprintf("%s must be an ISO 4217 currency code", field)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, strings.ToLower(fe.Param()[:1])+fe.Param()[1:])
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters long", field, fe.Param())
	case "lte", "gte":
		return fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
	case "min", "max":
		return fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
