package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError lists the field rules a value failed.
type ValidationError struct {
	Kind   string
	ID     string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.ID, strings.Join(e.Fields, "; "))
}

// ValidateAccount checks field-level rules on an account. Type is only
// checked when set; inheritance fills it in for children.
func ValidateAccount(a Account) error {
	var err error
	if a.Type == "" {
		err = validate.StructExcept(a, "Type")
	} else {
		err = validate.Struct(a)
	}
	return toValidationError("account", a.ID, err)
}

// ValidateTransaction checks field-level rules on a transaction.
func ValidateTransaction(t Transaction) error {
	err := toValidationError("transaction", t.ID, validate.Struct(t))
	if t.Amount.IsNegative() {
		fields := []string{fmt.Sprintf("amount %s is negative", t.Amount)}
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.Fields = append(ve.Fields, fields...)
			return ve
		}
		return &ValidationError{Kind: "transaction", ID: t.ID, Fields: fields}
	}
	return err
}

func toValidationError(kind, id string, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating %s: %w", kind, err)
	}
	ve := &ValidationError{Kind: kind, ID: id}
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		ve.Fields = append(ve.Fields, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), rule))
	}
	return ve
}
