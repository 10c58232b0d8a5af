package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/interview-service/pkg/util"
)

var validate = validator.New()

// Validate checks struct tags and converts the first failure into a
// VALIDATION_FAILED domain error.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(
			fmt.Sprintf("field %s failed on '%s' validation", fe.Field(), fe.Tag()),
			map[string]any{"field": fe.Field(), "rule": fe.Tag()},
		)
	}
	return apperrors.NewValidationError("invalid payload", nil)
}
