package validator

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/travel-ledger/internal/pkg/errors"
)

// dateLayout - формат даты события штампа
const dateLayout = "2006-01-02"

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("stampdate", validateStampDate)
	_ = validate.RegisterValidation("notblank", validateNotBlank)
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// ToAppError превращает ошибку валидации в INVALID_REQUEST с перечнем полей
func ToAppError(err error) *errors.AppError {
	var validationErrs validator.ValidationErrors
	if !stderrors.As(err, &validationErrs) {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"error": err.Error(),
		})
	}

	fields := make(map[string]interface{}, len(validationErrs))
	for _, fe := range validationErrs {
		tag := fe.Tag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}
		fields[strings.ToLower(fe.Field())] = tag
	}

	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"fields": fields,
	})
}

// validateStampDate: YYYY-MM-DD
func validateStampDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateLayout, fl.Field().String())
	return err == nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
