package domain

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewClassificationSystem — данные для создания системы классификации.
type NewClassificationSystem struct {
	Name          string `json:"name" validate:"required"`
	AuthorityName string `json:"authority_name" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Version       string `json:"version" validate:"required"`

	// ClassesPath — необязательный JSON файл с классами системы.
	ClassesPath string `json:"-"`
}

// NewClassesFile — загрузка классов в существующую систему.
type NewClassesFile struct {
	System string `json:"system" validate:"required"`
	Path   string `json:"path" validate:"required"`
}

// NewMapping — загрузка маппинга между двумя системами.
type NewMapping struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
	Path   string `json:"path" validate:"required"`
}

// NewStyle — загрузка файла стиля для системы.
type NewStyle struct {
	System string `json:"system" validate:"required"`
	Format string `json:"style_format" validate:"required"`
	Path   string `json:"path" validate:"required"`

	// Extension — расширение имени файла на сервере; по умолчанию
	// берётся из Path.
	Extension string `json:"extension" validate:"omitempty,alphanum"`
}

// NewStyleFormat — создание формата стиля.
type NewStyleFormat struct {
	Name string `json:"name" validate:"required"`
}

// Validator проверяет payload'ы запросов до отправки на сервер.
type Validator struct {
	v *validator.Validate
}

// NewValidator создаёт валидатор, который называет поля по JSON тегам.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Validate проверяет структуру. Ошибка оборачивает ErrInvalidRequest
// и перечисляет все некорректные поля.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, e.Field()+" "+friendlyMessage(e))
	}
	sort.Strings(msgs)

	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "alphanum":
		return "must contain only letters and digits"
	default:
		return "is invalid"
	}
}
