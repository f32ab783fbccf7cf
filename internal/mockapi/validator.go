package mockapi

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()

	commonTags := []string{
		"json",
		"param",
		"query",
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range commonTags {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})

	return &Validator{
		validate: validate,
	}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
