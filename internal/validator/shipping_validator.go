package validator

import (
	"storefront/internal/usecase"

	"github.com/go-playground/validator/v10"
)

// フィールド名はAPIのsnake_caseに合わせる
var fieldNames = map[string]string{
	"FullName":   "full_name",
	"Address":    "address",
	"City":       "city",
	"PostalCode": "postal_code",
	"Phone":      "phone",
}

type shippingValidator struct {
	validate *validator.Validate
}

// Usecaseは interface を依存注入
func NewShippingValidator() usecase.ShippingValidator {
	return &shippingValidator{validate: validator.New()}
}

// Validate は配送先フォームをフィールド単位で検証する。
// 問題が無ければ空mapを返す。
func (v *shippingValidator) Validate(in usecase.ShippingInput) map[string]string {
	err := v.validate.Struct(in)
	if err == nil {
		return map[string]string{}
	}

	fields := map[string]string{}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["form"] = "invalid input"
		return fields
	}

	for _, fe := range verrs {
		name := fieldNames[fe.StructField()]
		if name == "" {
			name = fe.StructField()
		}

		switch fe.Tag() {
		case "required":
			fields[name] = "this field is required"
		case "max":
			fields[name] = "too long"
		default:
			fields[name] = "invalid value"
		}
	}

	return fields
}
