// file: internals/helpers/validation.go
package helper

import (
	"github.com/go-playground/validator/v10"
)

// Validator instance (shared)
var validate = validator.New()

// ValidateStruct menjalankan validator.v10 dan mengubah hasilnya
// jadi map field → pesan, siap dikirim lewat JsonValidationError.
func ValidateStruct(s any) map[string][]string {
	if err := validate.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return map[string][]string{"_": {err.Error()}}
		}
		out := make(map[string][]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = append(out[fe.Field()], fe.Tag())
		}
		return out
	}
	return nil
}
