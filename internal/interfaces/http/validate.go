package http

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate instância compartilhada do validador de DTOs (tags `validate`).
var validate = validator.New()

// validationMessage resume os erros de validação num texto legível:
// "campo: regra" separados por "; ".
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+": "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}
