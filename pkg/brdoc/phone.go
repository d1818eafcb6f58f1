package brdoc

import "fmt"

// ValidatePhone aceita telefones brasileiros com DDD: 10 dígitos (fixo)
// ou 11 dígitos (celular). A entrada pode vir mascarada.
func ValidatePhone(phone string) error {
	n := len(extractDigits(phone))
	if n != 10 && n != 11 {
		return fmt.Errorf("brdoc: telefone deve ter 10 ou 11 dígitos com DDD, recebidos %d", n)
	}
	return nil
}

// IsValidPhone é o atalho booleano de ValidatePhone.
func IsValidPhone(phone string) bool {
	return ValidatePhone(phone) == nil
}

// FormatPhone aplica a máscara (DD) 0000-0000 para fixo e (DD) 00000-0000
// para celular, de forma progressiva conforme os dígitos são digitados.
func FormatPhone(phone string) string {
	digits := extractDigits(phone)
	if len(digits) > 11 {
		digits = digits[:11]
	}
	if len(digits) <= 10 {
		return maskDigits(digits, "(##) ####-####")
	}
	return maskDigits(digits, "(##) #####-####")
}
