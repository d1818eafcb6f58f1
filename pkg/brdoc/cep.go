package brdoc

import "fmt"

// CEPLength quantidade de dígitos de um CEP completo.
const CEPLength = 8

// ValidateCEP exige um CEP completo de 8 dígitos.
func ValidateCEP(cep string) error {
	n := len(extractDigits(cep))
	if n != CEPLength {
		return fmt.Errorf("brdoc: CEP deve ter %d dígitos, recebidos %d", CEPLength, n)
	}
	return nil
}

// IsCompleteCEP informa se o CEP já tem todos os dígitos (gatilho da
// consulta assíncrona de endereço).
func IsCompleteCEP(cep string) bool {
	return len(extractDigits(cep)) == CEPLength
}

// FormatCEP aplica a máscara 00000-000 de forma progressiva.
func FormatCEP(cep string) string {
	digits := extractDigits(cep)
	if len(digits) > CEPLength {
		digits = digits[:CEPLength]
	}
	return maskDigits(digits, "#####-###")
}

// DigitsOnly expõe a extração de dígitos para quem monta requisições
// (gateway e consulta de CEP esperam valores sem máscara).
func DigitsOnly(s string) string {
	return string(extractDigits(s))
}
