// Package brdoc valida e formata documentos brasileiros (CPF, CNPJ),
// telefones com DDD e CEP. Todas as funções são puras: dependem apenas
// da sequência de dígitos da entrada, ignorando pontuação.
package brdoc

import (
	"fmt"
	"unicode"
)

// pesos do primeiro e segundo dígito verificador do CNPJ (módulo 11).
var (
	cnpjWeightsFirst  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeightsSecond = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidateDocument valida um CPF (11 dígitos) ou CNPJ (14 dígitos) pelo
// respectivo algoritmo de dígito verificador. A entrada pode vir com ou sem
// máscara ("111.444.777-35", "11144477735", "11.222.333/0001-81").
// Sequências de dígito repetido ("00000000000", "11111111111") são rejeitadas
// explicitamente: passam no checksum ingênuo mas não são documentos válidos.
func ValidateDocument(doc string) error {
	digits := extractDigits(doc)
	switch len(digits) {
	case 11:
		return validateCPF(digits)
	case 14:
		return validateCNPJ(digits)
	default:
		return fmt.Errorf("brdoc: documento deve ter 11 (CPF) ou 14 (CNPJ) dígitos, recebidos %d", len(digits))
	}
}

// IsValidDocument é o atalho booleano de ValidateDocument.
func IsValidDocument(doc string) bool {
	return ValidateDocument(doc) == nil
}

func validateCPF(digits []byte) error {
	if allSameDigit(digits) {
		return fmt.Errorf("brdoc: CPF com todos os dígitos iguais é inválido")
	}
	// Primeiro DV: pesos 10..2 sobre os 9 primeiros dígitos.
	var sum int
	for i := 0; i < 9; i++ {
		sum += int(digits[i]-'0') * (10 - i)
	}
	if checkDigitMod11(sum) != digits[9] {
		return fmt.Errorf("brdoc: primeiro dígito verificador do CPF inválido")
	}
	// Segundo DV: pesos 11..2 sobre os 10 primeiros dígitos.
	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * (11 - i)
	}
	if checkDigitMod11(sum) != digits[10] {
		return fmt.Errorf("brdoc: segundo dígito verificador do CPF inválido")
	}
	return nil
}

func validateCNPJ(digits []byte) error {
	if allSameDigit(digits) {
		return fmt.Errorf("brdoc: CNPJ com todos os dígitos iguais é inválido")
	}
	var sum int
	for i, w := range cnpjWeightsFirst {
		sum += int(digits[i]-'0') * w
	}
	if checkDigitMod11(sum) != digits[12] {
		return fmt.Errorf("brdoc: primeiro dígito verificador do CNPJ inválido")
	}
	sum = 0
	for i, w := range cnpjWeightsSecond {
		sum += int(digits[i]-'0') * w
	}
	if checkDigitMod11(sum) != digits[13] {
		return fmt.Errorf("brdoc: segundo dígito verificador do CNPJ inválido")
	}
	return nil
}

// checkDigitMod11 aplica a regra módulo 11 comum a CPF e CNPJ:
// resto < 2 => dígito 0; caso contrário 11 - resto.
func checkDigitMod11(sum int) byte {
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + 11 - r)
}

// FormatDocument aplica a máscara progressiva de CPF (000.000.000-00) ou,
// a partir do 12º dígito, de CNPJ (00.000.000/0000-00). Dígitos excedentes
// são descartados.
func FormatDocument(doc string) string {
	digits := extractDigits(doc)
	if len(digits) > 14 {
		digits = digits[:14]
	}
	if len(digits) <= 11 {
		return maskDigits(digits, "###.###.###-##")
	}
	return maskDigits(digits, "##.###.###/####-##")
}

// maskDigits preenche '#' da máscara com dígitos; separadores só aparecem
// quando há dígito após eles (máscara progressiva).
func maskDigits(digits []byte, mask string) string {
	out := make([]byte, 0, len(mask))
	i := 0
	for _, m := range []byte(mask) {
		if i >= len(digits) {
			break
		}
		if m == '#' {
			out = append(out, digits[i])
			i++
		} else {
			out = append(out, m)
		}
	}
	return string(out)
}

func allSameDigit(digits []byte) bool {
	for _, d := range digits {
		if d != digits[0] {
			return false
		}
	}
	return len(digits) > 0
}

// extractDigits devolve apenas os dígitos da string.
func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
