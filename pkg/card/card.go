// Package card detecta bandeira e formata dados de cartão de crédito.
// Funções puras sobre a sequência de dígitos; pontuação e espaços na
// entrada são ignorados. Nenhuma função deste pacote loga ou persiste
// o número do cartão.
package card

import (
	"strings"
	"unicode"
)

// Brand bandeira do cartão detectada pelo prefixo (IIN).
type Brand string

// Bandeiras reconhecidas no checkout.
const (
	BrandVisa       Brand = "visa"
	BrandMastercard Brand = "mastercard"
	BrandAmex       Brand = "amex"
	BrandElo        Brand = "elo"
	BrandHipercard  Brand = "hipercard"
	BrandDiners     Brand = "diners"
	BrandDiscover   Brand = "discover"
	BrandUnknown    Brand = "unknown"
)

// Prefixos Elo mais comuns (a faixa completa é extensa; cobrimos os BINs
// usados pelos emissores brasileiros).
var eloPrefixes = []string{
	"4011", "4312", "4389", "4514", "4573", "4576",
	"5041", "5066", "5067", "509",
	"6277", "6362", "6363", "6504", "6505", "6507", "6509", "6516", "6550",
}

// DetectBrand classifica a bandeira pelo prefixo da sequência de dígitos.
// Determinística: mesma entrada (com ou sem máscara) produz sempre a mesma
// bandeira. Deve ser reavaliada a cada dígito digitado; prefixos Elo e
// Hipercard colidem com faixas Visa/Mastercard e precisam de precedência.
func DetectBrand(number string) Brand {
	d := digits(number)
	if d == "" {
		return BrandUnknown
	}

	// Elo e Hipercard primeiro: seus BINs caem dentro das faixas genéricas
	// de Visa (4...) e Discover (6...).
	if strings.HasPrefix(d, "606282") || strings.HasPrefix(d, "3841") {
		return BrandHipercard
	}
	for _, p := range eloPrefixes {
		if strings.HasPrefix(d, p) {
			return BrandElo
		}
	}

	switch {
	case strings.HasPrefix(d, "34") || strings.HasPrefix(d, "37"):
		return BrandAmex
	case strings.HasPrefix(d, "36") || strings.HasPrefix(d, "38") ||
		(len(d) >= 3 && strings.HasPrefix(d, "30") && d[2] >= '0' && d[2] <= '5'):
		return BrandDiners
	case strings.HasPrefix(d, "6011") || strings.HasPrefix(d, "65") ||
		(len(d) >= 3 && strings.HasPrefix(d, "64") && d[2] >= '4' && d[2] <= '9'):
		return BrandDiscover
	case len(d) >= 2 && d[0] == '5' && d[1] >= '1' && d[1] <= '5':
		return BrandMastercard
	case len(d) >= 4 && d[:4] >= "2221" && d[:4] <= "2720":
		return BrandMastercard
	case d[0] == '4':
		return BrandVisa
	default:
		return BrandUnknown
	}
}

// FormatNumber agrupa os dígitos em blocos de 4 separados por espaço.
// Limita a 19 dígitos (PAN máximo ISO/IEC 7812).
func FormatNumber(number string) string {
	d := digits(number)
	if len(d) > 19 {
		d = d[:19]
	}
	var b strings.Builder
	for i := 0; i < len(d); i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// FormatExpiry aplica a máscara MM/AA de forma progressiva.
func FormatExpiry(expiry string) string {
	d := digits(expiry)
	if len(d) > 4 {
		d = d[:4]
	}
	if len(d) <= 2 {
		return d
	}
	return d[:2] + "/" + d[2:]
}

// SplitExpiry separa MM/AA em mês (2 dígitos) e ano com século (4 dígitos),
// formato exigido pelo gateway. Devolve strings vazias se incompleto.
func SplitExpiry(expiry string) (month, year string) {
	d := digits(expiry)
	if len(d) != 4 {
		return "", ""
	}
	return d[:2], "20" + d[2:]
}

// ValidCVV aceita códigos de segurança de 3 ou 4 dígitos.
func ValidCVV(cvv string) bool {
	n := len(digits(cvv))
	return n == 3 || n == 4
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
