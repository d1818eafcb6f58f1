package usecase

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeAccents decompõe (NFD) e remove as marcas combinantes: "São João" → "Sao Joao".
var removeAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify normaliza um nome para slug: remove acentos, minúsculas,
// não-alfanuméricos viram hífen, hifens colapsados e aparados.
// Determinística: mesmo nome produz sempre o mesmo slug.
func Slugify(name string) string {
	s, _, err := transform.String(removeAccents, name)
	if err != nil {
		s = name // entrada com bytes inválidos: segue sem remover acentos
	}
	s = strings.ToLower(s)

	var b strings.Builder
	lastHyphen := true // suprime hífen inicial
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// nextAvailableSlug devolve base se livre; senão base-2, base-3, …
// estritamente crescente e nunca colidindo com o conjunto consultado.
func nextAvailableSlug(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !taken[candidate] {
			return candidate
		}
	}
}
