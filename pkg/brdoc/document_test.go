package brdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/upzy-app/hub-api/pkg/brdoc"
)

// ──────────────────────────────────────────────────────────────────────────────
// CPF: vetores conhecidos
//
// 111.444.777-35 é o CPF de exemplo clássico da Receita: os dois dígitos
// verificadores (3 e 5) fecham o módulo 11. Qualquer alteração no algoritmo
// quebra estes testes imediatamente.
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateDocument_CPFValido(t *testing.T) {
	assert.NoError(t, brdoc.ValidateDocument("111.444.777-35"))
	assert.NoError(t, brdoc.ValidateDocument("11144477735"),
		"o mesmo CPF sem máscara deve ser aceito")
}

func TestValidateDocument_CPFDigitoVerificadorErrado(t *testing.T) {
	assert.Error(t, brdoc.ValidateDocument("111.444.777-36"),
		"último dígito trocado deve reprovar")
	assert.Error(t, brdoc.ValidateDocument("111.444.777-45"),
		"primeiro DV trocado deve reprovar")
}

// CPFs com todos os dígitos iguais passam no checksum ingênuo mas são
// inválidos. Caso clássico de implementação quebrada: 000.000.000-00.
func TestValidateDocument_CPFDigitosRepetidos(t *testing.T) {
	repetidos := []string{
		"000.000.000-00",
		"111.111.111-11",
		"22222222222",
		"99999999999",
	}
	for _, doc := range repetidos {
		assert.Error(t, brdoc.ValidateDocument(doc),
			"sequência repetida %q deve ser rejeitada", doc)
	}
}

func TestValidateDocument_TamanhoInvalido(t *testing.T) {
	assert.Error(t, brdoc.ValidateDocument("123"))
	assert.Error(t, brdoc.ValidateDocument(""))
	assert.Error(t, brdoc.ValidateDocument("111.444.777-3"), "10 dígitos não é CPF nem CNPJ")
}

// ──────────────────────────────────────────────────────────────────────────────
// CNPJ
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateDocument_CNPJValido(t *testing.T) {
	assert.NoError(t, brdoc.ValidateDocument("11.222.333/0001-81"))
	assert.NoError(t, brdoc.ValidateDocument("11222333000181"))
}

func TestValidateDocument_CNPJInvalido(t *testing.T) {
	assert.Error(t, brdoc.ValidateDocument("11.222.333/0001-80"))
	assert.Error(t, brdoc.ValidateDocument("00.000.000/0000-00"),
		"CNPJ de dígitos repetidos deve ser rejeitado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Máscaras progressivas
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatDocument_MascaraProgressivaCPF(t *testing.T) {
	assert.Equal(t, "", brdoc.FormatDocument(""))
	assert.Equal(t, "111", brdoc.FormatDocument("111"))
	assert.Equal(t, "111.4", brdoc.FormatDocument("1114"))
	assert.Equal(t, "111.444.777", brdoc.FormatDocument("111444777"))
	assert.Equal(t, "111.444.777-35", brdoc.FormatDocument("11144477735"))
}

func TestFormatDocument_TransicaoParaCNPJ(t *testing.T) {
	// A partir do 12º dígito a máscara vira CNPJ.
	assert.Equal(t, "11.222.333/0001", brdoc.FormatDocument("112223330001"))
	assert.Equal(t, "11.222.333/0001-81", brdoc.FormatDocument("11222333000181"))
	assert.Equal(t, "11.222.333/0001-81", brdoc.FormatDocument("112223330001819999"),
		"dígitos além de 14 devem ser descartados")
}

func TestFormatDocument_IgnoraPontuacaoExistente(t *testing.T) {
	assert.Equal(t, "111.444.777-35", brdoc.FormatDocument("111.444.777-35"),
		"reformatar entrada já mascarada deve ser idempotente")
}

func TestFormatPhone_Mascaras(t *testing.T) {
	assert.Equal(t, "(11) 3456-7890", brdoc.FormatPhone("1134567890"), "fixo: 10 dígitos")
	assert.Equal(t, "(11) 98456-7890", brdoc.FormatPhone("11984567890"), "celular: 11 dígitos")
	assert.Equal(t, "(11) 9", brdoc.FormatPhone("119"))
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, brdoc.ValidatePhone("(11) 3456-7890"))
	assert.NoError(t, brdoc.ValidatePhone("11984567890"))
	assert.Error(t, brdoc.ValidatePhone("123456789"), "9 dígitos não tem DDD completo")
	assert.Error(t, brdoc.ValidatePhone("119845678901"), "12 dígitos excede celular")
}

func TestFormatCEP(t *testing.T) {
	assert.Equal(t, "01310-100", brdoc.FormatCEP("01310100"))
	assert.Equal(t, "01310", brdoc.FormatCEP("01310"))
	assert.True(t, brdoc.IsCompleteCEP("01310-100"))
	assert.False(t, brdoc.IsCompleteCEP("01310"))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "11144477735", brdoc.DigitsOnly("111.444.777-35"))
	assert.Equal(t, "", brdoc.DigitsOnly("abc"))
}
