package nfce

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chaveTeste = "35240312345678000199650010000000011100000000"

func decodificarPayload(t *testing.T, url string) string {
	t.Helper()
	idx := strings.Index(url, "?p=")
	require.GreaterOrEqual(t, idx, 0)
	decoded, err := base64.StdEncoding.DecodeString(url[idx+3:])
	require.NoError(t, err)
	return string(decoded)
}

// TestGerarURL_SemDestinatario payload com 4 campos e pipe final vazio.
func TestGerarURL_SemDestinatario(t *testing.T) {
	svc := NewQrCodeService("https://www.homologacao.nfce.fazenda.sp.gov.br/qrcode")
	emissao := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	url := svc.GerarURL(chaveTeste, 2, emissao, dec("34.50"), "")

	assert.True(t, strings.HasPrefix(url, "https://www.homologacao.nfce.fazenda.sp.gov.br/qrcode?p="))
	payload := decodificarPayload(t, url)
	assert.Equal(t, chaveTeste+"|2|20240315103000|3450|", payload)
}

// TestGerarURL_ComDestinatario acrescenta o SHA-1 do documento em hexadecimal
// maiúsculo como quinto campo.
func TestGerarURL_ComDestinatario(t *testing.T) {
	svc := NewQrCodeService("https://consulta.exemplo/qrcode")
	emissao := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	// SHA-1("abc") = a9993e364706816aba3e25717850c26c9cd0d89d
	url := svc.GerarURL(chaveTeste, 1, emissao, dec("100.00"), "abc")

	payload := decodificarPayload(t, url)
	partes := strings.Split(payload, "|")
	require.Len(t, partes, 5)
	assert.Equal(t, chaveTeste, partes[0])
	assert.Equal(t, "1", partes[1])
	assert.Equal(t, "20240315103000", partes[2])
	assert.Equal(t, "10000", partes[3])
	assert.Equal(t, "A9993E364706816ABA3E25717850C26C9CD0D89D", partes[4])
}

// TestGerarURL_ValorSemPonto o valor vai sempre com 2 casas e sem separador.
func TestGerarURL_ValorSemPonto(t *testing.T) {
	svc := NewQrCodeService("https://consulta.exemplo/qrcode")
	emissao := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		valor    string
		esperado string
	}{
		{"34.50", "3450"},
		{"7.9", "790"},
		{"1234.00", "123400"},
		{"0", "000"},
	}
	for _, tt := range tests {
		url := svc.GerarURL(chaveTeste, 2, emissao, dec(tt.valor), "")
		partes := strings.Split(decodificarPayload(t, url), "|")
		assert.Equal(t, tt.esperado, partes[3], "valor %s", tt.valor)
	}
}

// TestValidarURL_Roundtrip URL gerada valida contra a própria chave.
func TestValidarURL_Roundtrip(t *testing.T) {
	svc := NewQrCodeService("https://consulta.exemplo/qrcode")
	url := svc.GerarURL(chaveTeste, 2, time.Now(), dec("10.00"), "")

	assert.True(t, svc.ValidarURL(url, chaveTeste))
	assert.False(t, svc.ValidarURL(url, "00000000000000000000000000000000000000000000"))
}

// TestValidarURL_FalhaFechado URLs malformadas retornam false, nunca erro.
func TestValidarURL_FalhaFechado(t *testing.T) {
	svc := NewQrCodeService("https://consulta.exemplo/qrcode")

	tests := []struct {
		nome string
		url  string
	}{
		{"sem parâmetro p", "https://consulta.exemplo/qrcode"},
		{"base64 inválido", "https://consulta.exemplo/qrcode?p=!!!não-base64!!!"},
		{"payload com poucos campos", "https://consulta.exemplo/qrcode?p=" +
			base64.StdEncoding.EncodeToString([]byte("a|b"))},
		{"vazia", ""},
	}
	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			assert.False(t, svc.ValidarURL(tt.url, chaveTeste))
		})
	}
}
