package nfce

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setxpro/nfce-api/internal/domain"
)

// TestGerar_VetorConhecido fixa uma chave calculada à mão para detectar
// qualquer mudança no layout ou no cálculo do DV.
func TestGerar_VetorConhecido(t *testing.T) {
	svc := NewChaveAcessoService()
	emissao := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	chave, err := svc.Gerar(35, emissao, "12345678000199", ModeloNfce, 1, 1, TipoEmissaoNormal, 10000000)
	require.NoError(t, err)

	assert.Equal(t, "35240312345678000199650010000000011100000000", chave)
	assert.Len(t, chave, 44)
	assert.True(t, svc.Validar(chave))
}

// TestGerar_Deterministico mesma entrada, mesma chave.
func TestGerar_Deterministico(t *testing.T) {
	svc := NewChaveAcessoService()
	emissao := time.Date(2025, 11, 2, 8, 0, 0, 0, time.UTC)

	a, err := svc.Gerar(41, emissao, "11222333000181", ModeloNfce, 2, 123456, TipoEmissaoNormal, 55443322)
	require.NoError(t, err)
	b, err := svc.Gerar(41, emissao, "11222333000181", ModeloNfce, 2, 123456, TipoEmissaoNormal, 55443322)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGerar_CamposComZerosAEsquerda(t *testing.T) {
	svc := NewChaveAcessoService()
	emissao := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	chave, err := svc.Gerar(35, emissao, "12345678000199", ModeloNfce, 7, 42, TipoEmissaoNormal, 10000001)
	require.NoError(t, err)

	assert.Equal(t, "35", chave[0:2])    // UF
	assert.Equal(t, "2601", chave[2:6])  // AAMM
	assert.Equal(t, "65", chave[20:22])  // modelo
	assert.Equal(t, "007", chave[22:25]) // série
	assert.Equal(t, "000000042", chave[25:34])
	assert.Equal(t, "1", chave[34:35]) // tpEmis
	assert.Equal(t, "10000001", chave[35:43])
}

func TestGerar_EntradaInvalida(t *testing.T) {
	svc := NewChaveAcessoService()
	emissao := time.Now()

	tests := []struct {
		nome   string
		cnpj   string
		serie  int
		numero int
	}{
		{"cnpj curto", "123", 1, 1},
		{"cnpj com letras", "1234567800019A", 1, 1},
		{"série zero", "12345678000199", 0, 1},
		{"número zero", "12345678000199", 1, 0},
		{"número negativo", "12345678000199", 1, -5},
	}
	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			_, err := svc.Gerar(35, emissao, tt.cnpj, ModeloNfce, tt.serie, tt.numero, TipoEmissaoNormal, 10000000)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

// TestGerarNfce_CodigoAleatorio gera com código numérico sorteado: a chave
// resultante deve sempre validar e ter os 8 dígitos do cNF dentro da faixa.
func TestGerarNfce_CodigoAleatorio(t *testing.T) {
	svc := NewChaveAcessoService()
	emissao := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		chave, err := svc.GerarNfce(35, emissao, "12345678000199", 1, i+1, TipoEmissaoNormal)
		require.NoError(t, err)
		require.Len(t, chave, 44)
		assert.True(t, svc.Validar(chave))
		// cNF nunca começa com zero dentro da faixa sorteada
		assert.NotEqual(t, byte('0'), chave[35])
	}
}

// TestValidar_FalhaFechado qualquer chave malformada retorna false.
func TestValidar_FalhaFechado(t *testing.T) {
	svc := NewChaveAcessoService()

	tests := []struct {
		nome  string
		chave string
	}{
		{"vazia", ""},
		{"curta", "3524031234567800019965001000000001110000000"},
		{"longa", "352403123456780001996500100000000111000000000"},
		{"com letra", "3524031234567800019965001000000001110000000X"},
		{"DV errado", "35240312345678000199650010000000011100000001"},
		{"com espaços", "3524 0312 3456 7800 0199 6500 1000 0000 0111 0000 0000"},
	}
	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			assert.False(t, svc.Validar(tt.chave))
		})
	}
}

func TestFormatar(t *testing.T) {
	svc := NewChaveAcessoService()

	chave := "35240312345678000199650010000000011100000000"
	formatada := svc.Formatar(chave)

	assert.Equal(t, "3524 0312 3456 7800 0199 6500 1000 0000 0111 0000 0000", formatada)
	assert.Len(t, formatada, 44+10)

	// passthrough quando o comprimento não é 44
	assert.Equal(t, "abc", svc.Formatar("abc"))
	assert.Equal(t, "", svc.Formatar(""))
}

// TestCalcularDigitoVerificador_RestoMenorQueDois resto 0 ou 1 resulta em DV 0.
func TestCalcularDigitoVerificador_RestoMenorQueDois(t *testing.T) {
	// o vetor conhecido tem soma 507, resto 1 -> DV 0
	dv := calcularDigitoVerificador("3524031234567800019965001000000001110000000")
	assert.Equal(t, 0, dv)
}
