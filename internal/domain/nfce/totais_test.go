package nfce

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/setxpro/nfce-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// TestCalcularTotais_DoisItensComDesconto soma bruto e desconto e aplica a
// fórmula do valor total da nota.
func TestCalcularTotais_DoisItensComDesconto(t *testing.T) {
	n := &entity.Nfce{
		Itens: []*entity.ItemNfce{
			{ValorTotalBruto: dec("10.00")},
			{ValorTotalBruto: dec("25.50"), ValorDesconto: decPtr("1.00")},
		},
	}

	CalcularTotais(n)

	assert.True(t, n.Totais.ValorTotalProdutos.Equal(dec("35.50")))
	assert.True(t, n.Totais.ValorDesconto.Equal(dec("1.00")))
	assert.True(t, n.Totais.ValorTotalNota.Equal(dec("34.50")))
}

// TestCalcularTotais_OpcionaisAusentes itens sem desconto nem ICMS produzem
// totais zerados, nunca campos faltando.
func TestCalcularTotais_OpcionaisAusentes(t *testing.T) {
	n := &entity.Nfce{
		Itens: []*entity.ItemNfce{
			{ValorTotalBruto: dec("7.90")},
		},
	}

	CalcularTotais(n)

	assert.True(t, n.Totais.ValorDesconto.IsZero())
	assert.True(t, n.Totais.BaseCalculoICMS.IsZero())
	assert.True(t, n.Totais.ValorICMS.IsZero())
	assert.True(t, n.Totais.ValorTotalNota.Equal(dec("7.90")))
}

func TestCalcularTotais_AgregaICMS(t *testing.T) {
	n := &entity.Nfce{
		Itens: []*entity.ItemNfce{
			{
				ValorTotalBruto: dec("100.00"),
				BaseCalculoICMS: decPtr("100.00"),
				ValorICMS:       decPtr("18.00"),
			},
			{
				ValorTotalBruto: dec("50.00"),
				BaseCalculoICMS: decPtr("50.00"),
				ValorICMS:       decPtr("9.00"),
			},
		},
	}

	CalcularTotais(n)

	assert.True(t, n.Totais.BaseCalculoICMS.Equal(dec("150.00")))
	assert.True(t, n.Totais.ValorICMS.Equal(dec("27.00")))
}

// TestCalcularTotais_FreteSeguroOutras entram na fórmula do total mas não na
// soma de produtos.
func TestCalcularTotais_FreteSeguroOutras(t *testing.T) {
	n := &entity.Nfce{
		Itens: []*entity.ItemNfce{
			{ValorTotalBruto: dec("20.00"), ValorDesconto: decPtr("2.00")},
		},
	}
	n.Totais.ValorFrete = dec("5.00")
	n.Totais.ValorSeguro = dec("1.50")
	n.Totais.OutrasDespesas = dec("0.50")

	CalcularTotais(n)

	assert.True(t, n.Totais.ValorTotalProdutos.Equal(dec("20.00")))
	// 20.00 - 2.00 + 5.00 + 1.50 + 0.50
	assert.True(t, n.Totais.ValorTotalNota.Equal(dec("25.00")))
}

func TestCalcularTotais_SemItens(t *testing.T) {
	n := &entity.Nfce{}

	CalcularTotais(n)

	assert.True(t, n.Totais.ValorTotalProdutos.IsZero())
	assert.True(t, n.Totais.ValorTotalNota.IsZero())
}

// TestCalcularValorICMS arredondamento half-up em 2 casas.
func TestCalcularValorICMS(t *testing.T) {
	assert.True(t, CalcularValorICMS(dec("100.00"), dec("18.00")).Equal(dec("18.00")))
	// 33.33 * 7% = 2.3331 -> 2.33
	assert.True(t, CalcularValorICMS(dec("33.33"), dec("7.00")).Equal(dec("2.33")))
	// 10.05 * 2.5% = 0.25125 -> 0.25
	assert.True(t, CalcularValorICMS(dec("10.05"), dec("2.5")).Equal(dec("0.25")))
	// 1.00 * 17.5% = 0.175 -> 0.18 (half-up)
	assert.True(t, CalcularValorICMS(dec("1.00"), dec("17.5")).Equal(dec("0.18")))
}
