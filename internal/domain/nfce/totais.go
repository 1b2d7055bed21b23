package nfce

import (
	"github.com/shopspring/decimal"

	"github.com/setxpro/nfce-api/internal/domain/entity"
)

// CalcularTotais soma os campos monetários dos itens nos totais da nota e
// normaliza todos os opcionais ausentes para zero, para que a serialização
// nunca encontre um campo numérico faltando.
//
// Valor total da nota = Σ(valor bruto) − Σ(desconto) + frete + seguro +
// outras despesas. O valor bruto de cada item foi fixado na construção do
// item e não é recalculado aqui.
func CalcularTotais(n *entity.Nfce) {
	var produtos, desconto, baseICMS, valorICMS, valorPIS, valorCOFINS decimal.Decimal

	for _, item := range n.Itens {
		produtos = produtos.Add(item.ValorTotalBruto)
		if item.ValorDesconto != nil {
			desconto = desconto.Add(*item.ValorDesconto)
		}
		if item.BaseCalculoICMS != nil {
			baseICMS = baseICMS.Add(*item.BaseCalculoICMS)
		}
		if item.ValorICMS != nil {
			valorICMS = valorICMS.Add(*item.ValorICMS)
		}
		if item.ValorPIS != nil {
			valorPIS = valorPIS.Add(*item.ValorPIS)
		}
		if item.ValorCOFINS != nil {
			valorCOFINS = valorCOFINS.Add(*item.ValorCOFINS)
		}
	}

	n.Totais.ValorTotalProdutos = produtos
	n.Totais.ValorDesconto = desconto
	n.Totais.BaseCalculoICMS = baseICMS
	n.Totais.ValorICMS = valorICMS
	n.Totais.ValorPIS = valorPIS
	n.Totais.ValorCOFINS = valorCOFINS

	total := produtos.Sub(desconto).
		Add(n.Totais.ValorFrete).
		Add(n.Totais.ValorSeguro).
		Add(n.Totais.OutrasDespesas)
	n.Totais.ValorTotalNota = total
}

// CalcularValorICMS calcula o ICMS do item: base × alíquota / 100,
// arredondado para 2 casas (half-up). Executado uma única vez na construção
// do item.
func CalcularValorICMS(base, aliquota decimal.Decimal) decimal.Decimal {
	return base.Mul(aliquota).Div(decimal.NewFromInt(100)).Round(2)
}
