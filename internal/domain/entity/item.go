package entity

import "github.com/shopspring/decimal"

// OrigemMercadoria (orig do grupo ICMS), tabela A do anexo da NF-e.
type OrigemMercadoria string

const (
	OrigemNacional                      OrigemMercadoria = "NACIONAL"
	OrigemEstrangeiraImportacaoDireta   OrigemMercadoria = "ESTRANGEIRA_IMPORTACAO_DIRETA"
	OrigemEstrangeiraMercadoInterno     OrigemMercadoria = "ESTRANGEIRA_ADQUIRIDA_MERCADO_INTERNO"
	OrigemNacionalImportacaoSuperior40  OrigemMercadoria = "NACIONAL_CONTEUDO_IMPORTACAO_SUPERIOR_40"
	OrigemNacionalCIDE                  OrigemMercadoria = "NACIONAL_CIDE"
	OrigemNacionalImportacaoInferior40  OrigemMercadoria = "NACIONAL_CONTEUDO_IMPORTACAO_INFERIOR_40"
	OrigemEstrangeiraDiretaCAMEX        OrigemMercadoria = "ESTRANGEIRA_IMPORTACAO_DIRETA_CAMEX"
	OrigemEstrangeiraMercadoCAMEX       OrigemMercadoria = "ESTRANGEIRA_ADQUIRIDA_MERCADO_INTERNO_CAMEX"
	OrigemNacionalImportacaoSuperior70  OrigemMercadoria = "NACIONAL_CONTEUDO_IMPORTACAO_SUPERIOR_70"
)

var origemCodigos = map[OrigemMercadoria]int{
	OrigemNacional:                     0,
	OrigemEstrangeiraImportacaoDireta:  1,
	OrigemEstrangeiraMercadoInterno:    2,
	OrigemNacionalImportacaoSuperior40: 3,
	OrigemNacionalCIDE:                 4,
	OrigemNacionalImportacaoInferior40: 5,
	OrigemEstrangeiraDiretaCAMEX:       6,
	OrigemEstrangeiraMercadoCAMEX:      7,
	OrigemNacionalImportacaoSuperior70: 8,
}

// Codigo retorna o código de fio da origem (0..8). Default: 0 (nacional).
func (o OrigemMercadoria) Codigo() int {
	if c, ok := origemCodigos[o]; ok {
		return c
	}
	return 0
}

// ItemNfce é uma linha de detalhe da nota (det). O valor total bruto é fixado
// na construção do item (quantidade × valor unitário) e não é recalculado
// pela agregação de totais. Campos tributários opcionais ficam nil quando
// não informados; o XML omite os elementos correspondentes.
type ItemNfce struct {
	ID     string
	NfceID string

	NumeroItem    int // 1-based, único dentro da nota
	CodigoProduto string
	Descricao     string
	NCM           string // classificação de mercadoria, 8 dígitos
	CFOP          string // código fiscal da operação, 4 dígitos

	UnidadeComercial       string
	QuantidadeComercial    decimal.Decimal
	ValorUnitarioComercial decimal.Decimal
	ValorTotalBruto        decimal.Decimal

	UnidadeTributavel       string
	QuantidadeTributavel    decimal.Decimal
	ValorUnitarioTributavel decimal.Decimal

	ValorDesconto *decimal.Decimal

	OrigemMercadoria OrigemMercadoria

	// ICMS
	CstICMS         string
	ModalidadeBC    *int
	BaseCalculoICMS *decimal.Decimal
	AliquotaICMS    *decimal.Decimal
	ValorICMS       *decimal.Decimal

	// PIS (opcional)
	CstPIS         string
	BaseCalculoPIS *decimal.Decimal
	AliquotaPIS    *decimal.Decimal
	ValorPIS       *decimal.Decimal

	// COFINS (opcional)
	CstCOFINS         string
	BaseCalculoCOFINS *decimal.Decimal
	AliquotaCOFINS    *decimal.Decimal
	ValorCOFINS       *decimal.Decimal
}
