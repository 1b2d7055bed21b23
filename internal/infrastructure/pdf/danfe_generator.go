// Package pdf implementa a geração do DANFE NFC-e (Documento Auxiliar da
// Nota Fiscal de Consumidor Eletrônica).
//
// Layout da página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razão Social + CNPJ  │  Nº / Série + Data           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMITENTE: Endereço completo                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Qtd | Descrição | V.Unit | Total                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Produtos / Desconto / TOTAL                         │
//	│  PAGAMENTOS: meio e valor                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CHAVE DE ACESSO formatada + QR CODE + protocolo             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appnfce "github.com/setxpro/nfce-api/internal/application/nfce"
	"github.com/setxpro/nfce-api/internal/domain/entity"
	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 92, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appnfce.DanfeGenerator = (*DanfeGenerator)(nil)

// DanfeGenerator renderiza o DANFE NFC-e com Maroto v2.
type DanfeGenerator struct {
	chaves *domnfce.ChaveAcessoService
}

// NewDanfeGenerator constrói o gerador.
func NewDanfeGenerator(chaves *domnfce.ChaveAcessoService) *DanfeGenerator {
	return &DanfeGenerator{chaves: chaves}
}

// Gerar gera o PDF e devolve seus bytes.
func (g *DanfeGenerator) Gerar(n *entity.Nfce) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("DANFE NFC-e", true).
		WithAuthor(n.Emitente.RazaoSocial, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(n))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emitenteRow(n.Emitente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tabelaHeaderRow())
	for _, r := range tabelaItemRows(n.Itens) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totaisRow(n.Totais))
	for _, r := range pagamentosRows(n.Pagamentos) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range g.consultaRows(n) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: razão social + CNPJ (esq), número/série + data (dir).
func headerRow(n *entity.Nfce) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(n.Emitente.RazaoSocial, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+n.Emitente.CNPJ, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("DANFE NFC-e - DOCUMENTO AUXILIAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Nº %d  Série %d", n.Numero, n.Serie), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emissão: "+n.DataEmissao.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func emitenteRow(emit entity.Emitente) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMITENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s, %s - %s - %s/%s - CEP %s",
				emit.Logradouro, emit.Numero, emit.Bairro,
				emit.Municipio, emit.UF, emit.CEP,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tabelaHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd", 2, align.Center),
		h("Descrição", 6, align.Left),
		h("V. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func tabelaItemRows(itens []*entity.ItemNfce) []core.Row {
	result := make([]core.Row, 0, len(itens))
	for _, item := range itens {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				item.QuantidadeComercial.StringFixed(2)+" "+item.UnidadeComercial,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				fmt.Sprintf("%s - %s", item.CodigoProduto, item.Descricao),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"R$ "+item.ValorUnitarioComercial.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"R$ "+item.ValorTotalBruto.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totaisRow(t entity.Totais) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("VALOR TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2,
	})
	grandValue := text.New("R$ "+t.ValorTotalNota.StringFixed(2), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1,
	})

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Produtos:"),
			label("Desconto:"),
			grandLabel,
		),
		col.New(3).Add(
			value("R$ "+t.ValorTotalProdutos.StringFixed(2)),
			value("R$ "+t.ValorDesconto.StringFixed(2)),
			grandValue,
		),
		col.New(3),
	)
}

// descrições de exibição dos meios de pagamento no DANFE.
var meioPagamentoRotulos = map[entity.MeioPagamento]string{
	entity.PagamentoDinheiro:        "Dinheiro",
	entity.PagamentoCheque:          "Cheque",
	entity.PagamentoCartaoCredito:   "Cartão de Crédito",
	entity.PagamentoCartaoDebito:    "Cartão de Débito",
	entity.PagamentoPix:             "PIX",
	entity.PagamentoValeAlimentacao: "Vale Alimentação",
	entity.PagamentoValeRefeicao:    "Vale Refeição",
}

func rotuloMeioPagamento(m entity.MeioPagamento) string {
	if r, ok := meioPagamentoRotulos[m]; ok {
		return r
	}
	return "Outros"
}

func pagamentosRows(pagamentos []*entity.PagamentoNfce) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("FORMA DE PAGAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, pg := range pagamentos {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(rotuloMeioPagamento(pg.MeioPagamento), props.Text{
				Size: 8, Top: 1, Left: 2,
			})),
			col.New(6).Add(text.New("R$ "+pg.Valor.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

// consultaRows: chave de acesso formatada + QR Code + protocolo.
func (g *DanfeGenerator) consultaRows(n *entity.Nfce) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CONSULTE PELA CHAVE DE ACESSO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New(g.chaves.Formatar(n.ChaveAcesso), props.Text{
				Size: 8, Color: colorGray, Top: 1, Left: 2,
			}),
		)),
	}

	if n.URLConsulta != "" {
		rows = append(rows, row.New(50).Add(
			col.New(4).Add(code.NewQr(n.URLConsulta, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Consulta via leitor de QR Code", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("NFC-e - NOTA FISCAL DE CONSUMIDOR\nELETRÔNICA", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 18,
					Left: 3, Color: colorPrimary,
				}),
			),
		))
	}

	if n.ProtocoloAutorizacao != "" {
		protocolo := "Protocolo de autorização: " + n.ProtocoloAutorizacao
		if n.DataAutorizacao != nil {
			protocolo += "  -  " + n.DataAutorizacao.Format("02/01/2006 15:04:05")
		}
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(protocolo, props.Text{Size: 7, Color: colorGray, Top: 2}),
		)))
	}

	if n.Status == entity.StatusCancelada {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("DOCUMENTO CANCELADO", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 2,
			}),
		)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Documento emitido por ME/EPP optante pelo Simples Nacional. "+
				"Não gera direito a crédito fiscal de IPI nem de ICMS.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}
