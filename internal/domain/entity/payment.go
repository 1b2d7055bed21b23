package entity

import "github.com/shopspring/decimal"

// MeioPagamento (tPag). Cada variante tem um código fixo de 2 dígitos na
// tabela oficial; a serialização usa sempre o código, nunca a posição.
type MeioPagamento string

const (
	PagamentoDinheiro               MeioPagamento = "DINHEIRO"
	PagamentoCheque                 MeioPagamento = "CHEQUE"
	PagamentoCartaoCredito          MeioPagamento = "CARTAO_CREDITO"
	PagamentoCartaoDebito           MeioPagamento = "CARTAO_DEBITO"
	PagamentoCreditoLoja            MeioPagamento = "CREDITO_LOJA"
	PagamentoValeAlimentacao        MeioPagamento = "VALE_ALIMENTACAO"
	PagamentoValeRefeicao           MeioPagamento = "VALE_REFEICAO"
	PagamentoValePresente           MeioPagamento = "VALE_PRESENTE"
	PagamentoValeCombustivel        MeioPagamento = "VALE_COMBUSTIVEL"
	PagamentoDuplicataMercantil     MeioPagamento = "DUPLICATA_MERCANTIL"
	PagamentoBoletoBancario         MeioPagamento = "BOLETO_BANCARIO"
	PagamentoDepositoBancario       MeioPagamento = "DEPOSITO_BANCARIO"
	PagamentoPix                    MeioPagamento = "PIX"
	PagamentoTransferenciaBancaria  MeioPagamento = "TRANSFERENCIA_BANCARIA"
	PagamentoProgramaFidelidade     MeioPagamento = "PROGRAMA_FIDELIDADE"
	PagamentoSemPagamento           MeioPagamento = "SEM_PAGAMENTO"
	PagamentoOutros                 MeioPagamento = "OUTROS"
)

// meioPagamentoCodigos reproduz a tabela oficial tPag da NF-e.
var meioPagamentoCodigos = map[MeioPagamento]string{
	PagamentoDinheiro:              "01",
	PagamentoCheque:                "02",
	PagamentoCartaoCredito:         "03",
	PagamentoCartaoDebito:          "04",
	PagamentoCreditoLoja:           "05",
	PagamentoValeAlimentacao:       "10",
	PagamentoValeRefeicao:          "11",
	PagamentoValePresente:          "12",
	PagamentoValeCombustivel:       "13",
	PagamentoDuplicataMercantil:    "14",
	PagamentoBoletoBancario:        "15",
	PagamentoDepositoBancario:      "16",
	PagamentoPix:                   "17",
	PagamentoTransferenciaBancaria: "18",
	PagamentoProgramaFidelidade:    "19",
	PagamentoSemPagamento:          "90",
	PagamentoOutros:                "99",
}

// Codigo retorna o código de fio (2 dígitos) do meio de pagamento.
// Default: "99" (outros) para variantes desconhecidas.
func (m MeioPagamento) Codigo() string {
	if c, ok := meioPagamentoCodigos[m]; ok {
		return c
	}
	return "99"
}

// MeioPagamentoValido informa se m é uma variante conhecida da tabela.
func MeioPagamentoValido(m MeioPagamento) bool {
	_, ok := meioPagamentoCodigos[m]
	return ok
}

// PagamentoNfce é uma entrada do grupo pag/detPag. Os campos de cartão são
// opcionais; quando a credenciadora está presente o XML ganha o bloco card.
type PagamentoNfce struct {
	ID     string
	NfceID string

	MeioPagamento      MeioPagamento
	Valor              decimal.Decimal
	CnpjCredenciadora  string
	BandeiraOperadora  string
	NumeroAutorizacao  string
}
