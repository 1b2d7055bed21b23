package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do ciclo de emissão da NFC-e. Valores de persistência e de API.
const (
	StatusRascunho   = "RASCUNHO"
	StatusAssinada   = "ASSINADA"
	StatusEnviada    = "ENVIADA"
	StatusAutorizada = "AUTORIZADA"
	StatusRejeitada  = "REJEITADA"
	StatusCancelada  = "CANCELADA"
	StatusDenegada   = "DENEGADA"
)

// StatusValido informa se s é um status conhecido.
func StatusValido(s string) bool {
	switch s {
	case StatusRascunho, StatusAssinada, StatusEnviada, StatusAutorizada,
		StatusRejeitada, StatusCancelada, StatusDenegada:
		return true
	}
	return false
}

// StatusTerminal informa se s é um status terminal (nenhuma transição posterior).
func StatusTerminal(s string) bool {
	switch s {
	case StatusRejeitada, StatusCancelada, StatusDenegada:
		return true
	}
	return false
}

// Ambiente de emissão (tpAmb). O código de fio vai no XML e no QR Code.
type Ambiente string

const (
	AmbienteProducao    Ambiente = "PRODUCAO"
	AmbienteHomologacao Ambiente = "HOMOLOGACAO"
)

// Codigo retorna o código de fio do ambiente: 1 = produção, 2 = homologação.
func (a Ambiente) Codigo() int {
	if a == AmbienteProducao {
		return 1
	}
	return 2
}

// TipoOperacao (tpNF): entrada ou saída.
type TipoOperacao string

const (
	OperacaoEntrada TipoOperacao = "ENTRADA"
	OperacaoSaida   TipoOperacao = "SAIDA"
)

// Codigo retorna o código de fio: 0 = entrada, 1 = saída.
func (t TipoOperacao) Codigo() int {
	if t == OperacaoEntrada {
		return 0
	}
	return 1
}

// FinalidadeEmissao (finNFe).
type FinalidadeEmissao string

const (
	FinalidadeNormal       FinalidadeEmissao = "NORMAL"
	FinalidadeComplementar FinalidadeEmissao = "COMPLEMENTAR"
	FinalidadeAjuste       FinalidadeEmissao = "AJUSTE"
	FinalidadeDevolucao    FinalidadeEmissao = "DEVOLUCAO"
)

var finalidadeCodigos = map[FinalidadeEmissao]int{
	FinalidadeNormal:       1,
	FinalidadeComplementar: 2,
	FinalidadeAjuste:       3,
	FinalidadeDevolucao:    4,
}

// Codigo retorna o código de fio da finalidade (1..4). Default: 1 (normal).
func (f FinalidadeEmissao) Codigo() int {
	if c, ok := finalidadeCodigos[f]; ok {
		return c
	}
	return 1
}

// RegimeTributario do emitente (CRT).
type RegimeTributario string

const (
	RegimeSimplesNacional         RegimeTributario = "SIMPLES_NACIONAL"
	RegimeSimplesExcessoSublimite RegimeTributario = "SIMPLES_NACIONAL_EXCESSO_SUBLIMITE"
	RegimeNormal                  RegimeTributario = "REGIME_NORMAL"
)

var regimeCodigos = map[RegimeTributario]int{
	RegimeSimplesNacional:         1,
	RegimeSimplesExcessoSublimite: 2,
	RegimeNormal:                  3,
}

// Codigo retorna o CRT (1..3). Default: 1 (Simples Nacional).
func (r RegimeTributario) Codigo() int {
	if c, ok := regimeCodigos[r]; ok {
		return c
	}
	return 1
}

// Emitente agrupa a identificação fiscal de quem emite a nota.
type Emitente struct {
	CNPJ              string
	RazaoSocial       string
	NomeFantasia      string
	Logradouro        string
	Numero            string
	Bairro            string
	Municipio         string
	UF                string
	CEP               string
	CodigoMunicipio   int
	InscricaoEstadual string
	RegimeTributario  RegimeTributario
}

// Destinatario é opcional na NFC-e (consumidor pode não se identificar).
type Destinatario struct {
	CpfCnpj string // 11 dígitos = CPF, 14 = CNPJ
	Nome    string
}

// Totais agregados da nota, calculados a partir dos itens.
// Após a agregação nenhum campo fica "ausente": opcionais não informados
// são normalizados para zero antes da serialização.
type Totais struct {
	ValorTotalProdutos decimal.Decimal
	ValorDesconto      decimal.Decimal
	BaseCalculoICMS    decimal.Decimal
	ValorICMS          decimal.Decimal
	BaseCalculoICMSST  decimal.Decimal
	ValorICMSST        decimal.Decimal
	ValorPIS           decimal.Decimal
	ValorCOFINS        decimal.Decimal
	ValorFrete         decimal.Decimal
	ValorSeguro        decimal.Decimal
	OutrasDespesas     decimal.Decimal
	ValorTotalNota     decimal.Decimal
}

// Nfce é a raiz do agregado: cabeçalho imutável após autorização, itens e
// pagamentos pertencem exclusivamente à nota. Nunca é excluída; apenas
// transita para um status terminal.
type Nfce struct {
	ID               string
	Numero           int
	Serie            int
	ChaveAcesso      string // 44 dígitos, única
	DataEmissao      time.Time
	NaturezaOperacao string
	TipoOperacao     TipoOperacao
	Finalidade       FinalidadeEmissao
	Ambiente         Ambiente
	Status           string

	Emitente     Emitente
	Destinatario *Destinatario

	Itens      []*ItemNfce
	Pagamentos []*PagamentoNfce
	Totais     Totais

	ProtocoloAutorizacao      string
	DataAutorizacao           *time.Time
	JustificativaCancelamento string

	XMLAssinado   string
	XMLAutorizado string
	URLConsulta   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
