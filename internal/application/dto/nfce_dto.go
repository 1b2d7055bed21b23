package dto

import "github.com/shopspring/decimal"

// EmitenteRequest identificação fiscal do emitente no corpo de criação.
type EmitenteRequest struct {
	Cnpj              string `json:"cnpj"`
	RazaoSocial       string `json:"razao_social"`
	NomeFantasia      string `json:"nome_fantasia,omitempty"`
	Logradouro        string `json:"logradouro"`
	Numero            string `json:"numero"`
	Bairro            string `json:"bairro"`
	Municipio         string `json:"municipio"`
	Uf                string `json:"uf"`
	Cep               string `json:"cep"`
	CodigoMunicipio   int    `json:"codigo_municipio"`
	InscricaoEstadual string `json:"inscricao_estadual"`
	RegimeTributario  string `json:"regime_tributario,omitempty"` // default SIMPLES_NACIONAL
}

// DestinatarioRequest consumidor opcional (pode não se identificar).
type DestinatarioRequest struct {
	CpfCnpj string `json:"cpf_cnpj"`
	Nome    string `json:"nome,omitempty"`
}

// ItemNfceRequest linha de produto no corpo de criação.
type ItemNfceRequest struct {
	CodigoProduto string `json:"codigo_produto"`
	Descricao     string `json:"descricao"`
	Ncm           string `json:"ncm"`
	Cfop          string `json:"cfop"`

	UnidadeComercial       string          `json:"unidade_comercial"`
	QuantidadeComercial    decimal.Decimal `json:"quantidade_comercial"`
	ValorUnitarioComercial decimal.Decimal `json:"valor_unitario_comercial"`

	// Tributáveis opcionais; ausentes herdam os comerciais.
	UnidadeTributavel       string           `json:"unidade_tributavel,omitempty"`
	QuantidadeTributavel    *decimal.Decimal `json:"quantidade_tributavel,omitempty"`
	ValorUnitarioTributavel *decimal.Decimal `json:"valor_unitario_tributavel,omitempty"`

	ValorDesconto *decimal.Decimal `json:"valor_desconto,omitempty"`

	Origem string `json:"origem,omitempty"` // default NACIONAL

	CstIcms      string           `json:"cst_icms"`
	AliquotaIcms *decimal.Decimal `json:"aliquota_icms,omitempty"` // presença liga o cálculo de ICMS

	CstPis      string           `json:"cst_pis,omitempty"`
	AliquotaPis *decimal.Decimal `json:"aliquota_pis,omitempty"`

	CstCofins      string           `json:"cst_cofins,omitempty"`
	AliquotaCofins *decimal.Decimal `json:"aliquota_cofins,omitempty"`
}

// PagamentoNfceRequest entrada de pagamento. Os campos de cartão só fazem
// sentido para CARTAO_CREDITO/CARTAO_DEBITO.
type PagamentoNfceRequest struct {
	MeioPagamento     string          `json:"meio_pagamento"`
	Valor             decimal.Decimal `json:"valor"`
	CnpjCredenciadora string          `json:"cnpj_credenciadora,omitempty"`
	BandeiraOperadora string          `json:"bandeira_operadora,omitempty"`
	NumeroAutorizacao string          `json:"numero_autorizacao,omitempty"`
}

// CreateNfceRequest body para POST /api/nfce.
// Serie e Numero são opcionais: série ausente usa a padrão configurada e
// número ausente é alocado sequencialmente dentro da transação de criação.
type CreateNfceRequest struct {
	Serie            int    `json:"serie,omitempty"`
	Numero           int    `json:"numero,omitempty"`
	NaturezaOperacao string `json:"natureza_operacao,omitempty"` // default "VENDA AO CONSUMIDOR"
	Finalidade       string `json:"finalidade,omitempty"`        // default NORMAL

	Emitente     EmitenteRequest        `json:"emitente"`
	Destinatario *DestinatarioRequest   `json:"destinatario,omitempty"`
	Itens        []ItemNfceRequest      `json:"itens"`
	Pagamentos   []PagamentoNfceRequest `json:"pagamentos"`
}

// CancelarNfceRequest body para POST /api/nfce/:id/cancelar.
type CancelarNfceRequest struct {
	Justificativa string `json:"justificativa"`
}

// AutorizarNfceRequest body para POST /api/nfce/:id/autorizar. Protocolo
// vazio gera um protocolo simulado.
type AutorizarNfceRequest struct {
	Protocolo string `json:"protocolo,omitempty"`
}

// TotaisResponse bloco de totais nas respostas.
type TotaisResponse struct {
	ValorTotalProdutos decimal.Decimal `json:"valor_total_produtos"`
	ValorDesconto      decimal.Decimal `json:"valor_desconto"`
	BaseCalculoIcms    decimal.Decimal `json:"base_calculo_icms"`
	ValorIcms          decimal.Decimal `json:"valor_icms"`
	ValorPis           decimal.Decimal `json:"valor_pis"`
	ValorCofins        decimal.Decimal `json:"valor_cofins"`
	ValorFrete         decimal.Decimal `json:"valor_frete"`
	ValorSeguro        decimal.Decimal `json:"valor_seguro"`
	OutrasDespesas     decimal.Decimal `json:"outras_despesas"`
	ValorTotalNota     decimal.Decimal `json:"valor_total_nota"`
}

// ItemNfceResponse linha de detalhe nas respostas.
type ItemNfceResponse struct {
	Id            string `json:"id"`
	NumeroItem    int    `json:"numero_item"`
	CodigoProduto string `json:"codigo_produto"`
	Descricao     string `json:"descricao"`
	Ncm           string `json:"ncm"`
	Cfop          string `json:"cfop"`

	UnidadeComercial       string          `json:"unidade_comercial"`
	QuantidadeComercial    decimal.Decimal `json:"quantidade_comercial"`
	ValorUnitarioComercial decimal.Decimal `json:"valor_unitario_comercial"`
	ValorTotalBruto        decimal.Decimal `json:"valor_total_bruto"`

	ValorDesconto *decimal.Decimal `json:"valor_desconto,omitempty"`

	CstIcms   string           `json:"cst_icms,omitempty"`
	ValorIcms *decimal.Decimal `json:"valor_icms,omitempty"`
}

// PagamentoNfceResponse entrada de pagamento nas respostas.
type PagamentoNfceResponse struct {
	Id                string          `json:"id"`
	MeioPagamento     string          `json:"meio_pagamento"`
	CodigoMeio        string          `json:"codigo_meio"`
	Valor             decimal.Decimal `json:"valor"`
	CnpjCredenciadora string          `json:"cnpj_credenciadora,omitempty"`
	BandeiraOperadora string          `json:"bandeira_operadora,omitempty"`
	NumeroAutorizacao string          `json:"numero_autorizacao,omitempty"`
}

// NfceResponse documento completo para GET /api/nfce/:id.
type NfceResponse struct {
	Id                   string `json:"id"`
	Numero               int    `json:"numero"`
	Serie                int    `json:"serie"`
	ChaveAcesso          string `json:"chave_acesso"`
	ChaveAcessoFormatada string `json:"chave_acesso_formatada"`
	DataEmissao          string `json:"data_emissao"`
	NaturezaOperacao     string `json:"natureza_operacao"`
	Ambiente             string `json:"ambiente"`
	Status               string `json:"status"`

	EmitenteCnpj        string `json:"emitente_cnpj"`
	EmitenteRazaoSocial string `json:"emitente_razao_social"`
	DestinatarioCpfCnpj string `json:"destinatario_cpf_cnpj,omitempty"`

	Totais     TotaisResponse          `json:"totais"`
	Itens      []ItemNfceResponse      `json:"itens"`
	Pagamentos []PagamentoNfceResponse `json:"pagamentos"`

	UrlConsulta               string `json:"url_consulta,omitempty"`
	ProtocoloAutorizacao      string `json:"protocolo_autorizacao,omitempty"`
	DataAutorizacao           string `json:"data_autorizacao,omitempty"`
	JustificativaCancelamento string `json:"justificativa_cancelamento,omitempty"`
}

// NfceResumoResponse versão leve para listagens.
type NfceResumoResponse struct {
	Id             string          `json:"id"`
	Numero         int             `json:"numero"`
	Serie          int             `json:"serie"`
	ChaveAcesso    string          `json:"chave_acesso"`
	DataEmissao    string          `json:"data_emissao"`
	Status         string          `json:"status"`
	EmitenteCnpj   string          `json:"emitente_cnpj"`
	ValorTotalNota decimal.Decimal `json:"valor_total_nota"`
}

// QrCodeResponse URL de consulta do QR Code de um documento.
type QrCodeResponse struct {
	ChaveAcesso string `json:"chave_acesso"`
	UrlConsulta string `json:"url_consulta"`
}

// ValidarQrCodeRequest body para POST /api/qrcode/validar.
type ValidarQrCodeRequest struct {
	Url         string `json:"url"`
	ChaveAcesso string `json:"chave_acesso"`
}

// ValidarQrCodeResponse resultado da conferência do payload.
type ValidarQrCodeResponse struct {
	ChaveAcesso string `json:"chave_acesso"`
	Valida      bool   `json:"valida"`
}

// ChaveAcessoResponse resultado da extração/validação de chave.
type ChaveAcessoResponse struct {
	ChaveAcesso string `json:"chave_acesso"`
	Formatada   string `json:"formatada"`
	Valida      bool   `json:"valida"`
}
