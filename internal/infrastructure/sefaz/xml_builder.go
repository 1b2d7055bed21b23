// Package sefaz serializa e lê o XML da NFC-e no layout da NF-e 4.00
// (Manual de Orientação do Contribuinte).
package sefaz

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/setxpro/nfce-api/internal/domain/entity"
	"github.com/setxpro/nfce-api/pkg/fiscal"
)

// NamespaceNFe namespace oficial do portal fiscal.
const NamespaceNFe = "http://www.portalfiscal.inf.br/nfe"

// VersaoLayout versão do layout serializado.
const VersaoLayout = "4.00"

// versão da aplicação registrada no protocolo simulado.
const verAplic = "nfce-api 1.0"

// XMLBuilderService monta o XML canônico do documento. A mesma entrada
// produz sempre os mesmos bytes: a ordem dos elementos é fixa e os decimais
// saem com escala determinada (2 para valores, 4 para quantidades e
// alíquotas de PIS/COFINS, 10 para unitários).
type XMLBuilderService struct{}

// NewXMLBuilderService cria o serviço.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build gera o XML nfeProc (sem bloco de protocolo).
func (s *XMLBuilderService) Build(n *entity.Nfce) (string, error) {
	return s.build(n, false)
}

// BuildProc gera o XML autorizado: nfeProc com o bloco protNFe preenchido a
// partir do protocolo e da data de autorização do documento.
func (s *XMLBuilderService) BuildProc(n *entity.Nfce) (string, error) {
	if n.ProtocoloAutorizacao == "" || n.DataAutorizacao == nil {
		return "", fmt.Errorf("sefaz: documento sem protocolo de autorização")
	}
	return s.build(n, true)
}

func (s *XMLBuilderService) build(n *entity.Nfce, comProtocolo bool) (string, error) {
	if err := validarObrigatorios(n); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	nfeProc := xml.StartElement{
		Name: xml.Name{Local: "nfeProc"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "versao"}, Value: VersaoLayout},
			{Name: xml.Name{Local: "xmlns"}, Value: NamespaceNFe},
		},
	}
	if err := enc.EncodeToken(nfeProc); err != nil {
		return "", err
	}

	abrir(enc, "NFe")
	infNFe := xml.StartElement{
		Name: xml.Name{Local: "infNFe"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "Id"}, Value: "NFe" + n.ChaveAcesso},
			{Name: xml.Name{Local: "versao"}, Value: VersaoLayout},
		},
	}
	_ = enc.EncodeToken(infNFe)

	s.escreverIde(enc, n)
	s.escreverEmit(enc, n)
	if n.Destinatario != nil && n.Destinatario.CpfCnpj != "" {
		s.escreverDest(enc, n.Destinatario)
	}
	for _, item := range n.Itens {
		s.escreverDet(enc, item)
	}
	s.escreverTotal(enc, n)

	// transporte sem frete (modFrete 9): NFC-e é operação presencial
	abrir(enc, "transp")
	texto(enc, "modFrete", "9")
	fechar(enc, "transp")

	s.escreverPag(enc, n)
	s.escreverInfAdic(enc)

	fechar(enc, "infNFe")
	fechar(enc, "NFe")

	if comProtocolo {
		s.escreverProtNFe(enc, n)
	}

	if err := enc.EncodeToken(nfeProc.End()); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formato de data/hora dos campos dhEmi e dhRecbto.
const formatoDataHoraXML = "2006-01-02T15:04:05-07:00"

func (s *XMLBuilderService) escreverIde(enc *xml.Encoder, n *entity.Nfce) {
	abrir(enc, "ide")
	texto(enc, "cUF", strconv.Itoa(fiscal.CodigoUF(n.Emitente.UF)))
	texto(enc, "cNF", n.ChaveAcesso[35:43])
	texto(enc, "natOp", n.NaturezaOperacao)
	texto(enc, "mod", "65")
	texto(enc, "serie", strconv.Itoa(n.Serie))
	texto(enc, "nNF", strconv.Itoa(n.Numero))
	texto(enc, "dhEmi", n.DataEmissao.Format(formatoDataHoraXML))
	texto(enc, "tpNF", strconv.Itoa(n.TipoOperacao.Codigo()))
	texto(enc, "idDest", "1") // operação interna
	texto(enc, "cMunFG", strconv.Itoa(n.Emitente.CodigoMunicipio))
	texto(enc, "tpImp", "4") // DANFE NFC-e
	texto(enc, "tpEmis", "1")
	texto(enc, "cDV", n.ChaveAcesso[43:])
	texto(enc, "tpAmb", strconv.Itoa(n.Ambiente.Codigo()))
	texto(enc, "finNFe", strconv.Itoa(n.Finalidade.Codigo()))
	texto(enc, "indFinal", "1") // consumidor final
	texto(enc, "indPres", "1")  // operação presencial
	texto(enc, "indIntermed", "0")
	fechar(enc, "ide")
}

func (s *XMLBuilderService) escreverEmit(enc *xml.Encoder, n *entity.Nfce) {
	emit := n.Emitente
	abrir(enc, "emit")
	texto(enc, "CNPJ", emit.CNPJ)
	texto(enc, "xNome", emit.RazaoSocial)
	if emit.NomeFantasia != "" {
		texto(enc, "xFant", emit.NomeFantasia)
	}

	abrir(enc, "enderEmit")
	texto(enc, "xLgr", emit.Logradouro)
	texto(enc, "nro", emit.Numero)
	texto(enc, "xBairro", emit.Bairro)
	texto(enc, "cMun", strconv.Itoa(emit.CodigoMunicipio))
	texto(enc, "xMun", emit.Municipio)
	texto(enc, "UF", emit.UF)
	texto(enc, "CEP", emit.CEP)
	fechar(enc, "enderEmit")

	if emit.InscricaoEstadual != "" {
		texto(enc, "IE", emit.InscricaoEstadual)
	}
	texto(enc, "CRT", strconv.Itoa(emit.RegimeTributario.Codigo()))
	fechar(enc, "emit")
}

func (s *XMLBuilderService) escreverDest(enc *xml.Encoder, dest *entity.Destinatario) {
	abrir(enc, "dest")
	if len(dest.CpfCnpj) == 11 {
		texto(enc, "CPF", dest.CpfCnpj)
	} else {
		texto(enc, "CNPJ", dest.CpfCnpj)
	}
	if dest.Nome != "" {
		texto(enc, "xNome", dest.Nome)
	}
	texto(enc, "indIEDest", "9") // não contribuinte
	fechar(enc, "dest")
}

func (s *XMLBuilderService) escreverDet(enc *xml.Encoder, item *entity.ItemNfce) {
	det := xml.StartElement{
		Name: xml.Name{Local: "det"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "nItem"}, Value: strconv.Itoa(item.NumeroItem)}},
	}
	_ = enc.EncodeToken(det)

	abrir(enc, "prod")
	texto(enc, "cProd", item.CodigoProduto)
	texto(enc, "cEAN", "")
	texto(enc, "xProd", item.Descricao)
	texto(enc, "NCM", item.NCM)
	texto(enc, "CFOP", item.CFOP)
	texto(enc, "uCom", item.UnidadeComercial)
	texto(enc, "qCom", formatDecimal(&item.QuantidadeComercial, 4))
	texto(enc, "vUnCom", formatDecimal(&item.ValorUnitarioComercial, 10))
	texto(enc, "vProd", formatDecimal(&item.ValorTotalBruto, 2))
	texto(enc, "cEANTrib", "")
	texto(enc, "uTrib", item.UnidadeTributavel)
	texto(enc, "qTrib", formatDecimal(&item.QuantidadeTributavel, 4))
	texto(enc, "vUnTrib", formatDecimal(&item.ValorUnitarioTributavel, 10))
	if item.ValorDesconto != nil && item.ValorDesconto.GreaterThan(decimal.Zero) {
		texto(enc, "vDesc", formatDecimal(item.ValorDesconto, 2))
	}
	texto(enc, "indTot", "1")
	fechar(enc, "prod")

	abrir(enc, "imposto")
	s.escreverICMS(enc, item)
	if item.CstPIS != "" {
		s.escreverPIS(enc, item)
	}
	if item.CstCOFINS != "" {
		s.escreverCOFINS(enc, item)
	}
	fechar(enc, "imposto")

	_ = enc.EncodeToken(det.End())
}

// escreverICMS emite o grupo <ICMS><ICMS{cst}> com os campos presentes no
// item. O nome do elemento interno deriva do CST/CSOSN.
func (s *XMLBuilderService) escreverICMS(enc *xml.Encoder, item *entity.ItemNfce) {
	abrir(enc, "ICMS")
	grupo := "ICMS" + item.CstICMS
	abrir(enc, grupo)
	texto(enc, "orig", strconv.Itoa(item.OrigemMercadoria.Codigo()))
	texto(enc, "CST", item.CstICMS)
	if item.ModalidadeBC != nil {
		texto(enc, "modBC", strconv.Itoa(*item.ModalidadeBC))
	}
	if item.BaseCalculoICMS != nil {
		texto(enc, "vBC", formatDecimal(item.BaseCalculoICMS, 2))
	}
	if item.AliquotaICMS != nil {
		texto(enc, "pICMS", formatDecimal(item.AliquotaICMS, 2))
	}
	if item.ValorICMS != nil {
		texto(enc, "vICMS", formatDecimal(item.ValorICMS, 2))
	}
	fechar(enc, grupo)
	fechar(enc, "ICMS")
}

func (s *XMLBuilderService) escreverPIS(enc *xml.Encoder, item *entity.ItemNfce) {
	abrir(enc, "PIS")
	grupo := "PIS" + item.CstPIS
	abrir(enc, grupo)
	texto(enc, "CST", item.CstPIS)
	if item.BaseCalculoPIS != nil {
		texto(enc, "vBC", formatDecimal(item.BaseCalculoPIS, 2))
		texto(enc, "pPIS", formatDecimal(item.AliquotaPIS, 4))
		texto(enc, "vPIS", formatDecimal(item.ValorPIS, 2))
	}
	fechar(enc, grupo)
	fechar(enc, "PIS")
}

func (s *XMLBuilderService) escreverCOFINS(enc *xml.Encoder, item *entity.ItemNfce) {
	abrir(enc, "COFINS")
	grupo := "COFINS" + item.CstCOFINS
	abrir(enc, grupo)
	texto(enc, "CST", item.CstCOFINS)
	if item.BaseCalculoCOFINS != nil {
		texto(enc, "vBC", formatDecimal(item.BaseCalculoCOFINS, 2))
		texto(enc, "pCOFINS", formatDecimal(item.AliquotaCOFINS, 4))
		texto(enc, "vCOFINS", formatDecimal(item.ValorCOFINS, 2))
	}
	fechar(enc, grupo)
	fechar(enc, "COFINS")
}

func (s *XMLBuilderService) escreverTotal(enc *xml.Encoder, n *entity.Nfce) {
	t := n.Totais
	abrir(enc, "total")
	abrir(enc, "ICMSTot")
	texto(enc, "vBC", formatDecimal(&t.BaseCalculoICMS, 2))
	texto(enc, "vICMS", formatDecimal(&t.ValorICMS, 2))
	texto(enc, "vICMSDeson", "0.00")
	texto(enc, "vFCP", "0.00")
	texto(enc, "vBCST", formatDecimal(&t.BaseCalculoICMSST, 2))
	texto(enc, "vST", formatDecimal(&t.ValorICMSST, 2))
	texto(enc, "vFCPST", "0.00")
	texto(enc, "vFCPSTRet", "0.00")
	texto(enc, "vProd", formatDecimal(&t.ValorTotalProdutos, 2))
	texto(enc, "vFrete", formatDecimal(&t.ValorFrete, 2))
	texto(enc, "vSeg", formatDecimal(&t.ValorSeguro, 2))
	texto(enc, "vDesc", formatDecimal(&t.ValorDesconto, 2))
	texto(enc, "vII", "0.00")
	texto(enc, "vIPI", "0.00")
	texto(enc, "vIPIDevol", "0.00")
	texto(enc, "vPIS", formatDecimal(&t.ValorPIS, 2))
	texto(enc, "vCOFINS", formatDecimal(&t.ValorCOFINS, 2))
	texto(enc, "vOutro", formatDecimal(&t.OutrasDespesas, 2))
	texto(enc, "vNF", formatDecimal(&t.ValorTotalNota, 2))
	fechar(enc, "ICMSTot")
	fechar(enc, "total")
}

func (s *XMLBuilderService) escreverPag(enc *xml.Encoder, n *entity.Nfce) {
	abrir(enc, "pag")
	for _, pg := range n.Pagamentos {
		abrir(enc, "detPag")
		texto(enc, "tPag", pg.MeioPagamento.Codigo())
		texto(enc, "vPag", formatDecimal(&pg.Valor, 2))
		if pg.CnpjCredenciadora != "" {
			abrir(enc, "card")
			texto(enc, "CNPJ", pg.CnpjCredenciadora)
			if pg.BandeiraOperadora != "" {
				texto(enc, "tBand", pg.BandeiraOperadora)
			}
			if pg.NumeroAutorizacao != "" {
				texto(enc, "cAut", pg.NumeroAutorizacao)
			}
			fechar(enc, "card")
		}
		fechar(enc, "detPag")
	}
	fechar(enc, "pag")
}

func (s *XMLBuilderService) escreverInfAdic(enc *xml.Encoder) {
	abrir(enc, "infAdic")
	texto(enc, "infCpl",
		"Documento emitido por ME/EPP optante pelo Simples Nacional. "+
			"Não gera direito a crédito fiscal de IPI. "+
			"Não gera direito a crédito fiscal de ICMS.")
	fechar(enc, "infAdic")
}

func (s *XMLBuilderService) escreverProtNFe(enc *xml.Encoder, n *entity.Nfce) {
	protNFe := xml.StartElement{
		Name: xml.Name{Local: "protNFe"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "versao"}, Value: VersaoLayout}},
	}
	_ = enc.EncodeToken(protNFe)
	abrir(enc, "infProt")
	texto(enc, "tpAmb", strconv.Itoa(n.Ambiente.Codigo()))
	texto(enc, "verAplic", verAplic)
	texto(enc, "chNFe", n.ChaveAcesso)
	texto(enc, "dhRecbto", n.DataAutorizacao.Format(formatoDataHoraXML))
	texto(enc, "nProt", n.ProtocoloAutorizacao)
	texto(enc, "cStat", "100")
	texto(enc, "xMotivo", "Autorizado o uso da NF-e")
	fechar(enc, "infProt")
	_ = enc.EncodeToken(protNFe.End())
}

func validarObrigatorios(n *entity.Nfce) error {
	switch {
	case n == nil:
		return fmt.Errorf("sefaz: documento nulo")
	case len(n.ChaveAcesso) != 44:
		return fmt.Errorf("sefaz: chave de acesso ausente ou malformada")
	case n.Emitente.CNPJ == "":
		return fmt.Errorf("sefaz: CNPJ do emitente ausente")
	case n.Emitente.RazaoSocial == "":
		return fmt.Errorf("sefaz: razão social do emitente ausente")
	case len(n.Itens) == 0:
		return fmt.Errorf("sefaz: documento sem itens")
	case len(n.Pagamentos) == 0:
		return fmt.Errorf("sefaz: documento sem pagamentos")
	}
	return nil
}

func abrir(enc *xml.Encoder, local string) {
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: local}})
}

func fechar(enc *xml.Encoder, local string) {
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: local}})
}

func texto(enc *xml.Encoder, local, valor string) {
	abrir(enc, local)
	_ = enc.EncodeToken(xml.CharData(valor))
	fechar(enc, local)
}

// formatDecimal formata um decimal com a escala pedida (half-up). Campo
// ausente sai como "0.00", nunca vazio.
func formatDecimal(d *decimal.Decimal, escala int) string {
	if d == nil {
		return "0.00"
	}
	return d.StringFixed(int32(escala))
}
