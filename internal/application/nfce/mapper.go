package nfce

import (
	"github.com/setxpro/nfce-api/internal/application/dto"
	"github.com/setxpro/nfce-api/internal/domain/entity"
	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
)

// formato de data/hora nas respostas da API.
const formatoDataHora = "2006-01-02T15:04:05-07:00"

func toNfceResponse(chaves *domnfce.ChaveAcessoService, n *entity.Nfce) *dto.NfceResponse {
	resp := &dto.NfceResponse{
		Id:                   n.ID,
		Numero:               n.Numero,
		Serie:                n.Serie,
		ChaveAcesso:          n.ChaveAcesso,
		ChaveAcessoFormatada: chaves.Formatar(n.ChaveAcesso),
		DataEmissao:          n.DataEmissao.Format(formatoDataHora),
		NaturezaOperacao:     n.NaturezaOperacao,
		Ambiente:             string(n.Ambiente),
		Status:               n.Status,

		EmitenteCnpj:        n.Emitente.CNPJ,
		EmitenteRazaoSocial: n.Emitente.RazaoSocial,

		Totais: dto.TotaisResponse{
			ValorTotalProdutos: n.Totais.ValorTotalProdutos,
			ValorDesconto:      n.Totais.ValorDesconto,
			BaseCalculoIcms:    n.Totais.BaseCalculoICMS,
			ValorIcms:          n.Totais.ValorICMS,
			ValorPis:           n.Totais.ValorPIS,
			ValorCofins:        n.Totais.ValorCOFINS,
			ValorFrete:         n.Totais.ValorFrete,
			ValorSeguro:        n.Totais.ValorSeguro,
			OutrasDespesas:     n.Totais.OutrasDespesas,
			ValorTotalNota:     n.Totais.ValorTotalNota,
		},

		UrlConsulta:               n.URLConsulta,
		ProtocoloAutorizacao:      n.ProtocoloAutorizacao,
		JustificativaCancelamento: n.JustificativaCancelamento,

		Itens:      make([]dto.ItemNfceResponse, 0, len(n.Itens)),
		Pagamentos: make([]dto.PagamentoNfceResponse, 0, len(n.Pagamentos)),
	}
	if n.Destinatario != nil {
		resp.DestinatarioCpfCnpj = n.Destinatario.CpfCnpj
	}
	if n.DataAutorizacao != nil {
		resp.DataAutorizacao = n.DataAutorizacao.Format(formatoDataHora)
	}

	for _, item := range n.Itens {
		resp.Itens = append(resp.Itens, dto.ItemNfceResponse{
			Id:            item.ID,
			NumeroItem:    item.NumeroItem,
			CodigoProduto: item.CodigoProduto,
			Descricao:     item.Descricao,
			Ncm:           item.NCM,
			Cfop:          item.CFOP,

			UnidadeComercial:       item.UnidadeComercial,
			QuantidadeComercial:    item.QuantidadeComercial,
			ValorUnitarioComercial: item.ValorUnitarioComercial,
			ValorTotalBruto:        item.ValorTotalBruto,

			ValorDesconto: item.ValorDesconto,
			CstIcms:       item.CstICMS,
			ValorIcms:     item.ValorICMS,
		})
	}
	for _, pg := range n.Pagamentos {
		resp.Pagamentos = append(resp.Pagamentos, dto.PagamentoNfceResponse{
			Id:                pg.ID,
			MeioPagamento:     string(pg.MeioPagamento),
			CodigoMeio:        pg.MeioPagamento.Codigo(),
			Valor:             pg.Valor,
			CnpjCredenciadora: pg.CnpjCredenciadora,
			BandeiraOperadora: pg.BandeiraOperadora,
			NumeroAutorizacao: pg.NumeroAutorizacao,
		})
	}
	return resp
}

func toNfceResumo(n *entity.Nfce) dto.NfceResumoResponse {
	return dto.NfceResumoResponse{
		Id:             n.ID,
		Numero:         n.Numero,
		Serie:          n.Serie,
		ChaveAcesso:    n.ChaveAcesso,
		DataEmissao:    n.DataEmissao.Format(formatoDataHora),
		Status:         n.Status,
		EmitenteCnpj:   n.Emitente.CNPJ,
		ValorTotalNota: n.Totais.ValorTotalNota,
	}
}
