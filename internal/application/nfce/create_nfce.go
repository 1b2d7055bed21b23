package nfce

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/setxpro/nfce-api/internal/application/dto"
	"github.com/setxpro/nfce-api/internal/domain"
	"github.com/setxpro/nfce-api/internal/domain/entity"
	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
	"github.com/setxpro/nfce-api/internal/domain/repository"
	"github.com/setxpro/nfce-api/pkg/fiscal"
)

// Config parâmetros de emissão injetados nos casos de uso.
type Config struct {
	Ambiente      entity.Ambiente
	SeriePadrao   int
	NumeroInicial int
}

// naturezaOperacaoPadrao usada quando a requisição não informa.
const naturezaOperacaoPadrao = "VENDA AO CONSUMIDOR"

// CreateNfceUseCase cria a NFC-e: valida a requisição, monta itens e
// pagamentos, agrega totais, aloca número, gera chave de acesso e URL do QR
// Code e persiste tudo em uma única transação.
type CreateNfceUseCase struct {
	txRunner TxRunner
	chaves   *domnfce.ChaveAcessoService
	qrcode   *domnfce.QrCodeService
	cfg      Config
}

// NewCreateNfceUseCase constrói o caso de uso.
func NewCreateNfceUseCase(txRunner TxRunner, chaves *domnfce.ChaveAcessoService,
	qrcode *domnfce.QrCodeService, cfg Config) *CreateNfceUseCase {
	return &CreateNfceUseCase{
		txRunner: txRunner,
		chaves:   chaves,
		qrcode:   qrcode,
		cfg:      cfg,
	}
}

// Create cria o documento em RASCUNHO e devolve a representação completa.
//
// A alocação de número e a checagem de duplicidade acontecem dentro da mesma
// transação que grava o documento; a constraint única de (numero, serie) no
// armazenamento cobre a corrida entre emissores concorrentes — violação chega
// aqui como domain.ErrDuplicate.
func (uc *CreateNfceUseCase) Create(ctx context.Context, in dto.CreateNfceRequest) (*dto.NfceResponse, error) {
	if err := validarCreateRequest(in); err != nil {
		return nil, err
	}

	now := time.Now()
	n := &entity.Nfce{
		ID:               uuid.New().String(),
		DataEmissao:      now,
		NaturezaOperacao: naturezaOperacao(in.NaturezaOperacao),
		TipoOperacao:     entity.OperacaoSaida,
		Finalidade:       finalidade(in.Finalidade),
		Ambiente:         uc.cfg.Ambiente,
		Status:           entity.StatusRascunho,
		Emitente:         montarEmitente(in.Emitente),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if in.Destinatario != nil {
		n.Destinatario = &entity.Destinatario{
			CpfCnpj: fiscal.SomenteDigitos(in.Destinatario.CpfCnpj),
			Nome:    fiscal.NormalizarTexto(in.Destinatario.Nome),
		}
	}

	for i, itemReq := range in.Itens {
		item, err := montarItem(n.ID, i+1, itemReq)
		if err != nil {
			return nil, err
		}
		n.Itens = append(n.Itens, item)
	}
	domnfce.CalcularTotais(n)

	var somaPagamentos decimal.Decimal
	for _, pgReq := range in.Pagamentos {
		pg := &entity.PagamentoNfce{
			ID:                uuid.New().String(),
			NfceID:            n.ID,
			MeioPagamento:     entity.MeioPagamento(pgReq.MeioPagamento),
			Valor:             pgReq.Valor,
			CnpjCredenciadora: fiscal.SomenteDigitos(pgReq.CnpjCredenciadora),
			BandeiraOperadora: pgReq.BandeiraOperadora,
			NumeroAutorizacao: pgReq.NumeroAutorizacao,
		}
		n.Pagamentos = append(n.Pagamentos, pg)
		somaPagamentos = somaPagamentos.Add(pg.Valor)
	}
	if !somaPagamentos.Equal(n.Totais.ValorTotalNota) {
		return nil, fmt.Errorf("%w: soma dos pagamentos (%s) difere do valor total da nota (%s)",
			domain.ErrInvalidInput, somaPagamentos.StringFixed(2), n.Totais.ValorTotalNota.StringFixed(2))
	}

	serie := in.Serie
	if serie == 0 {
		serie = uc.cfg.SeriePadrao
	}
	n.Serie = serie

	err := uc.txRunner.Run(ctx, func(repo repository.NfceRepository) error {
		numero := in.Numero
		if numero == 0 {
			max, existe, err := repo.MaxNumeroBySerie(ctx, serie)
			if err != nil {
				return err
			}
			if existe {
				numero = max + 1
			} else {
				numero = uc.cfg.NumeroInicial
			}
		} else {
			ocupado, err := repo.ExistsByNumeroAndSerie(ctx, numero, serie)
			if err != nil {
				return err
			}
			if ocupado {
				return domain.ErrDuplicate
			}
		}
		n.Numero = numero

		chave, err := uc.chaves.GerarNfce(fiscal.CodigoUF(n.Emitente.UF), n.DataEmissao,
			n.Emitente.CNPJ, n.Serie, n.Numero, domnfce.TipoEmissaoNormal)
		if err != nil {
			return err
		}
		n.ChaveAcesso = chave

		destinatario := ""
		if n.Destinatario != nil {
			destinatario = n.Destinatario.CpfCnpj
		}
		n.URLConsulta = uc.qrcode.GerarURL(chave, n.Ambiente.Codigo(), n.DataEmissao,
			n.Totais.ValorTotalNota, destinatario)

		if err := repo.Create(ctx, n); err != nil {
			return err
		}
		for _, item := range n.Itens {
			if err := repo.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		for _, pg := range n.Pagamentos {
			if err := repo.CreatePagamento(ctx, pg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toNfceResponse(uc.chaves, n), nil
}

func naturezaOperacao(s string) string {
	if s == "" {
		return naturezaOperacaoPadrao
	}
	return fiscal.NormalizarTexto(s)
}

func finalidade(s string) entity.FinalidadeEmissao {
	if s == "" {
		return entity.FinalidadeNormal
	}
	return entity.FinalidadeEmissao(s)
}

func montarEmitente(in dto.EmitenteRequest) entity.Emitente {
	regime := entity.RegimeTributario(in.RegimeTributario)
	if in.RegimeTributario == "" {
		regime = entity.RegimeSimplesNacional
	}
	return entity.Emitente{
		CNPJ:              fiscal.SomenteDigitos(in.Cnpj),
		RazaoSocial:       fiscal.NormalizarTexto(in.RazaoSocial),
		NomeFantasia:      fiscal.NormalizarTexto(in.NomeFantasia),
		Logradouro:        fiscal.NormalizarTexto(in.Logradouro),
		Numero:            in.Numero,
		Bairro:            fiscal.NormalizarTexto(in.Bairro),
		Municipio:         fiscal.NormalizarTexto(in.Municipio),
		UF:                in.Uf,
		CEP:               fiscal.SomenteDigitos(in.Cep),
		CodigoMunicipio:   in.CodigoMunicipio,
		InscricaoEstadual: fiscal.SomenteDigitos(in.InscricaoEstadual),
		RegimeTributario:  regime,
	}
}

// montarItem constrói a linha de detalhe: fixa o valor total bruto
// (quantidade × valor unitário, 2 casas), herda os campos tributáveis dos
// comerciais quando ausentes e calcula os tributos cujas alíquotas vieram na
// requisição.
func montarItem(nfceID string, numeroItem int, in dto.ItemNfceRequest) (*entity.ItemNfce, error) {
	origem := entity.OrigemMercadoria(in.Origem)
	if in.Origem == "" {
		origem = entity.OrigemNacional
	}

	item := &entity.ItemNfce{
		ID:            uuid.New().String(),
		NfceID:        nfceID,
		NumeroItem:    numeroItem,
		CodigoProduto: in.CodigoProduto,
		Descricao:     fiscal.NormalizarTexto(in.Descricao),
		NCM:           fiscal.SomenteDigitos(in.Ncm),
		CFOP:          fiscal.SomenteDigitos(in.Cfop),

		UnidadeComercial:       in.UnidadeComercial,
		QuantidadeComercial:    in.QuantidadeComercial,
		ValorUnitarioComercial: in.ValorUnitarioComercial,
		ValorTotalBruto:        in.QuantidadeComercial.Mul(in.ValorUnitarioComercial).Round(2),

		ValorDesconto:    in.ValorDesconto,
		OrigemMercadoria: origem,
		CstICMS:          cstOuPadrao(in.CstIcms, "102"),
		CstPIS:           cstOuPadrao(in.CstPis, "49"),
		CstCOFINS:        cstOuPadrao(in.CstCofins, "49"),
	}

	item.UnidadeTributavel = in.UnidadeTributavel
	if item.UnidadeTributavel == "" {
		item.UnidadeTributavel = in.UnidadeComercial
	}
	item.QuantidadeTributavel = in.QuantidadeComercial
	if in.QuantidadeTributavel != nil {
		item.QuantidadeTributavel = *in.QuantidadeTributavel
	}
	item.ValorUnitarioTributavel = in.ValorUnitarioComercial
	if in.ValorUnitarioTributavel != nil {
		item.ValorUnitarioTributavel = *in.ValorUnitarioTributavel
	}

	// base de cálculo comum: valor bruto menos desconto
	base := item.ValorTotalBruto
	if item.ValorDesconto != nil {
		base = base.Sub(*item.ValorDesconto)
	}

	if in.AliquotaIcms != nil {
		valor := domnfce.CalcularValorICMS(base, *in.AliquotaIcms)
		modalidade := 3 // valor da operação
		item.ModalidadeBC = &modalidade
		item.BaseCalculoICMS = &base
		item.AliquotaICMS = in.AliquotaIcms
		item.ValorICMS = &valor
	}
	if in.AliquotaPis != nil {
		valor := calcularTributo(base, *in.AliquotaPis)
		item.BaseCalculoPIS = &base
		item.AliquotaPIS = in.AliquotaPis
		item.ValorPIS = &valor
	}
	if in.AliquotaCofins != nil {
		valor := calcularTributo(base, *in.AliquotaCofins)
		item.BaseCalculoCOFINS = &base
		item.AliquotaCOFINS = in.AliquotaCofins
		item.ValorCOFINS = &valor
	}

	return item, nil
}

func cstOuPadrao(cst, padrao string) string {
	if cst == "" {
		return padrao
	}
	return cst
}

// calcularTributo base × alíquota / 100, arredondado a 2 casas.
func calcularTributo(base, aliquota decimal.Decimal) decimal.Decimal {
	return base.Mul(aliquota).Div(decimal.NewFromInt(100)).Round(2)
}

func validarCreateRequest(in dto.CreateNfceRequest) error {
	if len(in.Itens) == 0 {
		return fmt.Errorf("%w: a nota deve ter pelo menos um item", domain.ErrInvalidInput)
	}
	if len(in.Pagamentos) == 0 {
		return fmt.Errorf("%w: a nota deve ter pelo menos um pagamento", domain.ErrInvalidInput)
	}
	if in.Serie < 0 || in.Numero < 0 {
		return fmt.Errorf("%w: série e número não podem ser negativos", domain.ErrInvalidInput)
	}

	if err := fiscal.ValidarCNPJ(in.Emitente.Cnpj); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.Emitente.RazaoSocial == "" {
		return fmt.Errorf("%w: razão social do emitente é obrigatória", domain.ErrInvalidInput)
	}
	if fiscal.CodigoUF(in.Emitente.Uf) == 0 {
		return fmt.Errorf("%w: UF do emitente desconhecida: %q", domain.ErrInvalidInput, in.Emitente.Uf)
	}
	if in.Emitente.CodigoMunicipio <= 0 {
		return fmt.Errorf("%w: código de município do emitente é obrigatório", domain.ErrInvalidInput)
	}

	if in.Destinatario != nil && in.Destinatario.CpfCnpj != "" {
		if err := fiscal.ValidarCpfCnpj(in.Destinatario.CpfCnpj); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}

	for i, item := range in.Itens {
		if item.Descricao == "" {
			return fmt.Errorf("%w: item %d sem descrição", domain.ErrInvalidInput, i+1)
		}
		if len(fiscal.SomenteDigitos(item.Ncm)) != 8 {
			return fmt.Errorf("%w: item %d com NCM inválido (8 dígitos)", domain.ErrInvalidInput, i+1)
		}
		if len(fiscal.SomenteDigitos(item.Cfop)) != 4 {
			return fmt.Errorf("%w: item %d com CFOP inválido (4 dígitos)", domain.ErrInvalidInput, i+1)
		}
		if !item.QuantidadeComercial.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: item %d com quantidade não positiva", domain.ErrInvalidInput, i+1)
		}
		if item.ValorUnitarioComercial.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: item %d com valor unitário negativo", domain.ErrInvalidInput, i+1)
		}
		if item.CstIcms != "" && !fiscal.CstICMSValido(item.CstIcms) {
			return fmt.Errorf("%w: item %d com CST/CSOSN de ICMS desconhecido: %q", domain.ErrInvalidInput, i+1, item.CstIcms)
		}
		if item.CstPis != "" && !fiscal.CstPisCofinsValido(item.CstPis) {
			return fmt.Errorf("%w: item %d com CST de PIS desconhecido: %q", domain.ErrInvalidInput, i+1, item.CstPis)
		}
		if item.CstCofins != "" && !fiscal.CstPisCofinsValido(item.CstCofins) {
			return fmt.Errorf("%w: item %d com CST de COFINS desconhecido: %q", domain.ErrInvalidInput, i+1, item.CstCofins)
		}
	}

	for i, pg := range in.Pagamentos {
		if !entity.MeioPagamentoValido(entity.MeioPagamento(pg.MeioPagamento)) {
			return fmt.Errorf("%w: pagamento %d com meio desconhecido: %q", domain.ErrInvalidInput, i+1, pg.MeioPagamento)
		}
		if !pg.Valor.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: pagamento %d com valor não positivo", domain.ErrInvalidInput, i+1)
		}
	}

	return nil
}
