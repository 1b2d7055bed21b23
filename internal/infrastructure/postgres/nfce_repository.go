package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/setxpro/nfce-api/internal/domain"
	"github.com/setxpro/nfce-api/internal/domain/entity"
	"github.com/setxpro/nfce-api/internal/domain/repository"
)

var _ repository.NfceRepository = (*NfceRepo)(nil)

// NfceRepo implementação de NfceRepository (usável com pool ou tx).
type NfceRepo struct {
	q Querier
}

// NewNfceRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewNfceRepository(q Querier) *NfceRepo {
	return &NfceRepo{q: q}
}

// colunas da tabela nfce na ordem de scanNfce.
const colunasNfce = `
	id, numero, serie, chave_acesso, data_emissao, natureza_operacao,
	tipo_operacao, finalidade, ambiente, status,
	emitente_cnpj, emitente_razao_social, COALESCE(emitente_nome_fantasia, ''),
	emitente_logradouro, emitente_numero, emitente_bairro, emitente_municipio,
	emitente_uf, emitente_cep, emitente_codigo_municipio,
	COALESCE(emitente_inscricao_estadual, ''), emitente_regime_tributario,
	COALESCE(destinatario_cpf_cnpj, ''), COALESCE(destinatario_nome, ''),
	valor_total_produtos, valor_desconto, base_calculo_icms, valor_icms,
	base_calculo_icms_st, valor_icms_st, valor_pis, valor_cofins,
	valor_frete, valor_seguro, outras_despesas, valor_total_nota,
	COALESCE(protocolo_autorizacao, ''), data_autorizacao,
	COALESCE(justificativa_cancelamento, ''),
	COALESCE(xml_assinado, ''), COALESCE(xml_autorizado, ''), COALESCE(url_consulta, ''),
	created_at, updated_at`

// Create persiste o cabeçalho da NFC-e. Violação das constraints únicas de
// (numero, serie) ou chave_acesso vira domain.ErrDuplicate.
func (r *NfceRepo) Create(ctx context.Context, n *entity.Nfce) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	query := `
		INSERT INTO nfce (
			id, numero, serie, chave_acesso, data_emissao, natureza_operacao,
			tipo_operacao, finalidade, ambiente, status,
			emitente_cnpj, emitente_razao_social, emitente_nome_fantasia,
			emitente_logradouro, emitente_numero, emitente_bairro, emitente_municipio,
			emitente_uf, emitente_cep, emitente_codigo_municipio,
			emitente_inscricao_estadual, emitente_regime_tributario,
			destinatario_cpf_cnpj, destinatario_nome,
			valor_total_produtos, valor_desconto, base_calculo_icms, valor_icms,
			base_calculo_icms_st, valor_icms_st, valor_pis, valor_cofins,
			valor_frete, valor_seguro, outras_despesas, valor_total_nota,
			url_consulta, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22,
			$23, $24,
			$25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36,
			$37, $38, $39
		)`

	var destCpfCnpj, destNome *string
	if n.Destinatario != nil {
		destCpfCnpj = nullIfEmpty(n.Destinatario.CpfCnpj)
		destNome = nullIfEmpty(n.Destinatario.Nome)
	}

	_, err := r.q.Exec(ctx, query,
		n.ID, n.Numero, n.Serie, n.ChaveAcesso, n.DataEmissao, n.NaturezaOperacao,
		string(n.TipoOperacao), string(n.Finalidade), string(n.Ambiente), n.Status,
		n.Emitente.CNPJ, n.Emitente.RazaoSocial, nullIfEmpty(n.Emitente.NomeFantasia),
		n.Emitente.Logradouro, n.Emitente.Numero, n.Emitente.Bairro, n.Emitente.Municipio,
		n.Emitente.UF, n.Emitente.CEP, n.Emitente.CodigoMunicipio,
		nullIfEmpty(n.Emitente.InscricaoEstadual), string(n.Emitente.RegimeTributario),
		destCpfCnpj, destNome,
		n.Totais.ValorTotalProdutos, n.Totais.ValorDesconto, n.Totais.BaseCalculoICMS, n.Totais.ValorICMS,
		n.Totais.BaseCalculoICMSST, n.Totais.ValorICMSST, n.Totais.ValorPIS, n.Totais.ValorCOFINS,
		n.Totais.ValorFrete, n.Totais.ValorSeguro, n.Totais.OutrasDespesas, n.Totais.ValorTotalNota,
		nullIfEmpty(n.URLConsulta), n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert nfce: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha de detalhe.
func (r *NfceRepo) CreateItem(ctx context.Context, item *entity.ItemNfce) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO item_nfce (
			id, nfce_id, numero_item, codigo_produto, descricao, ncm, cfop,
			unidade_comercial, quantidade_comercial, valor_unitario_comercial, valor_total_bruto,
			unidade_tributavel, quantidade_tributavel, valor_unitario_tributavel,
			valor_desconto, origem_mercadoria,
			cst_icms, modalidade_bc, base_calculo_icms, aliquota_icms, valor_icms,
			cst_pis, base_calculo_pis, aliquota_pis, valor_pis,
			cst_cofins, base_calculo_cofins, aliquota_cofins, valor_cofins
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29
		)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.NfceID, item.NumeroItem, item.CodigoProduto, item.Descricao, item.NCM, item.CFOP,
		item.UnidadeComercial, item.QuantidadeComercial, item.ValorUnitarioComercial, item.ValorTotalBruto,
		item.UnidadeTributavel, item.QuantidadeTributavel, item.ValorUnitarioTributavel,
		item.ValorDesconto, string(item.OrigemMercadoria),
		item.CstICMS, item.ModalidadeBC, item.BaseCalculoICMS, item.AliquotaICMS, item.ValorICMS,
		nullIfEmpty(item.CstPIS), item.BaseCalculoPIS, item.AliquotaPIS, item.ValorPIS,
		nullIfEmpty(item.CstCOFINS), item.BaseCalculoCOFINS, item.AliquotaCOFINS, item.ValorCOFINS,
	)
	if err != nil {
		return fmt.Errorf("insert item nfce: %w", err)
	}
	return nil
}

// CreatePagamento persiste uma entrada de pagamento.
func (r *NfceRepo) CreatePagamento(ctx context.Context, pg *entity.PagamentoNfce) error {
	if pg.ID == "" {
		pg.ID = uuid.New().String()
	}
	query := `
		INSERT INTO pagamento_nfce (
			id, nfce_id, meio_pagamento, valor,
			cnpj_credenciadora, bandeira_operadora, numero_autorizacao
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		pg.ID, pg.NfceID, string(pg.MeioPagamento), pg.Valor,
		nullIfEmpty(pg.CnpjCredenciadora), nullIfEmpty(pg.BandeiraOperadora), nullIfEmpty(pg.NumeroAutorizacao),
	)
	if err != nil {
		return fmt.Errorf("insert pagamento nfce: %w", err)
	}
	return nil
}

// Update grava os campos mutáveis do ciclo de emissão: status, protocolo,
// XMLs e justificativa. O cabeçalho fiscal permanece como foi criado.
func (r *NfceRepo) Update(ctx context.Context, n *entity.Nfce) error {
	query := `
		UPDATE nfce
		SET status                     = $2,
		    protocolo_autorizacao      = COALESCE($3, protocolo_autorizacao),
		    data_autorizacao           = COALESCE($4, data_autorizacao),
		    justificativa_cancelamento = COALESCE($5, justificativa_cancelamento),
		    xml_assinado               = COALESCE($6, xml_assinado),
		    xml_autorizado             = COALESCE($7, xml_autorizado),
		    url_consulta               = COALESCE($8, url_consulta),
		    updated_at                 = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		n.ID,
		n.Status,
		nullIfEmpty(n.ProtocoloAutorizacao),
		n.DataAutorizacao,
		nullIfEmpty(n.JustificativaCancelamento),
		nullIfEmpty(n.XMLAssinado),
		nullIfEmpty(n.XMLAutorizado),
		nullIfEmpty(n.URLConsulta),
		n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update nfce: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtém o cabeçalho por ID. Retorna (nil, nil) quando não existe.
func (r *NfceRepo) GetByID(ctx context.Context, id string) (*entity.Nfce, error) {
	row := r.q.QueryRow(ctx, `SELECT `+colunasNfce+` FROM nfce WHERE id = $1`, id)
	n, err := scanNfce(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nfce: %w", err)
	}
	return n, nil
}

// GetByChaveAcesso obtém o cabeçalho pela chave. Retorna (nil, nil) quando
// não existe.
func (r *NfceRepo) GetByChaveAcesso(ctx context.Context, chave string) (*entity.Nfce, error) {
	row := r.q.QueryRow(ctx, `SELECT `+colunasNfce+` FROM nfce WHERE chave_acesso = $1`, chave)
	n, err := scanNfce(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nfce por chave: %w", err)
	}
	return n, nil
}

// GetItens obtém as linhas da nota ordenadas por numero_item.
func (r *NfceRepo) GetItens(ctx context.Context, nfceID string) ([]*entity.ItemNfce, error) {
	query := `
		SELECT id, nfce_id, numero_item, codigo_produto, descricao, ncm, cfop,
		       unidade_comercial, quantidade_comercial, valor_unitario_comercial, valor_total_bruto,
		       unidade_tributavel, quantidade_tributavel, valor_unitario_tributavel,
		       valor_desconto, origem_mercadoria,
		       cst_icms, modalidade_bc, base_calculo_icms, aliquota_icms, valor_icms,
		       COALESCE(cst_pis, ''), base_calculo_pis, aliquota_pis, valor_pis,
		       COALESCE(cst_cofins, ''), base_calculo_cofins, aliquota_cofins, valor_cofins
		FROM item_nfce WHERE nfce_id = $1 ORDER BY numero_item`
	rows, err := r.q.Query(ctx, query, nfceID)
	if err != nil {
		return nil, fmt.Errorf("list itens nfce: %w", err)
	}
	defer rows.Close()

	var itens []*entity.ItemNfce
	for rows.Next() {
		var item entity.ItemNfce
		var origem string
		if err := rows.Scan(
			&item.ID, &item.NfceID, &item.NumeroItem, &item.CodigoProduto, &item.Descricao, &item.NCM, &item.CFOP,
			&item.UnidadeComercial, &item.QuantidadeComercial, &item.ValorUnitarioComercial, &item.ValorTotalBruto,
			&item.UnidadeTributavel, &item.QuantidadeTributavel, &item.ValorUnitarioTributavel,
			&item.ValorDesconto, &origem,
			&item.CstICMS, &item.ModalidadeBC, &item.BaseCalculoICMS, &item.AliquotaICMS, &item.ValorICMS,
			&item.CstPIS, &item.BaseCalculoPIS, &item.AliquotaPIS, &item.ValorPIS,
			&item.CstCOFINS, &item.BaseCalculoCOFINS, &item.AliquotaCOFINS, &item.ValorCOFINS,
		); err != nil {
			return nil, fmt.Errorf("scan item nfce: %w", err)
		}
		item.OrigemMercadoria = entity.OrigemMercadoria(origem)
		itens = append(itens, &item)
	}
	return itens, rows.Err()
}

// GetPagamentos obtém as entradas de pagamento da nota.
func (r *NfceRepo) GetPagamentos(ctx context.Context, nfceID string) ([]*entity.PagamentoNfce, error) {
	query := `
		SELECT id, nfce_id, meio_pagamento, valor,
		       COALESCE(cnpj_credenciadora, ''), COALESCE(bandeira_operadora, ''),
		       COALESCE(numero_autorizacao, '')
		FROM pagamento_nfce WHERE nfce_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, nfceID)
	if err != nil {
		return nil, fmt.Errorf("list pagamentos nfce: %w", err)
	}
	defer rows.Close()

	var pagamentos []*entity.PagamentoNfce
	for rows.Next() {
		var pg entity.PagamentoNfce
		var meio string
		if err := rows.Scan(
			&pg.ID, &pg.NfceID, &meio, &pg.Valor,
			&pg.CnpjCredenciadora, &pg.BandeiraOperadora, &pg.NumeroAutorizacao,
		); err != nil {
			return nil, fmt.Errorf("scan pagamento nfce: %w", err)
		}
		pg.MeioPagamento = entity.MeioPagamento(meio)
		pagamentos = append(pagamentos, &pg)
	}
	return pagamentos, rows.Err()
}

// ListByStatus lista cabeçalhos por status, mais recentes primeiro.
func (r *NfceRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Nfce, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+colunasNfce+` FROM nfce WHERE status = $1 ORDER BY data_emissao DESC`, status)
	if err != nil {
		return nil, fmt.Errorf("list nfce por status: %w", err)
	}
	return scanNfceRows(rows)
}

// ListByEmitenteCnpj lista cabeçalhos por CNPJ do emitente.
func (r *NfceRepo) ListByEmitenteCnpj(ctx context.Context, cnpj string) ([]*entity.Nfce, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+colunasNfce+` FROM nfce WHERE emitente_cnpj = $1 ORDER BY data_emissao DESC`, cnpj)
	if err != nil {
		return nil, fmt.Errorf("list nfce por emitente: %w", err)
	}
	return scanNfceRows(rows)
}

// ListByDataEmissao lista cabeçalhos emitidos no intervalo [inicio, fim].
func (r *NfceRepo) ListByDataEmissao(ctx context.Context, inicio, fim time.Time) ([]*entity.Nfce, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+colunasNfce+` FROM nfce
		 WHERE data_emissao >= $1 AND data_emissao <= $2
		 ORDER BY data_emissao DESC`, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("list nfce por período: %w", err)
	}
	return scanNfceRows(rows)
}

// CountByStatus conta documentos por status.
func (r *NfceRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM nfce WHERE status = $1`, status).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count nfce por status: %w", err)
	}
	return total, nil
}

// MaxNumeroBySerie devolve o maior número emitido na série. (0, false, nil)
// quando a série não tem documentos.
func (r *NfceRepo) MaxNumeroBySerie(ctx context.Context, serie int) (int, bool, error) {
	var max *int
	err := r.q.QueryRow(ctx, `SELECT MAX(numero) FROM nfce WHERE serie = $1`, serie).Scan(&max)
	if err != nil {
		return 0, false, fmt.Errorf("max numero por serie: %w", err)
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}

// ExistsByNumeroAndSerie informa se (numero, serie) já foi usado.
func (r *NfceRepo) ExistsByNumeroAndSerie(ctx context.Context, numero, serie int) (bool, error) {
	var existe bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM nfce WHERE numero = $1 AND serie = $2)`, numero, serie).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("exists numero e serie: %w", err)
	}
	return existe, nil
}

// scanNfce lê uma linha na ordem de colunasNfce.
func scanNfce(row pgx.Row) (*entity.Nfce, error) {
	var n entity.Nfce
	var tipoOperacao, finalidade, ambiente, regime string
	var destCpfCnpj, destNome string
	var dataAutorizacao *time.Time

	err := row.Scan(
		&n.ID, &n.Numero, &n.Serie, &n.ChaveAcesso, &n.DataEmissao, &n.NaturezaOperacao,
		&tipoOperacao, &finalidade, &ambiente, &n.Status,
		&n.Emitente.CNPJ, &n.Emitente.RazaoSocial, &n.Emitente.NomeFantasia,
		&n.Emitente.Logradouro, &n.Emitente.Numero, &n.Emitente.Bairro, &n.Emitente.Municipio,
		&n.Emitente.UF, &n.Emitente.CEP, &n.Emitente.CodigoMunicipio,
		&n.Emitente.InscricaoEstadual, &regime,
		&destCpfCnpj, &destNome,
		&n.Totais.ValorTotalProdutos, &n.Totais.ValorDesconto, &n.Totais.BaseCalculoICMS, &n.Totais.ValorICMS,
		&n.Totais.BaseCalculoICMSST, &n.Totais.ValorICMSST, &n.Totais.ValorPIS, &n.Totais.ValorCOFINS,
		&n.Totais.ValorFrete, &n.Totais.ValorSeguro, &n.Totais.OutrasDespesas, &n.Totais.ValorTotalNota,
		&n.ProtocoloAutorizacao, &dataAutorizacao,
		&n.JustificativaCancelamento,
		&n.XMLAssinado, &n.XMLAutorizado, &n.URLConsulta,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.TipoOperacao = entity.TipoOperacao(tipoOperacao)
	n.Finalidade = entity.FinalidadeEmissao(finalidade)
	n.Ambiente = entity.Ambiente(ambiente)
	n.Emitente.RegimeTributario = entity.RegimeTributario(regime)
	n.DataAutorizacao = dataAutorizacao
	if destCpfCnpj != "" {
		n.Destinatario = &entity.Destinatario{CpfCnpj: destCpfCnpj, Nome: destNome}
	}
	return &n, nil
}

func scanNfceRows(rows pgx.Rows) ([]*entity.Nfce, error) {
	defer rows.Close()
	var notas []*entity.Nfce
	for rows.Next() {
		n, err := scanNfce(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nfce: %w", err)
		}
		notas = append(notas, n)
	}
	return notas, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
