package nfce

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/setxpro/nfce-api/internal/application/dto"
	"github.com/setxpro/nfce-api/internal/domain"
	"github.com/setxpro/nfce-api/internal/domain/entity"
	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
	"github.com/setxpro/nfce-api/internal/domain/repository"
	"github.com/setxpro/nfce-api/pkg/fiscal"
)

// LifecycleUseCase conduz o documento pelo ciclo de emissão (assinar,
// enviar, autorizar, cancelar) e atende as consultas.
type LifecycleUseCase struct {
	repo       repository.NfceRepository
	chaves     *domnfce.ChaveAcessoService
	xmlBuilder XMLBuilder
}

// NewLifecycleUseCase constrói o caso de uso.
func NewLifecycleUseCase(repo repository.NfceRepository, chaves *domnfce.ChaveAcessoService,
	xmlBuilder XMLBuilder) *LifecycleUseCase {
	return &LifecycleUseCase{
		repo:       repo,
		chaves:     chaves,
		xmlBuilder: xmlBuilder,
	}
}

// carregarAgregado busca a nota com itens e pagamentos. ErrNotFound quando o
// ID não existe.
func (uc *LifecycleUseCase) carregarAgregado(ctx context.Context, id string) (*entity.Nfce, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	if n.Itens, err = uc.repo.GetItens(ctx, n.ID); err != nil {
		return nil, err
	}
	if n.Pagamentos, err = uc.repo.GetPagamentos(ctx, n.ID); err != nil {
		return nil, err
	}
	return n, nil
}

// Assinar transiciona RASCUNHO → ASSINADA e grava o XML serializado do
// documento. A assinatura digital XMLDSig propriamente dita fica no
// colaborador de certificado, fora deste serviço.
func (uc *LifecycleUseCase) Assinar(ctx context.Context, id string) (*dto.NfceResponse, error) {
	n, err := uc.carregarAgregado(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domnfce.Assinar(n); err != nil {
		return nil, err
	}
	xml, err := uc.xmlBuilder.Build(n)
	if err != nil {
		return nil, fmt.Errorf("serializar XML: %w", err)
	}
	n.XMLAssinado = xml
	n.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return toNfceResponse(uc.chaves, n), nil
}

// Enviar transiciona ASSINADA → ENVIADA.
func (uc *LifecycleUseCase) Enviar(ctx context.Context, id string) (*dto.NfceResponse, error) {
	n, err := uc.carregarAgregado(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domnfce.Enviar(n); err != nil {
		return nil, err
	}
	n.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return toNfceResponse(uc.chaves, n), nil
}

// Autorizar transiciona ENVIADA → AUTORIZADA, registra o protocolo e grava o
// XML autorizado (com o bloco protNFe). Protocolo vazio gera um simulado no
// formato "135" + epoch em milissegundos.
func (uc *LifecycleUseCase) Autorizar(ctx context.Context, id, protocolo string) (*dto.NfceResponse, error) {
	n, err := uc.carregarAgregado(ctx, id)
	if err != nil {
		return nil, err
	}
	quando := time.Now()
	if protocolo == "" {
		protocolo = "135" + strconv.FormatInt(quando.UnixMilli(), 10)
	}
	if err := domnfce.Autorizar(n, protocolo, quando); err != nil {
		return nil, err
	}
	xml, err := uc.xmlBuilder.BuildProc(n)
	if err != nil {
		return nil, fmt.Errorf("serializar XML autorizado: %w", err)
	}
	n.XMLAutorizado = xml
	n.UpdatedAt = quando
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return toNfceResponse(uc.chaves, n), nil
}

// Cancelar transiciona AUTORIZADA → CANCELADA com a justificativa informada.
func (uc *LifecycleUseCase) Cancelar(ctx context.Context, id, justificativa string) (*dto.NfceResponse, error) {
	n, err := uc.carregarAgregado(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domnfce.Cancelar(n, justificativa); err != nil {
		return nil, err
	}
	n.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return toNfceResponse(uc.chaves, n), nil
}

// GetByID devolve o documento completo.
func (uc *LifecycleUseCase) GetByID(ctx context.Context, id string) (*dto.NfceResponse, error) {
	n, err := uc.carregarAgregado(ctx, id)
	if err != nil {
		return nil, err
	}
	return toNfceResponse(uc.chaves, n), nil
}

// GetByChaveAcesso devolve o documento pela chave de 44 dígitos. Chave
// malformada é rejeitada antes de consultar o armazenamento.
func (uc *LifecycleUseCase) GetByChaveAcesso(ctx context.Context, chave string) (*dto.NfceResponse, error) {
	if !uc.chaves.Validar(chave) {
		return nil, fmt.Errorf("%w: chave de acesso inválida", domain.ErrInvalidInput)
	}
	n, err := uc.repo.GetByChaveAcesso(ctx, chave)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return uc.GetByID(ctx, n.ID)
}

// GetXML devolve o XML mais avançado do documento: autorizado se houver,
// senão o assinado. ErrNotFound quando nenhum foi gerado ainda.
func (uc *LifecycleUseCase) GetXML(ctx context.Context, id string) (string, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if n == nil {
		return "", domain.ErrNotFound
	}
	switch {
	case n.XMLAutorizado != "":
		return n.XMLAutorizado, nil
	case n.XMLAssinado != "":
		return n.XMLAssinado, nil
	}
	return "", fmt.Errorf("%w: documento ainda não serializado", domain.ErrNotFound)
}

// ListByStatus lista resumos por status.
func (uc *LifecycleUseCase) ListByStatus(ctx context.Context, status string) ([]dto.NfceResumoResponse, error) {
	if !entity.StatusValido(status) {
		return nil, fmt.Errorf("%w: status desconhecido: %q", domain.ErrInvalidInput, status)
	}
	notas, err := uc.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return resumos(notas), nil
}

// ListByEmitente lista resumos por CNPJ do emitente.
func (uc *LifecycleUseCase) ListByEmitente(ctx context.Context, cnpj string) ([]dto.NfceResumoResponse, error) {
	digitos := fiscal.SomenteDigitos(cnpj)
	if len(digitos) != 14 {
		return nil, fmt.Errorf("%w: CNPJ deve ter 14 dígitos", domain.ErrInvalidInput)
	}
	notas, err := uc.repo.ListByEmitenteCnpj(ctx, digitos)
	if err != nil {
		return nil, err
	}
	return resumos(notas), nil
}

// ListByPeriodo lista resumos emitidos no intervalo [inicio, fim].
func (uc *LifecycleUseCase) ListByPeriodo(ctx context.Context, inicio, fim time.Time) ([]dto.NfceResumoResponse, error) {
	if fim.Before(inicio) {
		return nil, fmt.Errorf("%w: fim do período anterior ao início", domain.ErrInvalidInput)
	}
	notas, err := uc.repo.ListByDataEmissao(ctx, inicio, fim)
	if err != nil {
		return nil, err
	}
	return resumos(notas), nil
}

// CountByStatus conta documentos por status.
func (uc *LifecycleUseCase) CountByStatus(ctx context.Context, status string) (*dto.StatusCountResponse, error) {
	if !entity.StatusValido(status) {
		return nil, fmt.Errorf("%w: status desconhecido: %q", domain.ErrInvalidInput, status)
	}
	total, err := uc.repo.CountByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return &dto.StatusCountResponse{Status: status, Total: total}, nil
}

func resumos(notas []*entity.Nfce) []dto.NfceResumoResponse {
	out := make([]dto.NfceResumoResponse, 0, len(notas))
	for _, n := range notas {
		out = append(out, toNfceResumo(n))
	}
	return out
}
