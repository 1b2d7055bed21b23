package nfce

import (
	"context"
	"fmt"

	"github.com/setxpro/nfce-api/internal/domain"
	"github.com/setxpro/nfce-api/internal/domain/entity"
	"github.com/setxpro/nfce-api/internal/domain/repository"
)

// DanfeUseCase gera o DANFE NFC-e em PDF. Só documentos autorizados (ou
// cancelados após autorização) têm DANFE.
type DanfeUseCase struct {
	repo    repository.NfceRepository
	gerador DanfeGenerator
}

// NewDanfeUseCase constrói o caso de uso.
func NewDanfeUseCase(repo repository.NfceRepository, gerador DanfeGenerator) *DanfeUseCase {
	return &DanfeUseCase{repo: repo, gerador: gerador}
}

// GerarPDF renderiza o DANFE do documento.
func (uc *DanfeUseCase) GerarPDF(ctx context.Context, id string) ([]byte, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	if n.Status != entity.StatusAutorizada && n.Status != entity.StatusCancelada {
		return nil, &domain.InvalidStateTransitionError{
			Operacao:      "danfe",
			StatusExigido: entity.StatusAutorizada,
			StatusAtual:   n.Status,
		}
	}
	if n.Itens, err = uc.repo.GetItens(ctx, n.ID); err != nil {
		return nil, err
	}
	if n.Pagamentos, err = uc.repo.GetPagamentos(ctx, n.ID); err != nil {
		return nil, err
	}
	pdf, err := uc.gerador.Gerar(n)
	if err != nil {
		return nil, fmt.Errorf("gerar DANFE: %w", err)
	}
	return pdf, nil
}
