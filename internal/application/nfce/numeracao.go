package nfce

import (
	"context"
	"fmt"

	"github.com/setxpro/nfce-api/internal/application/dto"
	"github.com/setxpro/nfce-api/internal/domain"
	"github.com/setxpro/nfce-api/internal/domain/repository"
)

// NumeracaoUseCase consulta a numeração sequencial por série. A leitura aqui
// é informativa; a alocação definitiva acontece na transação de criação.
type NumeracaoUseCase struct {
	repo repository.NfceRepository
	cfg  Config
}

// NewNumeracaoUseCase constrói o caso de uso.
func NewNumeracaoUseCase(repo repository.NfceRepository, cfg Config) *NumeracaoUseCase {
	return &NumeracaoUseCase{repo: repo, cfg: cfg}
}

// ProximoNumero devolve o próximo número da série: maior emitido + 1, ou o
// número inicial configurado quando a série não tem documentos.
func (uc *NumeracaoUseCase) ProximoNumero(ctx context.Context, serie int) (*dto.ProximoNumeroResponse, error) {
	if serie <= 0 {
		serie = uc.cfg.SeriePadrao
	}
	max, existe, err := uc.repo.MaxNumeroBySerie(ctx, serie)
	if err != nil {
		return nil, err
	}
	numero := uc.cfg.NumeroInicial
	if existe {
		numero = max + 1
	}
	return &dto.ProximoNumeroResponse{Serie: serie, Numero: numero}, nil
}

// NumeroDisponivel informa se (numero, serie) ainda não foi usado.
func (uc *NumeracaoUseCase) NumeroDisponivel(ctx context.Context, numero, serie int) (*dto.NumeroDisponivelResponse, error) {
	if numero <= 0 {
		return nil, fmt.Errorf("%w: número deve ser maior que zero", domain.ErrInvalidInput)
	}
	if serie <= 0 {
		serie = uc.cfg.SeriePadrao
	}
	ocupado, err := uc.repo.ExistsByNumeroAndSerie(ctx, numero, serie)
	if err != nil {
		return nil, err
	}
	return &dto.NumeroDisponivelResponse{Serie: serie, Numero: numero, Disponivel: !ocupado}, nil
}
