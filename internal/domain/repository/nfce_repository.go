package repository

import (
	"context"
	"time"

	"github.com/setxpro/nfce-api/internal/domain/entity"
)

// NfceRepository define o porto de persistência da NFC-e. A unicidade de
// (numero, serie) e da chave de acesso é garantida por constraints no
// armazenamento; as consultas de disponibilidade servem como pré-checagem.
type NfceRepository interface {
	Create(ctx context.Context, n *entity.Nfce) error
	CreateItem(ctx context.Context, item *entity.ItemNfce) error
	CreatePagamento(ctx context.Context, pg *entity.PagamentoNfce) error
	// Update grava status, protocolo, XMLs e justificativa de cancelamento.
	Update(ctx context.Context, n *entity.Nfce) error

	// GetByID retorna (nil, nil) quando não existe.
	GetByID(ctx context.Context, id string) (*entity.Nfce, error)
	GetByChaveAcesso(ctx context.Context, chave string) (*entity.Nfce, error)
	GetItens(ctx context.Context, nfceID string) ([]*entity.ItemNfce, error)
	GetPagamentos(ctx context.Context, nfceID string) ([]*entity.PagamentoNfce, error)

	ListByStatus(ctx context.Context, status string) ([]*entity.Nfce, error)
	ListByEmitenteCnpj(ctx context.Context, cnpj string) ([]*entity.Nfce, error)
	ListByDataEmissao(ctx context.Context, inicio, fim time.Time) ([]*entity.Nfce, error)
	CountByStatus(ctx context.Context, status string) (int64, error)

	// MaxNumeroBySerie retorna (0, false, nil) quando a série não tem documentos.
	MaxNumeroBySerie(ctx context.Context, serie int) (int, bool, error)
	ExistsByNumeroAndSerie(ctx context.Context, numero, serie int) (bool, error)
}
