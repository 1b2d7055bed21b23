package nfce_test

import (
	"context"
	"sync"
	"time"

	"github.com/setxpro/nfce-api/internal/domain"
	"github.com/setxpro/nfce-api/internal/domain/entity"
	"github.com/setxpro/nfce-api/internal/domain/repository"
)

// memRepo implementação em memória do repositório, para os testes dos casos
// de uso. Replica o contrato do armazenamento real: (nil, nil) quando não
// existe, ErrDuplicate nas violações de unicidade.
type memRepo struct {
	mu         sync.Mutex
	notas      map[string]*entity.Nfce
	itens      map[string][]*entity.ItemNfce
	pagamentos map[string][]*entity.PagamentoNfce
}

func newMemRepo() *memRepo {
	return &memRepo{
		notas:      make(map[string]*entity.Nfce),
		itens:      make(map[string][]*entity.ItemNfce),
		pagamentos: make(map[string][]*entity.PagamentoNfce),
	}
}

var _ repository.NfceRepository = (*memRepo)(nil)

func (r *memRepo) Create(_ context.Context, n *entity.Nfce) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, outra := range r.notas {
		if outra.Numero == n.Numero && outra.Serie == n.Serie {
			return domain.ErrDuplicate
		}
		if outra.ChaveAcesso == n.ChaveAcesso {
			return domain.ErrDuplicate
		}
	}
	copia := *n
	r.notas[n.ID] = &copia
	return nil
}

func (r *memRepo) CreateItem(_ context.Context, item *entity.ItemNfce) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.itens[item.NfceID] = append(r.itens[item.NfceID], item)
	return nil
}

func (r *memRepo) CreatePagamento(_ context.Context, pg *entity.PagamentoNfce) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pagamentos[pg.NfceID] = append(r.pagamentos[pg.NfceID], pg)
	return nil
}

func (r *memRepo) Update(_ context.Context, n *entity.Nfce) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notas[n.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *n
	r.notas[n.ID] = &copia
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.Nfce, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notas[id]
	if !ok {
		return nil, nil
	}
	copia := *n
	return &copia, nil
}

func (r *memRepo) GetByChaveAcesso(_ context.Context, chave string) (*entity.Nfce, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notas {
		if n.ChaveAcesso == chave {
			copia := *n
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *memRepo) GetItens(_ context.Context, nfceID string) ([]*entity.ItemNfce, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.itens[nfceID], nil
}

func (r *memRepo) GetPagamentos(_ context.Context, nfceID string) ([]*entity.PagamentoNfce, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pagamentos[nfceID], nil
}

func (r *memRepo) ListByStatus(_ context.Context, status string) ([]*entity.Nfce, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Nfce
	for _, n := range r.notas {
		if n.Status == status {
			copia := *n
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *memRepo) ListByEmitenteCnpj(_ context.Context, cnpj string) ([]*entity.Nfce, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Nfce
	for _, n := range r.notas {
		if n.Emitente.CNPJ == cnpj {
			copia := *n
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *memRepo) ListByDataEmissao(_ context.Context, inicio, fim time.Time) ([]*entity.Nfce, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Nfce
	for _, n := range r.notas {
		if !n.DataEmissao.Before(inicio) && !n.DataEmissao.After(fim) {
			copia := *n
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *memRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, n := range r.notas {
		if n.Status == status {
			total++
		}
	}
	return total, nil
}

func (r *memRepo) MaxNumeroBySerie(_ context.Context, serie int) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max, existe := 0, false
	for _, n := range r.notas {
		if n.Serie == serie && n.Numero > max {
			max, existe = n.Numero, true
		}
	}
	return max, existe, nil
}

func (r *memRepo) ExistsByNumeroAndSerie(_ context.Context, numero, serie int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notas {
		if n.Numero == numero && n.Serie == serie {
			return true, nil
		}
	}
	return false, nil
}

// memTx executa o callback diretamente sobre o repositório, sem transação.
type memTx struct {
	repo *memRepo
}

func (t *memTx) Run(_ context.Context, fn func(repo repository.NfceRepository) error) error {
	return fn(t.repo)
}

// fakeXMLBuilder devolve XML fixo; a serialização real é testada no pacote da
// infraestrutura.
type fakeXMLBuilder struct{}

func (fakeXMLBuilder) Build(*entity.Nfce) (string, error) {
	return "<NFe/>", nil
}

func (fakeXMLBuilder) BuildProc(*entity.Nfce) (string, error) {
	return "<nfeProc/>", nil
}
