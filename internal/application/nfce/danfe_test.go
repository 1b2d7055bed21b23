package nfce_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appnfce "github.com/setxpro/nfce-api/internal/application/nfce"
	"github.com/setxpro/nfce-api/internal/domain"
	"github.com/setxpro/nfce-api/internal/domain/entity"
)

// fakeDanfeGenerator devolve bytes fixos; a renderização real fica no pacote
// de infraestrutura de PDF.
type fakeDanfeGenerator struct {
	chamado bool
}

func (g *fakeDanfeGenerator) Gerar(*entity.Nfce) ([]byte, error) {
	g.chamado = true
	return []byte("%PDF-fake"), nil
}

func TestGerarPDF_SomenteAutorizadaOuCancelada(t *testing.T) {
	repo := newMemRepo()
	gerador := &fakeDanfeGenerator{}
	uc := appnfce.NewDanfeUseCase(repo, gerador)
	ctx := context.Background()
	nota := criarNota(t, repo)

	// rascunho não tem DANFE
	_, err := uc.GerarPDF(ctx, nota.Id)
	assert.True(t, domain.IsInvalidStateTransition(err))
	assert.False(t, gerador.chamado)

	// autorizada tem
	lifecycle := newLifecycleUC(repo)
	_, err = lifecycle.Assinar(ctx, nota.Id)
	require.NoError(t, err)
	_, err = lifecycle.Enviar(ctx, nota.Id)
	require.NoError(t, err)
	_, err = lifecycle.Autorizar(ctx, nota.Id, "")
	require.NoError(t, err)

	pdf, err := uc.GerarPDF(ctx, nota.Id)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)

	// cancelada continua tendo (documento já circulou)
	_, err = lifecycle.Cancelar(ctx, nota.Id, justificativaValida)
	require.NoError(t, err)
	_, err = uc.GerarPDF(ctx, nota.Id)
	assert.NoError(t, err)
}

func TestGerarPDF_NotaInexistente(t *testing.T) {
	uc := appnfce.NewDanfeUseCase(newMemRepo(), &fakeDanfeGenerator{})
	_, err := uc.GerarPDF(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
