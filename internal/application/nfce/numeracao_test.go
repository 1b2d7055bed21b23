package nfce_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appnfce "github.com/setxpro/nfce-api/internal/application/nfce"
	"github.com/setxpro/nfce-api/internal/domain"
)

func newNumeracaoUC(repo *memRepo) *appnfce.NumeracaoUseCase {
	return appnfce.NewNumeracaoUseCase(repo, appnfce.Config{SeriePadrao: 1, NumeroInicial: 1})
}

func TestProximoNumero_SerieVazia(t *testing.T) {
	uc := newNumeracaoUC(newMemRepo())

	resp, err := uc.ProximoNumero(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Serie, "série ausente usa a padrão")
	assert.Equal(t, 1, resp.Numero, "série sem documentos começa no número inicial")
}

func TestProximoNumero_SerieComDocumentos(t *testing.T) {
	repo := newMemRepo()
	criarNota(t, repo) // aloca o número 1 na série 1

	resp, err := newNumeracaoUC(repo).ProximoNumero(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Numero)
}

func TestNumeroDisponivel(t *testing.T) {
	repo := newMemRepo()
	criarNota(t, repo)
	uc := newNumeracaoUC(repo)
	ctx := context.Background()

	ocupado, err := uc.NumeroDisponivel(ctx, 1, 1)
	require.NoError(t, err)
	assert.False(t, ocupado.Disponivel)

	livre, err := uc.NumeroDisponivel(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, livre.Disponivel)

	_, err = uc.NumeroDisponivel(ctx, 0, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
