package nfce_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setxpro/nfce-api/internal/application/dto"
	appnfce "github.com/setxpro/nfce-api/internal/application/nfce"
	"github.com/setxpro/nfce-api/internal/domain"
	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
)

const justificativaValida = "cancelamento solicitado pelo consumidor no caixa"

func newLifecycleUC(repo *memRepo) *appnfce.LifecycleUseCase {
	return appnfce.NewLifecycleUseCase(repo, domnfce.NewChaveAcessoService(), fakeXMLBuilder{})
}

// criarNota emite uma nota em rascunho no repositório compartilhado.
func criarNota(t *testing.T, repo *memRepo) *dto.NfceResponse {
	t.Helper()
	resp, err := newCreateUC(repo).Create(context.Background(), requestValida())
	require.NoError(t, err)
	return resp
}

func TestLifecycle_CicloCompleto(t *testing.T) {
	repo := newMemRepo()
	uc := newLifecycleUC(repo)
	ctx := context.Background()
	nota := criarNota(t, repo)

	assinada, err := uc.Assinar(ctx, nota.Id)
	require.NoError(t, err)
	assert.Equal(t, "ASSINADA", assinada.Status)

	enviada, err := uc.Enviar(ctx, nota.Id)
	require.NoError(t, err)
	assert.Equal(t, "ENVIADA", enviada.Status)

	autorizada, err := uc.Autorizar(ctx, nota.Id, "")
	require.NoError(t, err)
	assert.Equal(t, "AUTORIZADA", autorizada.Status)
	assert.True(t, strings.HasPrefix(autorizada.ProtocoloAutorizacao, "135"),
		"protocolo vazio gera um simulado")
	assert.NotEmpty(t, autorizada.DataAutorizacao)

	cancelada, err := uc.Cancelar(ctx, nota.Id, justificativaValida)
	require.NoError(t, err)
	assert.Equal(t, "CANCELADA", cancelada.Status)
	assert.Equal(t, justificativaValida, cancelada.JustificativaCancelamento)
}

func TestLifecycle_TransicaoForaDeOrdem(t *testing.T) {
	repo := newMemRepo()
	uc := newLifecycleUC(repo)
	ctx := context.Background()
	nota := criarNota(t, repo)

	// enviar exige ASSINADA; a nota está em RASCUNHO
	_, err := uc.Enviar(ctx, nota.Id)
	assert.True(t, domain.IsInvalidStateTransition(err))

	_, err = uc.Assinar(ctx, nota.Id)
	require.NoError(t, err)

	// assinar de novo também falha
	_, err = uc.Assinar(ctx, nota.Id)
	assert.True(t, domain.IsInvalidStateTransition(err))
}

func TestLifecycle_ProtocoloInformado(t *testing.T) {
	repo := newMemRepo()
	uc := newLifecycleUC(repo)
	ctx := context.Background()
	nota := criarNota(t, repo)

	_, err := uc.Assinar(ctx, nota.Id)
	require.NoError(t, err)
	_, err = uc.Enviar(ctx, nota.Id)
	require.NoError(t, err)

	autorizada, err := uc.Autorizar(ctx, nota.Id, "135240000012345")
	require.NoError(t, err)
	assert.Equal(t, "135240000012345", autorizada.ProtocoloAutorizacao)
}

func TestLifecycle_GetXMLPrefereAutorizado(t *testing.T) {
	repo := newMemRepo()
	uc := newLifecycleUC(repo)
	ctx := context.Background()
	nota := criarNota(t, repo)

	// rascunho ainda não tem XML
	_, err := uc.GetXML(ctx, nota.Id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Assinar(ctx, nota.Id)
	require.NoError(t, err)
	xml, err := uc.GetXML(ctx, nota.Id)
	require.NoError(t, err)
	assert.Equal(t, "<NFe/>", xml)

	_, err = uc.Enviar(ctx, nota.Id)
	require.NoError(t, err)
	_, err = uc.Autorizar(ctx, nota.Id, "")
	require.NoError(t, err)

	xml, err = uc.GetXML(ctx, nota.Id)
	require.NoError(t, err)
	assert.Equal(t, "<nfeProc/>", xml, "com protocolo, o XML autorizado prevalece")
}

func TestLifecycle_GetByChaveAcesso(t *testing.T) {
	repo := newMemRepo()
	uc := newLifecycleUC(repo)
	ctx := context.Background()
	nota := criarNota(t, repo)

	encontrada, err := uc.GetByChaveAcesso(ctx, nota.ChaveAcesso)
	require.NoError(t, err)
	assert.Equal(t, nota.Id, encontrada.Id)

	// chave malformada é rejeitada antes de consultar o repositório
	_, err = uc.GetByChaveAcesso(ctx, "123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// chave estruturalmente válida mas inexistente
	chaves := domnfce.NewChaveAcessoService()
	outra, err := chaves.GerarNfce(35, time.Now(), cnpjValido, 99, 424242, domnfce.TipoEmissaoNormal)
	require.NoError(t, err)
	_, err = uc.GetByChaveAcesso(ctx, outra)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLifecycle_GetByIDInexistente(t *testing.T) {
	uc := newLifecycleUC(newMemRepo())
	_, err := uc.GetByID(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLifecycle_Listagens(t *testing.T) {
	repo := newMemRepo()
	uc := newLifecycleUC(repo)
	ctx := context.Background()
	nota := criarNota(t, repo)

	porStatus, err := uc.ListByStatus(ctx, "RASCUNHO")
	require.NoError(t, err)
	require.Len(t, porStatus, 1)
	assert.Equal(t, nota.Id, porStatus[0].Id)

	_, err = uc.ListByStatus(ctx, "PENDENTE")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	porEmitente, err := uc.ListByEmitente(ctx, cnpjValido)
	require.NoError(t, err)
	assert.Len(t, porEmitente, 1)

	_, err = uc.ListByEmitente(ctx, "123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	inicio := time.Now().Add(-time.Hour)
	fim := time.Now().Add(time.Hour)
	porPeriodo, err := uc.ListByPeriodo(ctx, inicio, fim)
	require.NoError(t, err)
	assert.Len(t, porPeriodo, 1)

	_, err = uc.ListByPeriodo(ctx, fim, inicio)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	contagem, err := uc.CountByStatus(ctx, "RASCUNHO")
	require.NoError(t, err)
	assert.Equal(t, int64(1), contagem.Total)
}
