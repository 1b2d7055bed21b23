package nfce

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setxpro/nfce-api/internal/domain"
	"github.com/setxpro/nfce-api/internal/domain/entity"
)

func notaComStatus(status string) *entity.Nfce {
	return &entity.Nfce{ID: "n-1", Status: status}
}

// TestCicloCompleto percorre RASCUNHO -> ASSINADA -> ENVIADA -> AUTORIZADA ->
// CANCELADA.
func TestCicloCompleto(t *testing.T) {
	n := notaComStatus(entity.StatusRascunho)
	quando := time.Date(2025, 4, 10, 14, 0, 0, 0, time.UTC)

	require.NoError(t, Assinar(n))
	assert.Equal(t, entity.StatusAssinada, n.Status)

	require.NoError(t, Enviar(n))
	assert.Equal(t, entity.StatusEnviada, n.Status)

	require.NoError(t, Autorizar(n, "135202504101400", quando))
	assert.Equal(t, entity.StatusAutorizada, n.Status)
	assert.Equal(t, "135202504101400", n.ProtocoloAutorizacao)
	require.NotNil(t, n.DataAutorizacao)
	assert.Equal(t, quando, *n.DataAutorizacao)

	require.NoError(t, Cancelar(n, "cancelamento por erro de digitação no item"))
	assert.Equal(t, entity.StatusCancelada, n.Status)
	assert.Equal(t, "cancelamento por erro de digitação no item", n.JustificativaCancelamento)
}

// TestTransicoesInvalidas cada operação exige exatamente o status predecessor.
func TestTransicoesInvalidas(t *testing.T) {
	todos := []string{
		entity.StatusRascunho, entity.StatusAssinada, entity.StatusEnviada,
		entity.StatusAutorizada, entity.StatusRejeitada, entity.StatusCancelada,
		entity.StatusDenegada,
	}

	casos := []struct {
		operacao string
		exigido  string
		executar func(n *entity.Nfce) error
	}{
		{"assinar", entity.StatusRascunho, Assinar},
		{"enviar", entity.StatusAssinada, Enviar},
		{"autorizar", entity.StatusEnviada, func(n *entity.Nfce) error {
			return Autorizar(n, "135", time.Now())
		}},
		{"cancelar", entity.StatusAutorizada, func(n *entity.Nfce) error {
			return Cancelar(n, "justificativa com mais de quinze caracteres")
		}},
	}

	for _, caso := range casos {
		for _, status := range todos {
			if status == caso.exigido {
				continue
			}
			t.Run(caso.operacao+"/"+status, func(t *testing.T) {
				n := notaComStatus(status)
				err := caso.executar(n)
				require.Error(t, err)
				assert.True(t, domain.IsInvalidStateTransition(err))

				var ist *domain.InvalidStateTransitionError
				require.True(t, errors.As(err, &ist))
				assert.Equal(t, caso.operacao, ist.Operacao)
				assert.Equal(t, caso.exigido, ist.StatusExigido)
				assert.Equal(t, status, ist.StatusAtual)

				// status inalterado após a falha
				assert.Equal(t, status, n.Status)
			})
		}
	}
}

// TestCancelar_JustificativaCurta exige pelo menos 15 caracteres; 14 falha e
// a nota permanece AUTORIZADA.
func TestCancelar_JustificativaCurta(t *testing.T) {
	n := notaComStatus(entity.StatusAutorizada)

	curta := strings.Repeat("x", JustificativaMinima-1)
	err := Cancelar(n, curta)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, entity.StatusAutorizada, n.Status)
	assert.Empty(t, n.JustificativaCancelamento)

	// exatamente 15 caracteres passa
	exata := strings.Repeat("x", JustificativaMinima)
	require.NoError(t, Cancelar(notaComStatus(entity.StatusAutorizada), exata))
}

// TestCancelar_JustificativaContaRunas caracteres acentuados contam como um.
func TestCancelar_JustificativaContaRunas(t *testing.T) {
	n := notaComStatus(entity.StatusAutorizada)
	// 15 runas, mais de 15 bytes
	justificativa := "ççççççççççççççç"
	require.NoError(t, Cancelar(n, justificativa))
	assert.Equal(t, entity.StatusCancelada, n.Status)
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, entity.StatusTerminal(entity.StatusCancelada))
	assert.True(t, entity.StatusTerminal(entity.StatusRejeitada))
	assert.True(t, entity.StatusTerminal(entity.StatusDenegada))
	assert.False(t, entity.StatusTerminal(entity.StatusAutorizada))
	assert.False(t, entity.StatusTerminal(entity.StatusRascunho))
}
