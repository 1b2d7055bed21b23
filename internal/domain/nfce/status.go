package nfce

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/setxpro/nfce-api/internal/domain"
	"github.com/setxpro/nfce-api/internal/domain/entity"
)

// Máquina de status da emissão:
//
//	RASCUNHO → ASSINADA → ENVIADA → AUTORIZADA → CANCELADA
//
// REJEITADA e DENEGADA são desfechos terminais alternativos a partir de
// ENVIADA (atribuídos pelo retorno da SEFAZ, fora deste núcleo). Cada
// operação exige exatamente o status predecessor; qualquer outro status
// resulta em InvalidStateTransitionError. A serialização das transições de
// um mesmo documento é responsabilidade do chamador.

// JustificativaMinima é o comprimento mínimo exigido para cancelamento.
const JustificativaMinima = 15

func exigirStatus(n *entity.Nfce, operacao, exigido string) error {
	if n.Status != exigido {
		return &domain.InvalidStateTransitionError{
			Operacao:      operacao,
			StatusExigido: exigido,
			StatusAtual:   n.Status,
		}
	}
	return nil
}

// Assinar transiciona RASCUNHO → ASSINADA. O cálculo criptográfico da
// assinatura é feito por um colaborador externo; aqui só muda o status.
func Assinar(n *entity.Nfce) error {
	if err := exigirStatus(n, "assinar", entity.StatusRascunho); err != nil {
		return err
	}
	n.Status = entity.StatusAssinada
	return nil
}

// Enviar transiciona ASSINADA → ENVIADA. A transmissão à SEFAZ é feita por
// um colaborador externo.
func Enviar(n *entity.Nfce) error {
	if err := exigirStatus(n, "enviar", entity.StatusAssinada); err != nil {
		return err
	}
	n.Status = entity.StatusEnviada
	return nil
}

// Autorizar transiciona ENVIADA → AUTORIZADA e registra protocolo e data de
// autorização no documento.
func Autorizar(n *entity.Nfce, protocolo string, quando time.Time) error {
	if err := exigirStatus(n, "autorizar", entity.StatusEnviada); err != nil {
		return err
	}
	n.Status = entity.StatusAutorizada
	n.ProtocoloAutorizacao = protocolo
	n.DataAutorizacao = &quando
	return nil
}

// Cancelar transiciona AUTORIZADA → CANCELADA. Exige justificativa com pelo
// menos JustificativaMinima caracteres.
func Cancelar(n *entity.Nfce, justificativa string) error {
	if err := exigirStatus(n, "cancelar", entity.StatusAutorizada); err != nil {
		return err
	}
	if utf8.RuneCountInString(justificativa) < JustificativaMinima {
		return fmt.Errorf("%w: justificativa deve ter pelo menos %d caracteres",
			domain.ErrInvalidInput, JustificativaMinima)
	}
	n.Status = entity.StatusCancelada
	n.JustificativaCancelamento = justificativa
	return nil
}
