package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("já existe NFC-e com este número e série")
)

// InvalidStateTransitionError indica que uma operação do ciclo de emissão foi
// tentada com a NFC-e fora do status exigido. Carrega status exigido e atual
// para que a camada HTTP monte a resposta sem nova consulta.
type InvalidStateTransitionError struct {
	Operacao      string
	StatusExigido string
	StatusAtual   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("operação %s exige status %s; status atual é %s",
		e.Operacao, e.StatusExigido, e.StatusAtual)
}

// IsInvalidStateTransition informa se err envolve uma transição de status inválida.
func IsInvalidStateTransition(err error) bool {
	var ist *InvalidStateTransitionError
	return errors.As(err, &ist)
}
