// Package nfce contém os casos de uso da emissão: criação, numeração, ciclo
// de vida, consulta e DANFE. Orquestra o núcleo de domínio com persistência,
// serialização XML e geração de PDF através dos portos abaixo.
package nfce

import (
	"context"

	"github.com/setxpro/nfce-api/internal/domain/entity"
	"github.com/setxpro/nfce-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação. O repositório recebido opera
// sobre a mesma transação; erro de fn causa rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.NfceRepository) error) error
}

// XMLBuilder serializa o documento no layout canônico da NF-e 4.00.
type XMLBuilder interface {
	// Build monta o XML da nota (nfeProc sem protocolo).
	Build(n *entity.Nfce) (string, error)
	// BuildProc monta o XML autorizado, com o bloco protNFe preenchido a
	// partir do protocolo e da data de autorização do documento.
	BuildProc(n *entity.Nfce) (string, error)
}

// DanfeGenerator renderiza o DANFE NFC-e em PDF.
type DanfeGenerator interface {
	Gerar(n *entity.Nfce) ([]byte, error)
}
