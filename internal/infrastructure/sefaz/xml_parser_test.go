package sefaz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setxpro/nfce-api/internal/domain"
	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
)

// TestExtrairChave_Roundtrip a chave volta do XML gerado pelo builder.
func TestExtrairChave_Roundtrip(t *testing.T) {
	builder := NewXMLBuilderService()
	parser := NewXMLParserService(domnfce.NewChaveAcessoService())

	xmlStr, err := builder.Build(notaCompleta())
	require.NoError(t, err)

	chave, err := parser.ExtrairChave(xmlStr)
	require.NoError(t, err)
	assert.Equal(t, chaveTeste, chave)
}

func TestExtrairChave_Invalidos(t *testing.T) {
	parser := NewXMLParserService(domnfce.NewChaveAcessoService())

	tests := []struct {
		nome string
		xml  string
	}{
		{"malformado", "<nfeProc><NFe>"},
		{"sem infNFe", `<nfeProc><NFe></NFe></nfeProc>`},
		{"Id sem prefixo", `<nfeProc><NFe><infNFe Id="` + chaveTeste + `"/></NFe></nfeProc>`},
		{"DV errado", `<nfeProc><NFe><infNFe Id="NFe35240312345678000199650010000000011100000001"/></NFe></nfeProc>`},
		{"chave curta", `<nfeProc><NFe><infNFe Id="NFe123"/></NFe></nfeProc>`},
	}
	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			_, err := parser.ExtrairChave(tt.xml)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestExtrairProtocolo(t *testing.T) {
	builder := NewXMLBuilderService()
	parser := NewXMLParserService(domnfce.NewChaveAcessoService())

	// XML sem protocolo devolve vazio sem erro
	xmlStr, err := builder.Build(notaCompleta())
	require.NoError(t, err)
	nProt, err := parser.ExtrairProtocolo(xmlStr)
	require.NoError(t, err)
	assert.Empty(t, nProt)

	nProt, err = parser.ExtrairProtocolo(
		`<nfeProc><protNFe><infProt><nProt>135202403151035</nProt></infProt></protNFe></nfeProc>`)
	require.NoError(t, err)
	assert.Equal(t, "135202403151035", nProt)
}
