package sefaz

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/setxpro/nfce-api/internal/domain"
	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
)

// XMLParserService lê documentos recebidos de fora (upload, consulta) e
// extrai a chave de acesso com validação do dígito verificador.
type XMLParserService struct {
	chaves *domnfce.ChaveAcessoService
}

// NewXMLParserService cria o serviço.
func NewXMLParserService(chaves *domnfce.ChaveAcessoService) *XMLParserService {
	return &XMLParserService{chaves: chaves}
}

// ExtrairChave localiza o infNFe, lê o atributo Id ("NFe" + 44 dígitos) e
// valida a chave. XML malformado ou chave inválida retornam ErrInvalidInput.
func (s *XMLParserService) ExtrairChave(xmlStr string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return "", fmt.Errorf("%w: XML malformado: %v", domain.ErrInvalidInput, err)
	}

	infNFe := doc.FindElement("//infNFe")
	if infNFe == nil {
		return "", fmt.Errorf("%w: elemento infNFe não encontrado", domain.ErrInvalidInput)
	}

	id := infNFe.SelectAttrValue("Id", "")
	if !strings.HasPrefix(id, "NFe") {
		return "", fmt.Errorf("%w: atributo Id do infNFe ausente ou sem o prefixo NFe", domain.ErrInvalidInput)
	}
	chave := strings.TrimPrefix(id, "NFe")
	if !s.chaves.Validar(chave) {
		return "", fmt.Errorf("%w: chave de acesso com dígito verificador inválido", domain.ErrInvalidInput)
	}
	return chave, nil
}

// ExtrairProtocolo devolve o nProt do bloco protNFe, ou "" quando o XML não
// está autorizado.
func (s *XMLParserService) ExtrairProtocolo(xmlStr string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return "", fmt.Errorf("%w: XML malformado: %v", domain.ErrInvalidInput, err)
	}
	nProt := doc.FindElement("//protNFe/infProt/nProt")
	if nProt == nil {
		return "", nil
	}
	return strings.TrimSpace(nProt.Text()), nil
}
