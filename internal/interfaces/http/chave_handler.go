package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/setxpro/nfce-api/internal/application/dto"
	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
)

// ChaveExtractor extrai a chave de acesso de um XML de NFC-e.
type ChaveExtractor interface {
	ExtrairChave(documento string) (string, error)
}

// ChaveHandler atende validação de chave de acesso e extração a partir de XML.
type ChaveHandler struct {
	chaves    *domnfce.ChaveAcessoService
	extractor ChaveExtractor
}

// NewChaveHandler constrói o handler.
func NewChaveHandler(chaves *domnfce.ChaveAcessoService, extractor ChaveExtractor) *ChaveHandler {
	return &ChaveHandler{chaves: chaves, extractor: extractor}
}

// Validar valida uma chave de 44 dígitos (estrutura e dígito verificador).
// GET /api/chave/:chave
func (h *ChaveHandler) Validar(c *fiber.Ctx) error {
	chave := c.Params("chave")
	resp := dto.ChaveAcessoResponse{
		ChaveAcesso: chave,
		Valida:      h.chaves.Validar(chave),
	}
	if resp.Valida {
		resp.Formatada = h.chaves.Formatar(chave)
	}
	return c.JSON(resp)
}

// ExtrairDeXML extrai e valida a chave de acesso do XML enviado no corpo.
// POST /api/chave/extrair  (corpo: XML da NFC-e)
func (h *ChaveHandler) ExtrairDeXML(c *fiber.Ctx) error {
	documento := string(c.Body())
	if documento == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo vazio: envie o XML da NFC-e"})
	}
	chave, err := h.extractor.ExtrairChave(documento)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ChaveAcessoResponse{
		ChaveAcesso: chave,
		Formatada:   h.chaves.Formatar(chave),
		Valida:      true,
	})
}
