package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/setxpro/nfce-api/internal/application/dto"
	appnfce "github.com/setxpro/nfce-api/internal/application/nfce"
)

// NumeracaoHandler atende as consultas de numeração sequencial (protegido).
type NumeracaoHandler struct {
	uc *appnfce.NumeracaoUseCase
}

// NewNumeracaoHandler constrói o handler.
func NewNumeracaoHandler(uc *appnfce.NumeracaoUseCase) *NumeracaoHandler {
	return &NumeracaoHandler{uc: uc}
}

// ProximoNumero devolve o próximo número da série.
// GET /api/numeracao/proxima?serie=1
func (h *NumeracaoHandler) ProximoNumero(c *fiber.Ctx) error {
	resp, err := h.uc.ProximoNumero(c.Context(), c.QueryInt("serie"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// NumeroDisponivel informa se (numero, serie) ainda não foi usado.
// GET /api/numeracao/disponivel?numero=42&serie=1
func (h *NumeracaoHandler) NumeroDisponivel(c *fiber.Ctx) error {
	numero := c.QueryInt("numero")
	if numero <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "numero obrigatório e maior que zero"})
	}
	resp, err := h.uc.NumeroDisponivel(c.Context(), numero, c.QueryInt("serie"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
