package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/setxpro/nfce-api/internal/application/dto"
	appnfce "github.com/setxpro/nfce-api/internal/application/nfce"
	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
)

// QrCodeHandler atende a consulta da URL do QR Code e a conferência de
// payloads recebidos de fora.
type QrCodeHandler struct {
	lifecycleUC *appnfce.LifecycleUseCase
	qrcode      *domnfce.QrCodeService
	chaves      *domnfce.ChaveAcessoService
}

// NewQrCodeHandler constrói o handler.
func NewQrCodeHandler(lifecycleUC *appnfce.LifecycleUseCase, qrcode *domnfce.QrCodeService,
	chaves *domnfce.ChaveAcessoService) *QrCodeHandler {
	return &QrCodeHandler{lifecycleUC: lifecycleUC, qrcode: qrcode, chaves: chaves}
}

// GetURL devolve a URL de consulta embutida no QR Code do documento.
// GET /api/nfce/:id/qrcode
func (h *QrCodeHandler) GetURL(c *fiber.Ctx) error {
	nota, err := h.lifecycleUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if nota.UrlConsulta == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento sem URL de QR Code"})
	}
	return c.JSON(dto.QrCodeResponse{
		ChaveAcesso: nota.ChaveAcesso,
		UrlConsulta: nota.UrlConsulta,
	})
}

// Validar confere a URL do QR Code contra a chave de acesso informada.
// POST /api/qrcode/validar
func (h *QrCodeHandler) Validar(c *fiber.Ctx) error {
	var in dto.ValidarQrCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if !h.chaves.Validar(in.ChaveAcesso) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "chave de acesso inválida"})
	}
	return c.JSON(dto.ValidarQrCodeResponse{
		ChaveAcesso: in.ChaveAcesso,
		Valida:      h.qrcode.ValidarURL(in.Url, in.ChaveAcesso),
	})
}
