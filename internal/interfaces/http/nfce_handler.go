package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/setxpro/nfce-api/internal/application/dto"
	appnfce "github.com/setxpro/nfce-api/internal/application/nfce"
	"github.com/setxpro/nfce-api/internal/domain"
)

// NfceHandler atende as operações de emissão e consulta de NFC-e (protegido).
type NfceHandler struct {
	createUC    *appnfce.CreateNfceUseCase
	lifecycleUC *appnfce.LifecycleUseCase
	danfeUC     *appnfce.DanfeUseCase
}

// NewNfceHandler constrói o handler.
func NewNfceHandler(createUC *appnfce.CreateNfceUseCase, lifecycleUC *appnfce.LifecycleUseCase,
	danfeUC *appnfce.DanfeUseCase) *NfceHandler {
	return &NfceHandler{
		createUC:    createUC,
		lifecycleUC: lifecycleUC,
		danfeUC:     danfeUC,
	}
}

// respondError traduz erros de domínio para status HTTP.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case domain.IsInvalidStateTransition(err):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Create emite a NFC-e em rascunho.
// POST /api/nfce
func (h *NfceHandler) Create(c *fiber.Ctx) error {
	if GetUserID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateNfceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	nota, err := h.createUC.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(nota)
}

// GetByID devolve o documento completo.
// GET /api/nfce/:id
func (h *NfceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	nota, err := h.lifecycleUC.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nota)
}

// GetByChave devolve o documento pela chave de acesso de 44 dígitos.
// GET /api/nfce/chave/:chave
func (h *NfceHandler) GetByChave(c *fiber.Ctx) error {
	nota, err := h.lifecycleUC.GetByChaveAcesso(c.Context(), c.Params("chave"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nota)
}

// ListByStatus lista resumos por status.
// GET /api/nfce/status/:status
func (h *NfceHandler) ListByStatus(c *fiber.Ctx) error {
	notas, err := h.lifecycleUC.ListByStatus(c.Context(), c.Params("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notas)
}

// CountByStatus conta documentos por status.
// GET /api/nfce/status/:status/count
func (h *NfceHandler) CountByStatus(c *fiber.Ctx) error {
	total, err := h.lifecycleUC.CountByStatus(c.Context(), c.Params("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(total)
}

// ListByEmitente lista resumos por CNPJ do emitente.
// GET /api/nfce/emitente/:cnpj
func (h *NfceHandler) ListByEmitente(c *fiber.Ctx) error {
	notas, err := h.lifecycleUC.ListByEmitente(c.Context(), c.Params("cnpj"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notas)
}

// ListByPeriodo lista resumos emitidos no intervalo [inicio, fim].
// GET /api/nfce/periodo?inicio=2024-03-01&fim=2024-03-31
func (h *NfceHandler) ListByPeriodo(c *fiber.Ctx) error {
	inicio, err := parseDataQuery(c.Query("inicio"), false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "inicio inválido: use YYYY-MM-DD ou RFC 3339"})
	}
	fim, err := parseDataQuery(c.Query("fim"), true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fim inválido: use YYYY-MM-DD ou RFC 3339"})
	}
	notas, err := h.lifecycleUC.ListByPeriodo(c.Context(), inicio, fim)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notas)
}

// parseDataQuery aceita data simples (YYYY-MM-DD) ou RFC 3339. Para o fim do
// intervalo, data simples é estendida ao último instante do dia.
func parseDataQuery(s string, fimDoDia bool) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		if fimDoDia {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Assinar transiciona RASCUNHO → ASSINADA.
// POST /api/nfce/:id/assinar
func (h *NfceHandler) Assinar(c *fiber.Ctx) error {
	nota, err := h.lifecycleUC.Assinar(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nota)
}

// Enviar transiciona ASSINADA → ENVIADA.
// POST /api/nfce/:id/enviar
func (h *NfceHandler) Enviar(c *fiber.Ctx) error {
	nota, err := h.lifecycleUC.Enviar(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nota)
}

// Autorizar transiciona ENVIADA → AUTORIZADA. Corpo opcional com protocolo.
// POST /api/nfce/:id/autorizar
func (h *NfceHandler) Autorizar(c *fiber.Ctx) error {
	var in dto.AutorizarNfceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
		}
	}
	nota, err := h.lifecycleUC.Autorizar(c.Context(), c.Params("id"), in.Protocolo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nota)
}

// Cancelar transiciona AUTORIZADA → CANCELADA com justificativa.
// POST /api/nfce/:id/cancelar
func (h *NfceHandler) Cancelar(c *fiber.Ctx) error {
	var in dto.CancelarNfceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	nota, err := h.lifecycleUC.Cancelar(c.Context(), c.Params("id"), in.Justificativa)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nota)
}

// GetXML devolve o XML do documento (autorizado se houver, senão assinado).
// GET /api/nfce/:id/xml
func (h *NfceHandler) GetXML(c *fiber.Ctx) error {
	xml, err := h.lifecycleUC.GetXML(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.SendString(xml)
}

// GetDanfe devolve o DANFE em PDF.
// GET /api/nfce/:id/danfe
func (h *NfceHandler) GetDanfe(c *fiber.Ctx) error {
	pdf, err := h.danfeUC.GerarPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}
