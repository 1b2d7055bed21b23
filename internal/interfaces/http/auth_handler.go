package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/setxpro/nfce-api/internal/application/dto"
	"github.com/setxpro/nfce-api/pkg/fiscal"
	"github.com/setxpro/nfce-api/pkg/jwt"
)

// AuthConfig parâmetros de emissão de tokens.
type AuthConfig struct {
	Secret     string
	APIKey     string
	Issuer     string
	ExpMinutes int
}

// AuthHandler troca a API key estática por um token JWT de acesso.
type AuthHandler struct {
	cfg AuthConfig
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(cfg AuthConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// Token emite um JWT para o emitente informado.
// POST /api/auth/token
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var in dto.TokenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if h.cfg.APIKey == "" ||
		subtle.ConstantTimeCompare([]byte(in.APIKey), []byte(h.cfg.APIKey)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_API_KEY", Message: "API key inválida"})
	}
	if in.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "user_id obrigatório"})
	}
	emitente := fiscal.SomenteDigitos(in.EmitenteCnpj)
	if emitente != "" {
		if err := fiscal.ValidarCNPJ(emitente); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "CNPJ do emitente inválido"})
		}
	}
	token, err := jwt.Generate(h.cfg.Secret, in.UserID, emitente, h.cfg.Issuer, h.cfg.ExpMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   h.cfg.ExpMinutes * 60,
	})
}
