package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/setxpro/nfce-api/internal/application/dto"
	"github.com/setxpro/nfce-api/pkg/jwt"
)

// Chaves de c.Locals preenchidas pelo middleware de autenticação.
const (
	LocalUserID       = "user_id"
	LocalEmitenteCnpj = "emitente_cnpj"
)

// AuthMiddleware valida o Bearer Token JWT e coloca UserID e CNPJ do emitente
// em c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		userID, emitente, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmitenteCnpj, emitente)
		return c.Next()
	}
}

// GetUserID devolve o UserID do contexto (depois do middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetEmitenteCnpj devolve o CNPJ do emitente autenticado.
func GetEmitenteCnpj(c *fiber.Ctx) string {
	v := c.Locals(LocalEmitenteCnpj)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
