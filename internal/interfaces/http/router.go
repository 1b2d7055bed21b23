package http

import (
	"github.com/gofiber/fiber/v2"

	appnfce "github.com/setxpro/nfce-api/internal/application/nfce"
	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	CreateNfce *appnfce.CreateNfceUseCase
	Lifecycle  *appnfce.LifecycleUseCase
	Numeracao  *appnfce.NumeracaoUseCase
	Danfe      *appnfce.DanfeUseCase
	Chaves     *domnfce.ChaveAcessoService
	QrCode     *domnfce.QrCodeService
	Extractor  ChaveExtractor
	Auth       AuthConfig
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público): troca API key por token JWT
	authHandler := NewAuthHandler(deps.Auth)
	api.Post("/auth/token", authHandler.Token)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Auth.Secret))

	nfceHandler := NewNfceHandler(deps.CreateNfce, deps.Lifecycle, deps.Danfe)
	nfce := protected.Group("/nfce")
	nfce.Post("/", nfceHandler.Create)
	// rotas com prefixo fixo vêm antes de /:id
	nfce.Get("/periodo", nfceHandler.ListByPeriodo)
	nfce.Get("/chave/:chave", nfceHandler.GetByChave)
	nfce.Get("/status/:status/count", nfceHandler.CountByStatus)
	nfce.Get("/status/:status", nfceHandler.ListByStatus)
	nfce.Get("/emitente/:cnpj", nfceHandler.ListByEmitente)
	nfce.Get("/:id", nfceHandler.GetByID)
	nfce.Post("/:id/assinar", nfceHandler.Assinar)
	nfce.Post("/:id/enviar", nfceHandler.Enviar)
	nfce.Post("/:id/autorizar", nfceHandler.Autorizar)
	nfce.Post("/:id/cancelar", nfceHandler.Cancelar)
	nfce.Get("/:id/xml", nfceHandler.GetXML)
	nfce.Get("/:id/danfe", nfceHandler.GetDanfe)

	qrcodeHandler := NewQrCodeHandler(deps.Lifecycle, deps.QrCode, deps.Chaves)
	nfce.Get("/:id/qrcode", qrcodeHandler.GetURL)
	protected.Post("/qrcode/validar", qrcodeHandler.Validar)

	numeracaoHandler := NewNumeracaoHandler(deps.Numeracao)
	numeracao := protected.Group("/numeracao")
	numeracao.Get("/proxima", numeracaoHandler.ProximoNumero)
	numeracao.Get("/disponivel", numeracaoHandler.NumeroDisponivel)

	chaveHandler := NewChaveHandler(deps.Chaves, deps.Extractor)
	chave := protected.Group("/chave")
	chave.Post("/extrair", chaveHandler.ExtrairDeXML)
	chave.Get("/:chave", chaveHandler.Validar)
}
