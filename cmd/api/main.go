package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appnfce "github.com/setxpro/nfce-api/internal/application/nfce"
	"github.com/setxpro/nfce-api/internal/domain/entity"
	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
	infrapdf "github.com/setxpro/nfce-api/internal/infrastructure/pdf"
	"github.com/setxpro/nfce-api/internal/infrastructure/postgres"
	"github.com/setxpro/nfce-api/internal/infrastructure/sefaz"
	httpRouter "github.com/setxpro/nfce-api/internal/interfaces/http"
	"github.com/setxpro/nfce-api/pkg/config"
	"github.com/setxpro/nfce-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("ambiente_nfce", cfg.NFCe.Ambiente).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	nfceRepo := postgres.NewNfceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	chaves := domnfce.NewChaveAcessoService()
	qrcode := domnfce.NewQrCodeService(cfg.NFCe.URLConsultaQrCode)

	xmlBuilder := sefaz.NewXMLBuilderService()
	xmlParser := sefaz.NewXMLParserService(chaves)
	danfeGenerator := infrapdf.NewDanfeGenerator(chaves)

	ucCfg := appnfce.Config{
		Ambiente:      ambiente(cfg.NFCe.Ambiente),
		SeriePadrao:   cfg.NFCe.SeriePadrao,
		NumeroInicial: cfg.NFCe.NumeroInicial,
	}

	createUC := appnfce.NewCreateNfceUseCase(txRunner, chaves, qrcode, ucCfg)
	lifecycleUC := appnfce.NewLifecycleUseCase(nfceRepo, chaves, xmlBuilder)
	numeracaoUC := appnfce.NewNumeracaoUseCase(nfceRepo, ucCfg)
	danfeUC := appnfce.NewDanfeUseCase(nfceRepo, danfeGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "NFC-e API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateNfce: createUC,
		Lifecycle:  lifecycleUC,
		Numeracao:  numeracaoUC,
		Danfe:      danfeUC,
		Chaves:     chaves,
		QrCode:     qrcode,
		Extractor:  xmlParser,
		Auth: httpRouter.AuthConfig{
			Secret:     cfg.JWT.Secret,
			APIKey:     cfg.JWT.APIKey,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

func ambiente(s string) entity.Ambiente {
	if strings.EqualFold(s, "producao") {
		return entity.AmbienteProducao
	}
	return entity.AmbienteHomologacao
}
