package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Promedio-api/docs"
	"github.com/jhoicas/Promedio-api/internal/application/auth"
	"github.com/jhoicas/Promedio-api/internal/application/calculator"
	"github.com/jhoicas/Promedio-api/internal/infrastructure/authapi"
	"github.com/jhoicas/Promedio-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Promedio-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/Promedio-api/internal/interfaces/http"
	"github.com/jhoicas/Promedio-api/pkg/config"
	"github.com/jhoicas/Promedio-api/pkg/logger"
	"github.com/jhoicas/Promedio-api/pkg/numfmt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("auth_api", cfg.Auth.APIURL).
		Bool("auth_stub", cfg.Auth.StubEnabled).
		Bool("auth_verify", cfg.Auth.VerifyTokens).
		Msg("iniciando aplicación")

	// Calculadora + comprobante PDF
	formatter := numfmt.New(cfg.Display.Locale)
	receipts := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	calculatorUC := calculator.NewCalculatorUseCase(formatter, calculator.Units{
		Price:    cfg.Display.PriceUnit,
		Quantity: cfg.Display.QuantityUnit,
	}, receipts, log)

	// Login: el formulario llama al servicio de autenticación por HTTP
	gateway := authapi.NewClient(cfg.Auth.APIURL, cfg.Auth.Timeout)
	loginUC := auth.NewLoginUseCase(gateway, auth.LoginConfig{
		LandingPath:   cfg.Session.LandingPath,
		RedirectDelay: cfg.Session.RedirectDelay,
	}, log)

	// Autenticador de desarrollo: atiende /api/login en este mismo servidor
	var stubAuth *auth.StubAuthenticator
	if cfg.Auth.StubEnabled {
		userRepo, err := memory.NewUserRepository(cfg.Auth.StubUsers)
		if err != nil {
			log.Fatal().Err(err).Msg("usuarios del autenticador de desarrollo")
		}
		stubAuth = auth.NewStubAuthenticator(userRepo, auth.JWTConfig{
			Secret:          cfg.JWT.Secret,
			ExpMinutes:      cfg.JWT.Expiration,
			RememberMinutes: cfg.JWT.RememberMinutes,
			Issuer:          cfg.JWT.Issuer,
		})
		log.Warn().Int("users", userRepo.Len()).Msg("autenticador de desarrollo habilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Promedio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	var verifier httpRouter.TokenVerifier
	if cfg.Auth.VerifyTokens {
		verifier = httpRouter.JWTVerifier(cfg.JWT.Secret)
		log.Info().Msg("verificación de firma JWT habilitada en rutas protegidas")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CalculatorUC: calculatorUC,
		LoginUC:      loginUC,
		StubAuth:     stubAuth,
		Cookies: httpRouter.CookieConfig{
			RememberFor: cfg.Session.RememberFor,
			Secure:      cfg.Session.CookieSecure,
		},
		Verifier: verifier,
		Log:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
