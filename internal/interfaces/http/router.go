package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Promedio-api/internal/application/auth"
	"github.com/jhoicas/Promedio-api/internal/application/calculator"
	"github.com/jhoicas/Promedio-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CalculatorUC *calculator.CalculatorUseCase
	LoginUC      *auth.LoginUseCase
	// StubAuth nil si /api/login lo atiende un servicio externo.
	StubAuth *auth.StubAuthenticator
	Cookies  CookieConfig
	// Verifier nil: los guards solo comprueban presencia del token.
	Verifier TokenVerifier
	Log      *logger.Logger
}

// Router registra páginas y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Páginas
	web := NewWebHandler(deps.CalculatorUC, deps.LoginUC, deps.Cookies, deps.Log)
	app.Get("/", web.Root)
	app.Get(LoginPath, web.LoginPage)
	app.Post(LoginPath, web.LoginSubmit)
	app.Get("/logout", web.Logout)

	requirePage, requireAPI := RequireTokenPage(LoginPath), RequireToken()
	if deps.Verifier != nil {
		requirePage = RequireVerifiedTokenPage(LoginPath, deps.Verifier)
		requireAPI = RequireVerifiedToken(deps.Verifier)
	}

	// Páginas protegidas
	app.Get("/calculator", requirePage, web.CalculatorPage)
	app.Post("/calculator", requirePage, web.CalculatorSubmit)

	api := app.Group("/api")

	// Auth de desarrollo (público)
	if deps.StubAuth != nil {
		authHandler := NewAuthHandler(deps.StubAuth)
		api.Post("/login", authHandler.Login)
		api.Post("/logout", authHandler.Logout)
		api.Get("/check", authHandler.Check)
	}

	// Calculadora (protegido)
	calc := api.Group("/calculator", requireAPI)
	calcHandler := NewCalculatorHandler(deps.CalculatorUC)
	calc.Post("/forward", calcHandler.Forward)
	calc.Post("/reverse", calcHandler.Reverse)
	calc.Post("/evaluate", calcHandler.Evaluate)
	calc.Post("/report", calcHandler.Report)
}
