package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Promedio-api/internal/application/auth"
	"github.com/jhoicas/Promedio-api/internal/application/calculator"
	"github.com/jhoicas/Promedio-api/internal/application/dto"
	"github.com/jhoicas/Promedio-api/pkg/jwt"
	"github.com/jhoicas/Promedio-api/pkg/logger"
)

// LoginPath ruta del formulario de login.
const LoginPath = "/login"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageData datos comunes a las tres páginas.
type pageData struct {
	Title    string
	Refresh  template.HTML // <meta refresh> de la página de login exitoso
	Username string
	Remember bool
	Message  string
	Error    string
	Landing  string
	Form     dto.CalculatorForm
	Result   *dto.CalculationResponse
}

// WebHandler páginas HTML: login y calculadora.
type WebHandler struct {
	calc    *calculator.CalculatorUseCase
	login   *auth.LoginUseCase
	cookies CookieConfig
	log     *logger.Logger
}

// NewWebHandler construye el handler de páginas.
func NewWebHandler(calc *calculator.CalculatorUseCase, login *auth.LoginUseCase, cookies CookieConfig, log *logger.Logger) *WebHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &WebHandler{calc: calc, login: login, cookies: cookies, log: log.Component("web")}
}

// Root redirige al login.
func (h *WebHandler) Root(c *fiber.Ctx) error {
	return c.Redirect(LoginPath, fiber.StatusFound)
}

// LoginPage muestra el formulario.
func (h *WebHandler) LoginPage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "login.html", pageData{Title: "Iniciar sesión"})
}

// LoginSubmit envía las credenciales al servicio de autenticación y guarda el token en cookie.
// Si falla vuelve a mostrar el formulario con el mensaje; el botón queda habilitado.
func (h *WebHandler) LoginSubmit(c *fiber.Ctx) error {
	in := dto.LoginRequest{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
		Remember: c.FormValue("remember") != "",
	}
	res, err := h.login.Login(c.UserContext(), in, NewCookieStores(c, h.cookies))
	if err != nil {
		return h.render(c, statusFor(err), "login.html", pageData{
			Title:    "Iniciar sesión",
			Username: in.Username,
			Remember: in.Remember,
			Error:    userMessage(err),
		})
	}
	secs := (res.RedirectDelay + 999) / 1000
	refresh := fmt.Sprintf(`<meta http-equiv="refresh" content="%d;url=%s">`, secs, template.HTMLEscapeString(res.LandingPath))
	return h.render(c, fiber.StatusOK, "login_success.html", pageData{
		Title:    "Sesión iniciada",
		Refresh:  template.HTML(refresh),
		Username: res.Username,
		Message:  res.Message,
		Landing:  res.LandingPath,
	})
}

// Logout borra las cookies del token y vuelve al login.
func (h *WebHandler) Logout(c *fiber.Ctx) error {
	if err := auth.Logout(NewCookieStores(c, h.cookies)); err != nil {
		h.log.Warn().Err(err).Msg("logout")
	}
	return c.Redirect(LoginPath, fiber.StatusFound)
}

// CalculatorPage muestra los formularios vacíos.
func (h *WebHandler) CalculatorPage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "calculator.html", pageData{
		Title:    "Calculadora de precio promedio",
		Username: displayName(GetToken(c)),
		Form:     dto.CalculatorForm{Mode: dto.ModeForward},
	})
}

// CalculatorSubmit calcula según el campo mode y muestra el resultado o la alerta de validación.
func (h *WebHandler) CalculatorSubmit(c *fiber.Ctx) error {
	data := pageData{
		Title:    "Calculadora de precio promedio",
		Username: displayName(GetToken(c)),
	}
	if err := c.BodyParser(&data.Form); err != nil {
		data.Error = "formulario inválido"
		return h.render(c, fiber.StatusBadRequest, "calculator.html", data)
	}
	res, err := h.calc.Calculate(data.Form)
	if err != nil {
		data.Error = userMessage(err)
		return h.render(c, statusFor(err), "calculator.html", data)
	}
	data.Result = res
	return h.render(c, fiber.StatusOK, "calculator.html", data)
}

func (h *WebHandler) render(c *fiber.Ctx, status int, name string, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("render")
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// displayName nombre a mostrar leído del token sin verificarlo.
func displayName(token string) string {
	if name, ok := jwt.PeekUsername(token); ok {
		return name
	}
	return "usuario"
}
